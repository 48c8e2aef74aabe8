// Package render prints analyses, reports and registry listings as
// terminal tables and charts.
package render

import (
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"dslr/pkg/data"
	"dslr/pkg/registry"
	"dslr/pkg/stats"
	"dslr/pkg/train"
)

// NA stands for an absent statistic.
const NA = "N/A"

// Target is the testing accuracy a model is expected to reach.
const Target = 0.98

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// DescribeOptions controls Describe.
type DescribeOptions struct {
	// Full also lists columns without statistics.
	Full bool
	// Round is the number of decimals; negative prints the shortest exact
	// form.
	Round int
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

func number(v float64, round int) string {
	if math.IsNaN(v) {
		return NA
	}
	if round < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', round, 64)
}

func kind(k data.Kind) string {
	if k.IsNumeric() {
		return cyan(k.String())
	}
	return faint(k.String())
}

// Describe prints one row of statistics per analyzed column.
func Describe(w io.Writer, analyses []stats.Analysis, opts DescribeOptions) {
	table := newTable(w, "Feature", "Kind", "Count", "Missing", "Mean", "Std", "Min", "25%", "50%", "75%", "Max", "Sum")
	for _, a := range analyses {
		if !a.Numeric() && !opts.Full {
			continue
		}
		row := []string{a.Name, kind(a.Kind), strconv.Itoa(a.Count), strconv.Itoa(a.Missing)}
		if s := a.Summary; s != nil {
			for _, v := range []float64{s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max, s.Sum} {
				row = append(row, number(v, opts.Round))
			}
		} else {
			for range 8 {
				row = append(row, NA)
			}
		}
		table.Append(row)
	}
	table.Render()
}

// Correlations prints the square matrix of pairwise coefficients.
func Correlations(w io.Writer, names []string, matrix [][]float64, round int) {
	table := newTable(w, append([]string{""}, names...)...)
	for i, name := range names {
		row := make([]string, 0, len(names)+1)
		row = append(row, name)
		for _, v := range matrix[i] {
			row = append(row, number(v, round))
		}
		table.Append(row)
	}
	table.Render()
}

func accuracy(v float64) string {
	s := strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
	if v >= Target {
		return green(s)
	}
	return yellow(s)
}

func fraction(correct, total int) string {
	return strconv.Itoa(correct) + "/" + strconv.Itoa(total)
}

// Report prints per-label training and testing accuracy and the total.
func Report(w io.Writer, r train.Report) {
	table := newTable(w, "Label", "Train", "Train acc", "Test", "Test acc", "Precision", "Recall", "F1")
	rows := append(append([]train.Score(nil), r.Labels...), r.Total)
	for _, s := range rows {
		table.Append([]string{
			s.Label,
			fraction(s.TrainCorrect, s.TrainTotal),
			accuracy(s.TrainAccuracy()),
			fraction(s.TestCorrect, s.TestTotal),
			accuracy(s.TestAccuracy()),
			number(s.Precision, 3),
			number(s.Recall, 3),
			number(s.F1, 3),
		})
	}
	table.Render()
}

// Runs prints registry entries.
func Runs(w io.Writer, runs []registry.Run) {
	table := newTable(w, "ID", "Trained at", "Dataset", "Model", "Method", "Features", "Labels", "Loss", "Test acc")
	for _, r := range runs {
		table.Append([]string{
			r.ID,
			r.TrainedAt.Format("2006-01-02 15:04:05"),
			r.Dataset,
			r.ModelPath,
			r.Method,
			strconv.Itoa(r.Features),
			strconv.Itoa(r.Labels),
			number(r.Loss, 4),
			accuracy(r.TestAccuracy),
		})
	}
	table.Render()
}
