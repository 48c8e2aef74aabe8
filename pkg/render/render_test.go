package render

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"dslr/pkg/data"
	"dslr/pkg/registry"
	"dslr/pkg/stats"
	"dslr/pkg/train"
)

func init() { color.NoColor = true }

func analyses() []stats.Analysis {
	return []stats.Analysis{
		{Name: "Astronomy", Kind: data.KindFloat, Count: 3, Missing: 1, Summary: stats.Summarize([]float64{1, 2, 4})},
		{Name: "First Name", Kind: data.KindString, Count: 4},
	}
}

func TestDescribe(t *testing.T) {
	var buf bytes.Buffer
	Describe(&buf, analyses(), DescribeOptions{Round: 2})
	out := buf.String()
	assert.Contains(t, out, "Astronomy")
	assert.Contains(t, out, "2.33")
	assert.Contains(t, out, "7.00")
	assert.NotContains(t, out, "First Name")

	buf.Reset()
	Describe(&buf, analyses(), DescribeOptions{Full: true, Round: -1})
	out = buf.String()
	assert.Contains(t, out, "First Name")
	assert.Contains(t, out, NA)
	assert.Contains(t, out, "string")
}

func TestCorrelations(t *testing.T) {
	var buf bytes.Buffer
	Correlations(&buf, []string{"a", "b"}, [][]float64{{1, -0.5}, {-0.5, math.NaN()}}, 2)
	out := buf.String()
	assert.Contains(t, out, "-0.50")
	assert.Contains(t, out, NA)
}

func TestReport(t *testing.T) {
	r := train.Report{
		Labels: []train.Score{{Label: "Gryffindor", TrainCorrect: 9, TrainTotal: 10, TestCorrect: 5, TestTotal: 5, F1: 1}},
		Total:  train.Score{Label: train.TotalLabel, TrainCorrect: 9, TrainTotal: 10, TestCorrect: 5, TestTotal: 5},
	}
	var buf bytes.Buffer
	Report(&buf, r)
	out := buf.String()
	assert.Contains(t, out, "Gryffindor")
	assert.Contains(t, out, "9/10")
	assert.Contains(t, out, "90.00%")
	assert.Contains(t, out, "100.00%")
	assert.Contains(t, out, train.TotalLabel)
}

func TestRuns(t *testing.T) {
	var buf bytes.Buffer
	Runs(&buf, []registry.Run{{
		ID: "run-1", Dataset: "train.csv", ModelPath: "weights.csv", Method: "stddev",
		Features: 13, Labels: 4, Loss: 0.1234, TestAccuracy: 0.99,
		TrainedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}})
	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "2026-01-02 03:04:05")
	assert.Contains(t, out, "99.00%")
}

func TestHistogram(t *testing.T) {
	var buf bytes.Buffer
	err := Histogram(&buf, "Flying", 0, 10, map[string][]int{
		"Slytherin":  {1, 4, 2},
		"Hufflepuff": {3, 0, 1},
	})
	assert.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Flying: 3 bins over [0, 10]"))
	assert.Less(t, strings.Index(out, "Hufflepuff"), strings.Index(out, "Slytherin"))
}
