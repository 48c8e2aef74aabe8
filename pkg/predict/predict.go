// Package predict classifies the rows of a new table with a stored model.
package predict

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"dslr/pkg/data"
	"dslr/pkg/dataprep"
	"dslr/pkg/model"
)

// IndexHeader heads the row-index column of the predictions file.
const IndexHeader = "Index"

// Prediction is the label assigned to the row at Index.
type Prediction struct {
	Index int
	Label string
}

// Columns returns the columns of t that feed m, in model feature order.
// Columns are matched by name when m carries feature names. Otherwise every
// non-string column other than the label column is taken in order; when
// that does not match the model's feature count, integer columns are left
// out and the count is checked again.
func Columns(t *data.Table, m *model.Model) ([]*data.Column, error) {
	if len(m.Features) > 0 {
		return byName(t, m)
	}
	var all, floats []*data.Column
	for i := range t.Columns {
		c := &t.Columns[i]
		if c.Name == m.LabelName || c.Kind == data.KindString {
			continue
		}
		all = append(all, c)
		if c.Kind != data.KindInteger {
			floats = append(floats, c)
		}
	}
	switch n := m.FeatureCount(); {
	case len(all) == n:
		return all, nil
	case len(floats) == n:
		return floats, nil
	}
	return nil, errors.Wrapf(data.ErrSchema, "table has %d numeric columns, model expects %d features",
		len(all), m.FeatureCount())
}

func byName(t *data.Table, m *model.Model) ([]*data.Column, error) {
	cols := make([]*data.Column, len(m.Features))
	var errs error
	for j, name := range m.Features {
		c := t.Column(name)
		switch {
		case c == nil:
			errs = multierr.Append(errs, errors.Wrapf(data.ErrSchema, "feature column %q is missing", name))
		case c.Kind == data.KindString:
			errs = multierr.Append(errs, errors.Wrapf(data.ErrParse, "feature column %q holds text", name))
		}
		cols[j] = c
	}
	if errs != nil {
		return nil, errs
	}
	return cols, nil
}

// Rows materializes the normalized feature rows of t for m. Missing cells
// take the model's imputation means before normalization.
func Rows(t *data.Table, m *model.Model) ([][]float64, error) {
	cols, err := Columns(t, m)
	if err != nil {
		return nil, err
	}
	rows := make([][]float64, t.Rows)
	for i := range t.Rows {
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = dataprep.ImputeMean(c, i, m.Means[j])
		}
		m.Normalize(row)
		rows[i] = row
	}
	return rows, nil
}

// Predict classifies every row of t. A row no label can be assigned to,
// such as one whose scores are all NaN, fails the whole prediction.
func Predict(t *data.Table, m *model.Model) ([]Prediction, error) {
	rows, err := Rows(t, m)
	if err != nil {
		return nil, err
	}
	out := make([]Prediction, len(rows))
	for i, row := range rows {
		label := m.Classify(row)
		if label == "" {
			return nil, errors.Wrapf(data.ErrParse, "row %d: no label scores a number", i)
		}
		out[i] = Prediction{Index: i, Label: label}
	}
	return out, nil
}

// WriteCSV writes the header `Index,<labelName>` and one record per
// prediction.
func WriteCSV(w io.Writer, labelName string, preds []Prediction) error {
	wtr := csv.NewWriter(w)
	if err := wtr.Write([]string{IndexHeader, labelName}); err != nil {
		return err
	}
	for _, p := range preds {
		if err := wtr.Write([]string{strconv.Itoa(p.Index), p.Label}); err != nil {
			return err
		}
	}
	wtr.Flush()
	return wtr.Error()
}

// Write stores predictions at path.
func Write(path, labelName string, preds []Prediction) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := WriteCSV(file, labelName, preds); err != nil {
		file.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(file.Close(), "close %s", path)
}
