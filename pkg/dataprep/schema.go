package dataprep

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"dslr/pkg/data"
)

// Schema describes which columns of a table feed training.
type Schema struct {
	Label        string
	LabelIndex   int
	FeatureNames []string
	FeatureIndex []int
	// Skipped lists numeric-looking columns that were left out because no
	// cell in them is present.
	Skipped []string
}

// ResolveSchema picks the label column and the feature columns of t.
// Every problem found is reported, not only the first.
func ResolveSchema(t *data.Table, opts Options) (Schema, error) {
	s := Schema{LabelIndex: -1}
	var errs error

	ignored := make(map[string]bool, len(opts.IgnoreColumns))
	for _, name := range opts.IgnoreColumns {
		if t.Column(name) == nil {
			errs = multierr.Append(errs, errors.Wrapf(data.ErrSchema, "ignored column %q does not exist", name))
		}
		ignored[name] = true
	}

	for i, c := range t.Columns {
		if opts.LabelColumn != "" {
			if c.Name == opts.LabelColumn {
				s.LabelIndex = i
				break
			}
			continue
		}
		if c.Kind == data.KindString && !ignored[c.Name] {
			s.LabelIndex = i
			break
		}
	}
	switch {
	case s.LabelIndex >= 0:
		s.Label = t.Columns[s.LabelIndex].Name
	case opts.LabelColumn != "":
		errs = multierr.Append(errs, errors.Wrapf(data.ErrSchema, "label column %q does not exist", opts.LabelColumn))
	default:
		errs = multierr.Append(errs, errors.Wrap(data.ErrSchema, "no string column to use as label"))
	}

	for i, c := range t.Columns {
		if i == s.LabelIndex || ignored[c.Name] {
			continue
		}
		switch c.Kind {
		case data.KindFloat:
		case data.KindInteger:
			if opts.FloatOnly {
				continue
			}
		case data.KindNull:
			s.Skipped = append(s.Skipped, c.Name)
			continue
		default:
			continue
		}
		s.FeatureNames = append(s.FeatureNames, c.Name)
		s.FeatureIndex = append(s.FeatureIndex, i)
	}
	if len(s.FeatureNames) == 0 {
		errs = multierr.Append(errs, errors.Wrap(data.ErrSchema, "no numeric feature column"))
	}
	return s, errs
}
