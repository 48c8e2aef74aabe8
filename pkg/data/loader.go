package data

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Options tune how a table is read.
type Options struct {
	Comma rune            // field delimiter, ',' when zero
	Kinds map[string]Kind // forced kinds by column name, skips inference
}

// Load reads a header-bearing CSV file into a Table.
func Load(path string, opts Options) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	t, err := Read(bufio.NewReader(file), opts)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return t, nil
}

// Read parses CSV from r. Every record must have as many fields as the header.
func Read(r io.Reader, opts Options) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Wrap(ErrSchema, "empty input, a header is required")
	}
	if err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}
	header = append([]string(nil), header...)

	var records [][]string
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A short or long row surfaces as ErrFieldCount.
			var pe *csv.ParseError
			if errors.As(err, &pe) && pe.Err == csv.ErrFieldCount {
				return nil, errors.Wrapf(ErrSchema, "line %d: %d fields, header has %d", line, len(rec), len(header))
			}
			return nil, errors.Wrap(ErrParse, err.Error())
		}
		records = append(records, rec)
	}
	return New(header, records, opts.Kinds)
}

// New builds a Table from a header and row-major records, resolving each
// column's kind unless it is forced.
func New(header []string, records [][]string, forced map[string]Kind) (*Table, error) {
	t := &Table{Columns: make([]Column, len(header)), Rows: len(records)}
	for j, name := range header {
		raw := make([]string, len(records))
		for i, rec := range records {
			if len(rec) != len(header) {
				return nil, errors.Wrapf(ErrSchema, "row %d: %d cells, header has %d", i, len(rec), len(header))
			}
			raw[i] = rec[j]
		}
		col := Column{Name: strings.TrimSpace(name), Raw: raw}
		kind, ok := forced[col.Name]
		if !ok {
			kind = inferKind(raw)
		}
		if err := col.setKind(kind); err != nil {
			return nil, err
		}
		t.Columns[j] = col
	}
	return t, nil
}

func (c *Column) setKind(kind Kind) error {
	c.Kind = kind
	if !kind.IsNumeric() {
		return nil
	}
	c.Values = make([]float64, len(c.Raw))
	c.Valid = make([]bool, len(c.Raw))
	for i, s := range c.Raw {
		if IsMissing(s) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.Wrapf(ErrParse, "column %q row %d: %q is not a number", c.Name, i, s)
		}
		switch {
		case math.IsNaN(v):
			continue
		case math.IsInf(v, 0):
			return errors.Wrapf(ErrParse, "column %q row %d: %q is not finite", c.Name, i, s)
		}
		c.Values[i] = v
		c.Valid[i] = true
	}
	return nil
}

// inferKind picks the narrowest kind that every present cell fits.
func inferKind(raw []string) Kind {
	kind := KindNull
	for _, s := range raw {
		if IsMissing(s) {
			continue
		}
		s = strings.TrimSpace(s)
		if _, err := strconv.ParseInt(s, 10, 64); err == nil {
			if kind == KindNull {
				kind = KindInteger
			}
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			kind = KindFloat
			continue
		}
		return KindString
	}
	return kind
}
