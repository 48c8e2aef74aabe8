package model

import (
	"bufio"
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"dslr/pkg/data"
	"dslr/pkg/stats"
)

// FactorColumns is the number of leading columns holding a feature's
// normalization pair.
const FactorColumns = 2

const factorHeader = "k"

// meta is the sidecar written next to the weight table. It carries what the
// table layout cannot: the normalization method, feature names and the
// imputation means.
type meta struct {
	RunID     string    `yaml:"run_id"`
	CreatedAt time.Time `yaml:"created_at"`
	LabelName string    `yaml:"label_name"`
	Method    string    `yaml:"method"`
	Features  []string  `yaml:"features,omitempty"`
	Means     []float64 `yaml:"means"`
}

// MetaPath is where the sidecar of the model table at path lives.
func MetaPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".meta.yaml"
}

// Write stores the sidecar at MetaPath(path), then the weight table at
// path. A table is only left on disk once its sidecar is complete, so a
// failed write is never read back as a legacy model.
func (m *Model) Write(path string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if err := writeFile(MetaPath(path), m.WriteMeta); err != nil {
		return err
	}
	if err := writeFile(path, m.WriteTable); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := write(file); err != nil {
		file.Close()
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(file.Close(), "close %s", path)
}

// WriteTable writes the header `k,<label_name>,<labels...>` and one record
// per feature: the (a, b) pair followed by each label's theta component.
// Labels are written in lexicographic order.
func (m *Model) WriteTable(w io.Writer) error {
	labels := m.Labels()
	header := make([]string, 0, FactorColumns+len(labels))
	header = append(header, factorHeader, m.LabelName)
	header = append(header, labels...)

	wtr := csv.NewWriter(w)
	if err := wtr.Write(header); err != nil {
		return err
	}
	for i, f := range m.Factors {
		record := make([]string, 0, len(header))
		record = append(record, formatFloat(f.A), formatFloat(f.B))
		for _, label := range labels {
			record = append(record, formatFloat(m.Weights[label][i]))
		}
		if err := wtr.Write(record); err != nil {
			return err
		}
	}
	wtr.Flush()
	return wtr.Error()
}

// WriteMeta writes the YAML sidecar.
func (m *Model) WriteMeta(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	err := enc.Encode(meta{
		RunID:     m.RunID,
		CreatedAt: m.CreatedAt,
		LabelName: m.LabelName,
		Method:    m.Method.String(),
		Features:  m.Features,
		Means:     m.Means,
	})
	return multierr.Append(err, enc.Close())
}

// Read loads the model table at path and, when present, its sidecar. A table
// without a sidecar is read as a standard-deviation model whose imputation
// means are the stored `a` factors; RunID stays empty in that case.
func Read(path string) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	m, err := ReadTable(bufio.NewReader(file))
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}

	side, err := os.Open(MetaPath(path))
	switch {
	case os.IsNotExist(err):
		m.Method = stats.StdDev
		m.Means = make([]float64, len(m.Factors))
		for i, f := range m.Factors {
			m.Means[i] = f.A
		}
	case err != nil:
		return nil, errors.Wrapf(err, "open %s", MetaPath(path))
	default:
		defer side.Close()
		if err := m.ReadMeta(side); err != nil {
			return nil, errors.WithMessage(err, MetaPath(path))
		}
	}
	if err := m.Validate(); err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return m, nil
}

// ReadTable parses the weight table layout written by WriteTable.
func ReadTable(r io.Reader) (*Model, error) {
	rdr := csv.NewReader(r)
	header, err := rdr.Read()
	if err != nil {
		return nil, errors.Wrap(data.ErrParse, "model header: "+err.Error())
	}
	if len(header) < FactorColumns {
		return nil, errors.Wrapf(data.ErrParse, "model header has %d columns, need at least %d", len(header), FactorColumns)
	}
	labels := append([]string(nil), header[FactorColumns:]...)

	m := &Model{LabelName: header[1], Weights: make(map[string][]float64, len(labels))}
	for _, label := range labels {
		if _, dup := m.Weights[label]; dup {
			return nil, errors.Wrapf(data.ErrParse, "label %q appears twice in model header", label)
		}
		m.Weights[label] = nil
	}

	for row := 0; ; row++ {
		record, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(data.ErrParse, err.Error())
		}
		values := make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Wrapf(data.ErrParse, "model row %d column %d: %q is not a finite float", row, j, cell)
			}
			values[j] = v
		}
		m.Factors = append(m.Factors, stats.Factor{A: values[0], B: values[1]})
		for j, label := range labels {
			m.Weights[label] = append(m.Weights[label], values[FactorColumns+j])
		}
	}
	for _, label := range labels {
		if m.Weights[label] == nil {
			m.Weights[label] = []float64{}
		}
	}
	return m, nil
}

// ReadMeta fills the sidecar fields of m.
func (m *Model) ReadMeta(r io.Reader) error {
	var md meta
	if err := yaml.NewDecoder(r).Decode(&md); err != nil {
		return errors.Wrap(data.ErrParse, err.Error())
	}
	method, err := stats.ParseMethod(md.Method)
	if err != nil {
		return errors.Wrap(data.ErrParse, err.Error())
	}
	if md.LabelName != "" && md.LabelName != m.LabelName {
		return errors.Wrapf(data.ErrSchema, "sidecar label %q does not match table label %q", md.LabelName, m.LabelName)
	}
	m.RunID = md.RunID
	m.CreatedAt = md.CreatedAt
	m.Method = method
	m.Features = md.Features
	m.Means = md.Means
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
