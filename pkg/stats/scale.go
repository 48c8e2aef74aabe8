package stats

import (
	"strings"

	"github.com/pkg/errors"

	"dslr/pkg/data"
)

// Method selects how features are rescaled.
type Method int

const (
	StdDev Method = iota // (x - mean) / std
	MinMax               // (x - min) / (max - min)
)

func (m Method) String() string {
	if m == MinMax {
		return "minmax"
	}
	return "stddev"
}

// ParseMethod accepts the names produced by Method.String.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stddev", "std", "standard":
		return StdDev, nil
	case "minmax", "min-max":
		return MinMax, nil
	}
	return StdDev, errors.Errorf("unknown normalization method %q", s)
}

// MarshalText stores the method by name.
func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText reads a method name.
func (m *Method) UnmarshalText(b []byte) error {
	parsed, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Factor is the (a, b) pair a method normalizes one feature with:
// (min, max) for MinMax, (mean, std) for StdDev.
type Factor struct {
	A, B float64
}

// Spread is the divisor the method applies. A zero spread is replaced by 1
// so a constant feature maps to a constant instead of NaN.
func (f Factor) Spread(m Method) float64 {
	d := f.B
	if m == MinMax {
		d = f.B - f.A
	}
	if d == 0 {
		return 1
	}
	return d
}

// Apply normalizes a single value.
func (f Factor) Apply(m Method, x float64) float64 {
	return (x - f.A) / f.Spread(m)
}

// FactorFor picks the pair of a from its summary.
func FactorFor(m Method, a Analysis) (Factor, error) {
	if a.Summary == nil {
		return Factor{}, errors.Wrapf(data.ErrDegenerate, "feature %q has no %s statistics", a.Name, m)
	}
	if m == MinMax {
		return Factor{A: a.Summary.Min, B: a.Summary.Max}, nil
	}
	return Factor{A: a.Summary.Mean, B: a.Summary.Std}, nil
}

// Scaler normalizes feature rows with one Factor per feature.
type Scaler struct {
	Method  Method
	Factors []Factor
}

func NewScaler(m Method) *Scaler { return &Scaler{Method: m} }

// Fit derives the factors from whole-dataset analyses, one per feature.
func (s *Scaler) Fit(analyses []Analysis) error {
	s.Factors = make([]Factor, len(analyses))
	for j, a := range analyses {
		f, err := FactorFor(s.Method, a)
		if err != nil {
			return err
		}
		s.Factors[j] = f
	}
	return nil
}

// TransformRow normalizes row in place.
func (s *Scaler) TransformRow(row []float64) {
	for j := range row {
		row[j] = s.Factors[j].Apply(s.Method, row[j])
	}
}

// Transform normalizes every row of X in place.
func (s *Scaler) Transform(X [][]float64) {
	for _, row := range X {
		s.TransformRow(row)
	}
}
