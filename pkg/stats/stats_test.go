package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dslr/pkg/data"
)

const tolerance = 1e-9

func numericColumn(name string, cells ...string) *data.Column {
	records := make([][]string, len(cells))
	for i, c := range cells {
		records[i] = []string{c}
	}
	tbl, err := data.New([]string{name}, records, nil)
	if err != nil {
		panic(err)
	}
	return &tbl.Columns[0]
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Summary
	}{
		{
			name:   "basic",
			values: []float64{1, 2, 3, 4, 5},
			want:   Summary{Min: 1, Max: 5, Mean: 3, Median: 3, Q1: 2, Q3: 4, Std: math.Sqrt2, Sum: 15},
		},
		{
			name:   "unsorted",
			values: []float64{5, 2, 4, 1, 3},
			want:   Summary{Min: 1, Max: 5, Mean: 3, Median: 3, Q1: 2, Q3: 4, Std: math.Sqrt2, Sum: 15},
		},
		{
			name:   "negative",
			values: []float64{-42, -5, 0, 1, 2, 1001},
			want:   Summary{Min: -42, Max: 1001, Mean: 159.5, Median: 0.5, Q1: -5, Q3: 2, Std: 376.64162896135986, Sum: 957},
		},
		{
			name:   "multiple of four",
			values: []float64{1, 2, 3, 4, 5, 6, 7, 8},
			want:   Summary{Min: 1, Max: 8, Mean: 4.5, Median: 4.5, Q1: 2.5, Q3: 6.5, Std: math.Sqrt(5.25), Sum: 36},
		},
		{
			name:   "single",
			values: []float64{7},
			want:   Summary{Min: 7, Max: 7, Mean: 7, Median: 7, Q1: 7, Q3: 7, Std: 0, Sum: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.values)
			require.NotNil(t, got)
			assert.InDelta(t, tt.want.Min, got.Min, tolerance)
			assert.InDelta(t, tt.want.Max, got.Max, tolerance)
			assert.InDelta(t, tt.want.Mean, got.Mean, tolerance)
			assert.InDelta(t, tt.want.Median, got.Median, tolerance)
			assert.InDelta(t, tt.want.Q1, got.Q1, tolerance)
			assert.InDelta(t, tt.want.Q3, got.Q3, tolerance)
			assert.InDelta(t, tt.want.Std, got.Std, tolerance)
			assert.InDelta(t, tt.want.Sum, got.Sum, tolerance)
		})
	}
}

func TestSummarizeOrdering(t *testing.T) {
	values := []float64{12.5, -3, 8, 8, 0.25, 99, -41, 7, 3.5, 2, 61}
	s := Summarize(values)
	require.NotNil(t, s)
	assert.LessOrEqual(t, s.Min, s.Q1)
	assert.LessOrEqual(t, s.Q1, s.Median)
	assert.LessOrEqual(t, s.Median, s.Q3)
	assert.LessOrEqual(t, s.Q3, s.Max)
	// input is left untouched
	assert.Equal(t, 12.5, values[0])
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Nil(t, Summarize(nil))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, Median([]float64{1, 2, 3, 4, 5}))
	assert.Equal(t, 2.5, Median([]float64{1, 2, 3, 4}))
	assert.Equal(t, 0.0, Median(nil))
}

func TestStd(t *testing.T) {
	assert.InDelta(t, 1.4142135, Std([]float64{1, 2, 3, 4, 5}), 1e-6)
	assert.Equal(t, 0.0, Std(nil))
}

func TestAnalyze(t *testing.T) {
	t.Run("missing values are dropped", func(t *testing.T) {
		a := Analyze(numericColumn("a", "1", "", "3", "NA", "5"))
		require.True(t, a.Numeric())
		assert.Equal(t, data.KindInteger, a.Kind)
		assert.Equal(t, 3, a.Count)
		assert.Equal(t, 2, a.Missing)
		assert.InDelta(t, 1.0, a.Summary.Min, tolerance)
		assert.InDelta(t, 5.0, a.Summary.Max, tolerance)
		assert.InDelta(t, 3.0, a.Summary.Mean, tolerance)
		assert.InDelta(t, 3.0, a.Summary.Median, tolerance)
		assert.InDelta(t, 1.0, a.Summary.Q1, tolerance)
		assert.InDelta(t, 5.0, a.Summary.Q3, tolerance)
		assert.InDelta(t, 1.632993161855452, a.Summary.Std, tolerance)
		assert.InDelta(t, 9.0, a.Summary.Sum, tolerance)
	})

	t.Run("string column", func(t *testing.T) {
		a := Analyze(numericColumn("s", "a", "b", "c"))
		assert.Equal(t, data.KindString, a.Kind)
		assert.Nil(t, a.Summary)
		assert.Equal(t, 3, a.Count)
	})

	t.Run("empty column", func(t *testing.T) {
		a := Analyze(numericColumn("e", "", ""))
		assert.Equal(t, data.KindNull, a.Kind)
		assert.Nil(t, a.Summary)
		assert.Equal(t, 2, a.Missing)
	})

	t.Run("forced numeric empty column", func(t *testing.T) {
		tbl, err := data.New([]string{"e"}, [][]string{{""}, {""}}, map[string]data.Kind{"e": data.KindFloat})
		require.NoError(t, err)
		a := Analyze(&tbl.Columns[0])
		assert.Equal(t, data.KindFloat, a.Kind)
		assert.Nil(t, a.Summary)
	})
}

func TestCorrelation(t *testing.T) {
	all := []bool{true, true, true, true}
	x := []float64{1, 2, 3, 4}

	assert.InDelta(t, 1.0, Correlation(x, []float64{2, 4, 6, 8}, all, all), tolerance)
	assert.InDelta(t, -1.0, Correlation(x, []float64{8, 6, 4, 2}, all, all), tolerance)
	assert.True(t, math.IsNaN(Correlation(x, []float64{1, 1, 1, 1}, all, all)))

	// the outlier sits on a row missing from x and is ignored
	y := []float64{2, 4, 1000, 8}
	xValid := []bool{true, true, false, true}
	assert.InDelta(t, 1.0, Correlation(x, y, xValid, all), tolerance)
}
