package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dslr/pkg/data"
	"dslr/pkg/dataprep"
	"dslr/pkg/model"
	"dslr/pkg/registry"
	"dslr/pkg/stats"
	"dslr/pkg/train"
)

func init() { color.NoColor = true }

// writeDataset writes rows of two well separated houses.
func writeDataset(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Index,Hogwarts House,First Name,Charms,Flying\n")
	for i := range 20 {
		if i%2 == 0 {
			fmt.Fprintf(&b, "%d,Gryffindor,Harry,%g,1\n", i, 2+0.1*float64(i))
		} else {
			fmt.Fprintf(&b, "%d,Slytherin,Draco,%g,-1\n", i, -2-0.1*float64(i))
		}
	}
	b.WriteString("20,Slytherin,Vincent,,-1.5\n")
	path := filepath.Join(dir, "train.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestTrainAndPredict(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	log := zap.NewNop()

	res, err := Train(ctx, TrainOptions{
		Path:      writeDataset(t, dir),
		ModelPath: filepath.Join(dir, "weights.csv"),
		Prepare:   dataprep.Options{Method: stats.StdDev, FloatOnly: true},
		Params:    train.Params{LearningRate: 0.5, Iterations: 200},
		Registry:  filepath.Join(dir, "runs.db"),
	}, log)
	require.NoError(t, err)
	assert.Equal(t, "Hogwarts House", res.Model.LabelName)
	assert.Equal(t, []string{"Charms", "Flying"}, res.Model.Features)
	assert.Equal(t, 1.0, res.Report.Total.TestAccuracy())
	require.NotNil(t, res.Run)
	assert.Equal(t, res.Model.RunID, res.Run.ID)

	store, err := registry.Open(filepath.Join(dir, "runs.db"))
	require.NoError(t, err)
	runs, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Features)

	input := filepath.Join(dir, "test.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"Index,Hogwarts House,First Name,Charms,Flying\n0,,Ron,3,1\n1,,Gregory,-4,-1\n2,,Ghost,,\n"), 0o644))
	out := filepath.Join(dir, "houses.csv")
	preds, err := Predict(PredictOptions{Path: input, ModelPath: filepath.Join(dir, "weights.csv"), Output: out}, log)
	require.NoError(t, err)
	require.Len(t, preds, 3)
	assert.Equal(t, "Gryffindor", preds[0].Label)
	assert.Equal(t, "Slytherin", preds[1].Label)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "Index,Hogwarts House\n0,Gryffindor\n1,Slytherin\n"))
}

func TestPredictLegacyModel(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "legacy.csv")
	require.NoError(t, os.WriteFile(modelPath, []byte("k,House,neg,pos\n0,1,-1,1\n"), 0o644))
	input := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(input, []byte("Index,House,X\n0,,2.5\n1,,-0.5\n"), 0o644))

	preds, err := Predict(PredictOptions{Path: input, ModelPath: modelPath, Output: filepath.Join(dir, "out.csv")}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "pos", preds[0].Label)
	assert.Equal(t, "neg", preds[1].Label)
}

func TestTrainErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "names.csv")
	require.NoError(t, os.WriteFile(path, []byte("House,Name\na,b\n"), 0o644))

	_, err := Train(context.Background(), TrainOptions{
		Path: path, ModelPath: filepath.Join(dir, "m.csv"),
		Params: train.Params{LearningRate: 0.1, Iterations: 1},
	}, zap.NewNop())
	assert.True(t, errors.Is(err, data.ErrSchema))
	assert.NoFileExists(t, filepath.Join(dir, "m.csv"))
	assert.NoFileExists(t, model.MetaPath(filepath.Join(dir, "m.csv")))
}

func TestDescribe(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	err := Describe(&buf, DescribeOptions{Path: writeDataset(t, dir), Round: 3, Correlations: true}, zap.NewNop())
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Charms")
	assert.Contains(t, out, "Flying")
	assert.NotContains(t, out, "First Name")
}

func TestMostCorrelated(t *testing.T) {
	i, j, r := MostCorrelated([][]float64{
		{1, 0.2, -0.9},
		{0.2, 1, math.NaN()},
		{-0.9, math.NaN(), 1},
	})
	assert.Equal(t, 0, i)
	assert.Equal(t, 2, j)
	assert.Equal(t, -0.9, r)

	i, _, _ = MostCorrelated([][]float64{{1}})
	assert.Equal(t, -1, i)
}

func TestHistogram(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	err := Histogram(&buf, HistogramOptions{Path: writeDataset(t, dir), Feature: "Charms", Bins: 4}, zap.NewNop())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Gryffindor")
	assert.Contains(t, buf.String(), "Slytherin")

	err = Histogram(&buf, HistogramOptions{Path: writeDataset(t, dir), Feature: "Potions", Bins: 4}, zap.NewNop())
	assert.True(t, errors.Is(err, data.ErrSchema))
}
