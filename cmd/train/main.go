package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"dslr/pkg/config"
	"dslr/pkg/dataprep"
	"dslr/pkg/logx"
	"dslr/pkg/pipeline"
	"dslr/pkg/render"
	"dslr/pkg/train"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	modelPath := flag.StringP("output", "o", "weights.csv", "model output path")
	learningRate := flag.Float64("learning-rate", 0, "gradient descent step")
	iterations := flag.Int("iterations", 0, "gradient descent iterations")
	normalization := flag.String("normalization", "", "feature scaling: stddev or minmax")
	splitFactor := flag.Int("split-factor", 0, "send every n-th row of a label to testing")
	label := flag.String("label", "", "label column (default: first text column)")
	ignore := flag.StringSlice("ignore", nil, "columns to leave out of the features")
	floatOnly := flag.Bool("float-only", false, "leave integer columns out of the features")
	registryPath := flag.String("registry", "", "SQLite file to record the run in")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [dataset.csv]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	tc := &cfg.Training
	if flag.CommandLine.Changed("learning-rate") {
		tc.LearningRate = *learningRate
	}
	if flag.CommandLine.Changed("iterations") {
		tc.Iterations = *iterations
	}
	if flag.CommandLine.Changed("normalization") {
		tc.Normalization = *normalization
	}
	if flag.CommandLine.Changed("split-factor") {
		tc.SplitFactor = *splitFactor
	}
	if flag.CommandLine.Changed("label") {
		tc.LabelColumn = *label
	}
	if flag.CommandLine.Changed("ignore") {
		tc.IgnoreColumns = *ignore
	}
	if flag.CommandLine.Changed("float-only") {
		tc.FloatOnly = *floatOnly
	}
	if flag.CommandLine.Changed("registry") {
		cfg.Registry = *registryPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	method, _ := cfg.Method()

	log, err := logx.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path := "datasets/dataset_train.csv"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	res, err := pipeline.Train(ctx, pipeline.TrainOptions{
		Path:      path,
		ModelPath: *modelPath,
		Prepare: dataprep.Options{
			Method:        method,
			SplitFactor:   tc.SplitFactor,
			LabelColumn:   tc.LabelColumn,
			IgnoreColumns: tc.IgnoreColumns,
			FloatOnly:     tc.FloatOnly,
		},
		Params: train.Params{
			LearningRate: tc.LearningRate,
			Iterations:   tc.Iterations,
			LogEvery:     tc.LogEvery,
		},
		Registry: cfg.Registry,
	}, log)
	if err != nil {
		log.Error("training failed", zap.String("dataset", path), zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	render.Report(os.Stdout, res.Report)
}
