package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"dslr/pkg/config"
	"dslr/pkg/logx"
	"dslr/pkg/pipeline"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	modelPath := flag.StringP("model", "m", "weights.csv", "trained model")
	output := flag.StringP("output", "o", "houses.csv", "predictions output path")
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
	log, err := logx.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	path := "datasets/dataset_test.csv"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	opts := pipeline.PredictOptions{Path: path, ModelPath: *modelPath, Output: *output}
	if _, err := pipeline.Predict(opts, log); err != nil {
		log.Error("prediction failed", zap.String("dataset", path), zap.String("model", *modelPath), zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}
