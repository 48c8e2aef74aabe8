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
	feature := flag.StringP("feature", "f", "Care of Magical Creatures", "numeric column to plot")
	bins := flag.IntP("bins", "b", 20, "number of bins")
	label := flag.String("label", "", "label column (default: first text column)")
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

	path := "datasets/dataset_train.csv"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if *label == "" {
		*label = cfg.Training.LabelColumn
	}
	opts := pipeline.HistogramOptions{Path: path, Feature: *feature, Bins: *bins, LabelColumn: *label}
	if err := pipeline.Histogram(os.Stdout, opts, log); err != nil {
		log.Error("histogram failed", zap.String("dataset", path), zap.String("feature", *feature), zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}
