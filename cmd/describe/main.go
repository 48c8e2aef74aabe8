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
	full := flag.Bool("full", false, "also list columns without statistics")
	round := flag.Int("round", 6, "decimals to print, negative for exact values")
	corr := flag.Bool("corr", false, "print the feature correlation matrix")
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
	opts := pipeline.DescribeOptions{Path: path, Full: *full, Round: *round, Correlations: *corr}
	if err := pipeline.Describe(os.Stdout, opts, log); err != nil {
		log.Error("describe failed", zap.String("dataset", path), zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}
