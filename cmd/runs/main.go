package main

import (
	"context"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"dslr/pkg/config"
	"dslr/pkg/logx"
	"dslr/pkg/registry"
	"dslr/pkg/render"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	registryPath := flag.String("registry", "", "SQLite file runs were recorded in")
	limit := flag.IntP("limit", "n", 20, "runs to list, 0 for all")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if flag.CommandLine.Changed("registry") {
		cfg.Registry = *registryPath
	}
	log, err := logx.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Registry == "" {
		log.Error("no registry configured, set --registry or DSLR_REGISTRY")
		log.Sync()
		os.Exit(1)
	}
	store, err := registry.Open(cfg.Registry)
	if err != nil {
		log.Error("open registry", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.List(context.Background(), *limit)
	if err != nil {
		log.Error("list runs", zap.String("registry", cfg.Registry), zap.Error(err))
		store.Close()
		log.Sync()
		os.Exit(1)
	}
	render.Runs(os.Stdout, runs)
}
