package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillbyte/internal/analysis"
	"github.com/jonathan/skillbyte/internal/catalog"
	"github.com/jonathan/skillbyte/internal/config"
	"github.com/jonathan/skillbyte/internal/fetch"
	"github.com/jonathan/skillbyte/internal/llm"
)

// loadConfig builds the effective configuration: file, then environment, then
// the persistent flags, with defaults filling whatever is still empty.
func loadConfig(cmd *cobra.Command, getenv func(string) string) (*config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		cfg.Catalog = catalogPath
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	if merged.Verbose && configPath != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", configPath)
	}
	return &merged, nil
}

// pipeline holds what the analysis commands share
type pipeline struct {
	catalog  *catalog.Catalog
	analyzer *analysis.Analyzer
	adapter  *llm.Adapter
}

func (p *pipeline) Close() {
	if p.adapter != nil {
		_ = p.adapter.Close()
	}
}

// remoteUse selects when the remote provider is attached to the analyzer
type remoteUse int

const (
	remoteOff remoteUse = iota
	// remoteOn always attaches it; missing credentials surface as a remote error per report
	remoteOn
	// remoteAuto attaches it only when credentials are configured
	remoteAuto
)

// newPipeline loads the catalog and builds the analyzer with the configured
// match mode and, depending on remote, the configured provider.
func newPipeline(ctx context.Context, cfg *config.Config, remote remoteUse) (*pipeline, error) {
	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}

	p := &pipeline{catalog: cat}
	var enricher analysis.Enricher
	if remote != remoteOff {
		llmCfg, err := cfg.LLM()
		if err != nil {
			return nil, err
		}
		adapter, err := llm.NewAdapterFromConfig(ctx, llmCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", llmCfg.Provider, err)
		}
		switch {
		case adapter.Usable():
			p.adapter = adapter
			enricher = adapter
		case remote == remoteOn:
			log.Printf("[skillbyte] %s has no credentials; feedback will fall back to local", llmCfg.Provider)
			p.adapter = adapter
			enricher = adapter
		default:
			log.Printf("[skillbyte] %s has no credentials; remote feedback disabled", llmCfg.Provider)
			_ = adapter.Close()
		}
	}
	p.analyzer = analysis.New(cat, enricher, mode)
	return p, nil
}

// newObjectStore returns nil when storage is not configured
func newObjectStore(ctx context.Context, cfg *config.Config) (*fetch.ObjectStore, error) {
	if !cfg.Storage.Enabled() {
		return nil, nil
	}
	store, err := fetch.NewObjectStore(ctx, cfg.Store())
	if err != nil {
		return nil, fmt.Errorf("failed to create object store: %w", err)
	}
	return store, nil
}
