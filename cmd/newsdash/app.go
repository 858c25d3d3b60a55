package main

import (
	"context"
	"fmt"

	"github.com/daksh3010/newsdash/internal/aggregator"
	"github.com/daksh3010/newsdash/internal/config"
	"github.com/daksh3010/newsdash/internal/dashboard"
	"github.com/daksh3010/newsdash/internal/logger"
	"github.com/daksh3010/newsdash/internal/payout"
	"github.com/daksh3010/newsdash/pkg/httpclient"
	"github.com/daksh3010/newsdash/pkg/publishers"
	"github.com/daksh3010/newsdash/pkg/sources"
)

// app bundles the wired pipeline for one CLI invocation.
type app struct {
	cfg     config.Config
	log     logger.Logger
	service *dashboard.Service
	rates   *payout.RateStore
}

// newApp loads config and wires the full pipeline: sources, aggregator,
// rate store, optional publishers, and the dashboard facade.
func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	client := httpclient.NewRestyClient(cfg.HTTPTimeout())
	registry := sources.DefaultRegistry(client,
		sources.GuardianConfig{
			BaseURL:  cfg.GuardianBaseURL,
			APIKey:   cfg.GuardianAPIKey,
			PageSize: cfg.PageSize,
		},
		sources.DevtoConfig{
			BaseURL: cfg.DevtoBaseURL,
			PerPage: cfg.PageSize,
		},
	)

	agg := aggregator.New(registry, log)

	rates, err := payout.OpenRateStore(cfg.StorePath)
	if err != nil {
		return nil, err
	}

	var sink *publishers.Set
	if cfg.PublishersFile != "" {
		sink, err = buildPublisherSet(ctx, cfg.PublishersFile, log)
		if err != nil {
			_ = rates.Close()
			return nil, err
		}
		agg.SetEventSink(sink)
	}

	service := dashboard.New(agg, rates, exportSink(sink), log)

	return &app{cfg: cfg, log: log, service: service, rates: rates}, nil
}

// exportSink keeps a nil *publishers.Set from becoming a non-nil interface.
func exportSink(set *publishers.Set) dashboard.ExportSink {
	if set == nil {
		return nil
	}
	return set
}

func buildPublisherSet(ctx context.Context, path string, log logger.Logger) (*publishers.Set, error) {
	cfgReg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers: %w", err)
	}

	pubs, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), cfgReg.Enabled(), log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	return publishers.NewSet(pubs, log), nil
}

func (a *app) close() {
	if err := a.rates.Close(); err != nil {
		a.log.WarnObj("rate store close failed", "store_close_error", map[string]any{
			"error": err.Error(),
		})
	}
	_ = a.log.Sync()
}
