// cmd/ipsift/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ipsift/internal/adapters/output"
	"ipsift/internal/core/domain"
	"ipsift/internal/core/ports"
	"ipsift/internal/core/usecases"
	"ipsift/internal/feed"
	"ipsift/internal/platform/config"
	"ipsift/internal/platform/httpclient"
	"ipsift/internal/platform/logx"
	"ipsift/internal/platform/registry"
	"ipsift/internal/platform/ui"
	"ipsift/internal/probe"
	"ipsift/internal/resolvers/cached"

	// Import resolvers for auto-registration via init()
	_ "ipsift/internal/resolvers/geodb"
	_ "ipsift/internal/resolvers/rangedb"
	_ "ipsift/internal/resolvers/remote"
	_ "ipsift/internal/resolvers/tag"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// 1. Load centralized config (handles help/version internally)
	cfg, err := config.Load(version, commit, date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		os.Exit(2)
	}

	// Validate feed source
	if cfg.Feed.URL == "" && cfg.Feed.Path == "" {
		fmt.Fprintf(os.Stderr, "Error: %v\n", domain.ErrMissingFeedURL)
		fmt.Fprintln(os.Stderr, "Usage: ipsift -u <url> | -f <file>")
		fmt.Fprintln(os.Stderr, "Try: ipsift -h for help")
		os.Exit(2)
	}

	// 2. Shared logger
	logger := logx.New()
	if cfg.Output.Quiet {
		logger = logx.NewSilent()
	}

	logger.Info("ipsift starting",
		"version", version,
		"commit", commit,
		"date", date,
		"resolver", cfg.Core.Resolver,
		"workers", cfg.Core.Workers,
		"include_cn", cfg.Core.IncludeCN,
	)

	// 3. Context and signals for clean shutdown
	ctx, cancel := rootContextWithSignals(cfg.Core.TimeoutS)
	defer cancel()

	// 4. Build resolver from registry
	resolver, err := buildResolver(logger, cfg)
	if err != nil {
		logger.Err(err, "phase", "resolver-build")
		os.Exit(2)
	}
	defer func() {
		if err := resolver.Close(); err != nil {
			logger.Warn("failed to close resolver", "resolver", resolver.Name(), "error", err.Error())
		}
	}()

	// 5. Build prober, feed and quota selector
	prober := buildProber(logger, cfg)
	feedSource := buildFeed(logger, cfg)

	quotas := usecases.NewQuotaSelector(cfg.PriorityOrder(), cfg.QuotaTable())

	// 6. Presenter
	var presenter ui.Presenter = ui.NewPTermPresenter()
	if cfg.Output.Quiet {
		presenter = ui.NewNoopPresenter()
	}
	presenter.Header(version, feedSource.Name(), resolver.Name(), cfg.Core.Workers)

	// 7. Run pipeline
	pipeline := usecases.NewPipeline(usecases.PipelineOptions{
		Feed:        feedSource,
		Resolver:    resolver,
		Prober:      prober,
		Quotas:      quotas,
		WorkerLimit: cfg.Core.Workers,
		TagLines:    cfg.Output.TagLines,
		Logger:      logger,
	})

	start := time.Now()
	report, lines, runErr := pipeline.Run(ctx)
	elapsed := time.Since(start)

	if runErr != nil {
		// SourceUnavailable es fatal: no hay candidatos que verificar
		logger.Err(runErr, "phase", "run", "elapsed_ms", elapsed.Milliseconds())
		os.Exit(1)
	}

	// 8. Write outputs
	if err := writeOutputs(cfg, logger, report, lines); err != nil {
		logger.Err(err, "phase", "output")
		os.Exit(1)
	}

	// 9. Summary
	presenter.Summary(report, bucketSummaries(cfg, report), elapsed)

	logger.Info("ipsift finished",
		"outcome", report.Outcome,
		"tested", report.Tested,
		"accepted", report.TotalLines,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

// buildResolver construye la estrategia seleccionada, con cache si se configuró.
func buildResolver(logger logx.Logger, cfg config.Config) (ports.CountryResolver, error) {
	name := cfg.Core.Resolver

	rcfg, ok := cfg.Resolvers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrResolverNotFound, name)
	}
	if rcfg.Custom == nil {
		rcfg.Custom = make(map[string]interface{})
	}
	rcfg.Custom["include_cn"] = cfg.Core.IncludeCN

	resolver, err := registry.Global().Build(name, rcfg, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrResolverInitFailed, err)
	}

	if rcfg.CacheTTL > 0 {
		resolver = cached.Wrap(resolver, rcfg.CacheSize, rcfg.CacheTTL, logger)
		logger.Debug("resolver cache enabled", "resolver", name, "ttl", rcfg.CacheTTL)
	}

	return resolver, nil
}

// buildProber arma el prober combinado según la configuración.
func buildProber(logger logx.Logger, cfg config.Config) ports.Prober {
	var pinger probe.Pinger
	if !cfg.Probe.DisableICMP {
		pinger = probe.NewICMPPinger(logger)
	}

	return probe.NewCombined(probe.Options{
		Pinger:      pinger,
		TCPPorts:    cfg.Probe.TCPPorts,
		PingTimeout: cfg.Probe.PingTimeout,
		TCPTimeout:  cfg.Probe.TCPTimeout,
		Logger:      logger,
	})
}

// buildFeed elige archivo local o HTTP según la configuración.
func buildFeed(logger logx.Logger, cfg config.Config) ports.Feed {
	if cfg.Feed.Path != "" {
		return feed.NewFileFeed(cfg.Feed.Path, logger)
	}

	client := httpclient.New(httpclient.DefaultConfig(), logger)
	return feed.NewHTTPFeed(cfg.Feed.URL, client, logger)
}

// writeOutputs decide y ejecuta los outputs según la configuración.
func writeOutputs(cfg config.Config, logger logx.Logger, report *domain.RunReport, lines []string) error {
	flat := output.NewFlatWriter(cfg.Output.Dir, cfg.Output.File, logger)
	if err := flat.Export(report, lines); err != nil {
		return fmt.Errorf("flat output: %w", err)
	}

	if cfg.Output.JSONReport {
		reporter := output.NewJSONReporter(cfg.Output.Dir, logger)
		if err := reporter.Export(report, lines); err != nil {
			return fmt.Errorf("json report: %w", err)
		}
	}

	return nil
}

// bucketSummaries arma las filas del resumen en orden de prioridad.
func bucketSummaries(cfg config.Config, report *domain.RunReport) []ui.BucketSummary {
	quotas := cfg.QuotaTable()
	rows := make([]ui.BucketSummary, 0, len(report.Accepted))
	for _, country := range cfg.PriorityOrder() {
		rows = append(rows, ui.BucketSummary{
			Country:  country,
			Accepted: report.Accepted[country],
			Capacity: quotas.CapacityFor(country),
		})
	}
	return rows
}

// rootContextWithSignals creates a root context with optional timeout and signal cancellation.
func rootContextWithSignals(timeoutSeconds int) (context.Context, context.CancelFunc) {
	var base context.Context
	var baseCancel context.CancelFunc

	if timeoutSeconds > 0 {
		base, baseCancel = context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	} else {
		base, baseCancel = context.WithCancel(context.Background())
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(base)

	go func() {
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(ch)
	}()

	return ctx, func() {
		cancel()
		baseCancel()
	}
}
