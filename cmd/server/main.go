package main

import (
	"context"
	"fmt"
	"os"

	"github.com/birddigital/avax-l1-explorer/internal/api/rest"
	"github.com/birddigital/avax-l1-explorer/internal/cache"
	"github.com/birddigital/avax-l1-explorer/internal/collector"
	"github.com/birddigital/avax-l1-explorer/internal/config"
	"github.com/birddigital/avax-l1-explorer/internal/icm"
	"github.com/birddigital/avax-l1-explorer/internal/logger"
	"github.com/birddigital/avax-l1-explorer/internal/metrics"
	"github.com/birddigital/avax-l1-explorer/internal/middleware"
	"github.com/birddigital/avax-l1-explorer/internal/performance"
	"github.com/birddigital/avax-l1-explorer/internal/registry"
	"github.com/birddigital/avax-l1-explorer/internal/rpc"
	"github.com/birddigital/avax-l1-explorer/internal/server"
	"github.com/birddigital/avax-l1-explorer/internal/services/health"
	"github.com/birddigital/avax-l1-explorer/internal/staking"
	"github.com/birddigital/avax-l1-explorer/internal/synth"
	"github.com/birddigital/avax-l1-explorer/internal/web/handlers"
	"github.com/birddigital/avax-l1-explorer/internal/web/sse"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Use basic logging before logger is initialized
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	loggerCfg := logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
		Service:    "avax-l1-explorer",
		Version:    version,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}

	if err := logger.Initialize(loggerCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Logger.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("log_level", cfg.Logging.Level).
		Msg("Starting Avalanche L1 explorer")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, cancel, cfg); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Server failed")
	}
	logger.Logger.Info().Msg("Server stopped gracefully")
}

func run(ctx context.Context, cancel context.CancelFunc, cfg *config.Config) error {
	// Metrics on the default registry so the Go and process collectors come along
	apiMetrics := metrics.NewAPIMetrics(nil)
	explorerMetrics := metrics.NewExplorerMetrics(nil)

	// Avalanche node clients
	caller := rpc.WithRetry(rpc.NewClient(cfg.RPC.Timeout), retryConfig(cfg.RPC.MaxRetries))
	platform := rpc.NewPlatform(caller, cfg.RPC.PlatformURL)

	var heights registry.BlockHeighter
	if cfg.RPC.ChainRPCTemplate != "" {
		heights = rpc.NewEVM(caller)
	}

	source := synth.NewSource(cfg.Synth.Seed, nil)
	if cfg.Synth.Seed != 0 {
		logger.Logger.Info().Int64("seed", cfg.Synth.Seed).Msg("Synthesizers seeded deterministically")
	}

	adapterOpts := registry.DefaultOptions()
	adapterOpts.Concurrency = cfg.RPC.RegistryConcurrency
	adapterOpts.ChainRPCTemplate = cfg.RPC.ChainRPCTemplate
	adapter := registry.NewAdapter(platform, heights, source, adapterOpts, logger.Component("registry"))

	// Cache, Redis when enabled and reachable, memory otherwise
	strategy := cache.StrategyByName(cfg.Cache.TTLStrategy)
	store, closeStore := cache.NewStore(ctx, cache.Options{
		RedisEnabled: cfg.Cache.RedisEnabled,
		Redis: cache.Config{
			Addr:         cfg.Cache.Addr,
			Password:     cfg.Cache.Password,
			DB:           cfg.Cache.DB,
			MaxRetries:   3,
			PoolSize:     10,
			MinIdleConns: 2,
			Strategy:     strategy,
			KeyPrefix:    "avax",
		},
	}, logger.Component("cache"))

	// Live stream fan-out
	broadcaster := sse.NewBroadcaster(ctx, sse.WithLogger(logger.Component("broadcaster")))

	networks := collector.NewNetworkCollector(adapter, store, collector.CollectorConfig{
		RefreshInterval: cfg.Synth.NetworkRefreshInterval,
		TTL:             strategy,
	},
		collector.WithBroadcaster(broadcaster),
		collector.WithMetrics(explorerMetrics),
		collector.WithLogger(logger.Component("collector")),
	)

	// Synthesizers
	perfService := performance.NewService(
		performance.WithSource(source),
		performance.WithNameResolver(networks.Name),
		performance.WithLogger(logger.Component("performance")),
	)
	icmService := icm.NewService(
		icm.WithSource(source),
		icm.WithLogger(logger.Component("icm")),
	)
	stakingService := staking.NewService(
		staking.WithSource(source),
		staking.WithDataSource(stakingSource(cfg, platform, source, networks)),
		staking.WithLogger(logger.Component("staking")),
	)

	relay := collector.NewRelay(broadcaster, explorerMetrics, logger.Component("relay"))
	relay.WatchPerformance(perfService)
	relay.WatchICM(icmService)
	relay.WatchStaking(stakingService)

	monitor := health.NewMonitor([]health.Component{
		{Name: "rpc", Pinger: platform},
		{Name: "cache", Pinger: store},
	}, broadcaster, health.MonitorConfig{
		CheckInterval: cfg.Monitoring.HealthCheckInterval,
	}, logger.Component("health"))

	shutdown := collector.NewShutdownManager(cfg.Server.ShutdownTimeout, logger.Component("shutdown"))

	api := rest.NewHandler(rest.Deps{
		Networks:    networks,
		Performance: perfService,
		ICM:         icmService,
		Staking:     stakingService,
		Health:      monitor,
		Collector:   networks,
		Cache:       store,
		Lifecycle:   shutdown,
		Version:     version,
	})

	router := server.NewRouter(ctx, server.RouterConfig{
		Logger:  logger.Logger,
		Metrics: apiMetrics,
		CORS: middleware.CORSConfig{
			Enabled:        cfg.Server.CORSEnabled,
			AllowedOrigins: cfg.Server.CORSAllowedOrigins,
			MaxAge:         cfg.Server.CORSMaxAge,
		},
		RateLimit: middleware.RateLimiterConfig{
			Enabled:        cfg.Server.RateLimitEnabled,
			RequestsPerSec: cfg.Server.RateLimitRequestsPerSec,
			Burst:          cfg.Server.RateLimitBurst,
		},
		CompressLevel: 5, // Medium compression
	}, server.Routes{
		API:    api,
		Stream: handlers.NewSSEHandler(broadcaster, handlers.WithLogger(logger.Component("sse")), handlers.WithMetrics(apiMetrics)),
		WS:     handlers.NewWSHandler(broadcaster, handlers.WithLogger(logger.Component("ws")), handlers.WithMetrics(apiMetrics)),
	})

	httpServer := server.NewServer(router, logger.Logger, server.ServerOptions{
		Port:            cfg.ServerPort(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	var metricsServer *metrics.Server
	if cfg.Monitoring.MetricsEnabled {
		metricsServer = metrics.NewMetricsServer(cfg.MetricsPort(), apiMetrics, nil, logger.Component("metrics"))
		go func() {
			if err := metricsServer.Start(); err != nil {
				logger.Logger.Error().Err(err).Msg("Metrics server failed")
			}
		}()
	}

	// Background work
	networks.Start(ctx)
	perfTask := perfService.StartRealTimeUpdates(ctx, networks.IDs, cfg.Synth.PerformanceInterval)
	icmTask := icmService.StartMonitoring(ctx, cfg.Synth.ICMInterval)
	stakingTask := stakingService.StartMonitoring(ctx, cfg.Synth.StakingInterval)
	monitor.Start(ctx)

	shutdown.AddPhase("http", httpServer.Shutdown)
	shutdown.AddPhase("tasks", func(context.Context) error {
		perfService.StopRealTimeUpdates(perfTask)
		icmService.StopMonitoring(icmTask)
		stakingService.StopMonitoring(stakingTask)
		networks.Stop()
		return monitor.Stop()
	})
	shutdown.AddPhase("streams", func(context.Context) error {
		relay.Close()
		broadcaster.Shutdown()
		return nil
	})
	shutdown.AddPhase("cache", func(context.Context) error {
		return closeStore()
	})
	if metricsServer != nil {
		shutdown.AddPhase("metrics", metricsServer.Shutdown)
	}
	shutdown.AddPhase("context", func(context.Context) error {
		cancel()
		return nil
	})
	shutdown.Start(ctx)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- httpServer.ListenAndServe()
		shutdown.InitiateShutdown()
	}()

	logger.Logger.Info().
		Str("http_url", fmt.Sprintf("http://localhost:%d", cfg.ServerPort())).
		Str("stream_url", fmt.Sprintf("http://localhost:%d/api/stream", cfg.ServerPort())).
		Msg("Server starting")

	shutdown.Wait()
	return <-serverErr
}

func retryConfig(maxRetries int) rpc.RetryConfig {
	rc := rpc.DefaultRetryConfig()
	rc.MaxRetries = maxRetries
	return rc
}

// stakingSource picks where validator samples come from. The rpc source
// falls back to synthetic validators whenever the node is unreachable.
func stakingSource(cfg *config.Config, platform *rpc.Platform, source synth.Source, networks staking.NetworkResolver) staking.DataSource {
	synthetic := staking.NewSyntheticSource(source)
	if cfg.Synth.StakingSource != "rpc" {
		return synthetic
	}
	return staking.NewFallbackSource(
		staking.NewRPCSource(platform, source, networks),
		synthetic,
		logger.Component("staking"),
	)
}
