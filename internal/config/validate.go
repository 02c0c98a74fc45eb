package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Validate checks that all required configuration is present and valid.
// Every problem is reported, not only the first.
func (c *Config) Validate() error {
	var errors []string

	for _, check := range []func() []string{
		c.validateServer,
		c.validateRPC,
		c.validateCache,
		c.validateSynth,
		c.validateMonitoring,
		c.validateLogging,
	} {
		errors = append(errors, check()...)
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s",
			strings.Join(errors, "\n  - "))
	}

	return nil
}

func validatePort(name, value string) string {
	if value == "" {
		return fmt.Sprintf("%s is required", name)
	}
	port, err := strconv.Atoi(value)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Sprintf("%s must be a valid port number: %s", name, value)
	}
	return ""
}

func validatePositive(name string, d time.Duration) string {
	if d <= 0 {
		return fmt.Sprintf("%s must be positive, got: %s", name, d)
	}
	return ""
}

func collect(msgs ...string) []string {
	var out []string
	for _, m := range msgs {
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

func (c *Config) validateServer() []string {
	var errs []string

	errs = append(errs, validatePort("PORT", c.Server.HTTPPort))

	validEnvs := map[string]bool{"development": true, "production": true, "test": true}
	if !validEnvs[c.Server.Environment] {
		errs = append(errs, fmt.Sprintf("ENVIRONMENT must be 'development', 'production', or 'test', got: %s",
			c.Server.Environment))
	}

	if c.Server.RateLimitEnabled {
		if c.Server.RateLimitRequestsPerSec <= 0 {
			errs = append(errs, "RATE_LIMIT_RPS must be positive")
		}
		if c.Server.RateLimitBurst < 1 {
			errs = append(errs, "RATE_LIMIT_BURST must be at least 1")
		}
	}

	errs = append(errs, validatePositive("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout))

	return collect(errs...)
}

func (c *Config) validateRPC() []string {
	var errs []string

	if c.RPC.PlatformURL == "" {
		errs = append(errs, "AVALANCHE_RPC_URL is required")
	} else if u, err := url.Parse(c.RPC.PlatformURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("AVALANCHE_RPC_URL must be an http(s) URL: %s", c.RPC.PlatformURL))
	}

	if tmpl := c.RPC.ChainRPCTemplate; tmpl != "" && strings.Count(tmpl, "%s") != 1 {
		errs = append(errs, "AVALANCHE_CHAIN_RPC_TEMPLATE must contain exactly one %s placeholder")
	}

	errs = append(errs, validatePositive("RPC_TIMEOUT", c.RPC.Timeout))

	if c.RPC.MaxRetries < 0 || c.RPC.MaxRetries > 10 {
		errs = append(errs, fmt.Sprintf("RPC_MAX_RETRIES must be between 0 and 10, got: %d", c.RPC.MaxRetries))
	}
	if c.RPC.RegistryConcurrency < 1 {
		errs = append(errs, "REGISTRY_CONCURRENCY must be at least 1")
	}

	return collect(errs...)
}

func (c *Config) validateCache() []string {
	var errs []string

	if c.Cache.RedisEnabled && c.Cache.Addr == "" {
		errs = append(errs, "REDIS_ADDR is required when REDIS_ENABLED is true")
	}
	if c.Cache.DB < 0 || c.Cache.DB > 15 {
		errs = append(errs, fmt.Sprintf("REDIS_DB must be between 0 and 15, got: %d", c.Cache.DB))
	}

	switch c.Cache.TTLStrategy {
	case "default", "aggressive", "conservative":
	default:
		errs = append(errs, fmt.Sprintf("CACHE_TTL_STRATEGY must be 'default', 'aggressive', or 'conservative', got: %s",
			c.Cache.TTLStrategy))
	}

	return errs
}

func (c *Config) validateSynth() []string {
	var errs []string

	switch c.Synth.StakingSource {
	case "synthetic", "rpc":
	default:
		errs = append(errs, fmt.Sprintf("STAKING_SOURCE must be 'synthetic' or 'rpc', got: %s", c.Synth.StakingSource))
	}

	errs = append(errs,
		validatePositive("PERFORMANCE_INTERVAL", c.Synth.PerformanceInterval),
		validatePositive("ICM_INTERVAL", c.Synth.ICMInterval),
		validatePositive("STAKING_INTERVAL", c.Synth.StakingInterval),
		validatePositive("NETWORK_REFRESH_INTERVAL", c.Synth.NetworkRefreshInterval),
	)

	return collect(errs...)
}

func (c *Config) validateMonitoring() []string {
	var errs []string

	if c.Monitoring.MetricsEnabled {
		errs = append(errs, validatePort("PROMETHEUS_PORT", c.Monitoring.PrometheusPort))
		if c.Monitoring.PrometheusPort == c.Server.HTTPPort {
			errs = append(errs, "PROMETHEUS_PORT must differ from PORT")
		}
	}
	errs = append(errs, validatePositive("HEALTH_CHECK_INTERVAL", c.Monitoring.HealthCheckInterval))

	return collect(errs...)
}

func (c *Config) validateLogging() []string {
	var errs []string

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be 'debug', 'info', 'warn', or 'error', got: %s", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be 'json' or 'console', got: %s", c.Logging.Format))
	}

	return errs
}
