// Package config loads the explorer's configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Avalanche RPC configuration
	RPC RPCConfig

	// Cache configuration
	Cache CacheConfig

	// Synthesizer configuration
	Synth SynthConfig

	// Monitoring configuration
	Monitoring MonitoringConfig

	// Logging configuration
	Logging LoggingConfig
}

type ServerConfig struct {
	HTTPPort        string // e.g., "5000"
	Environment     string // "development", "production", or "test"
	ShutdownTimeout time.Duration

	// Rate Limiting
	RateLimitEnabled        bool    // Enable/disable rate limiting
	RateLimitRequestsPerSec float64 // Requests per second per IP
	RateLimitBurst          int     // Burst capacity

	// CORS
	CORSEnabled        bool     // Enable/disable CORS
	CORSAllowedOrigins []string // Allowed origins (comma-separated)
	CORSMaxAge         int      // Preflight cache duration in seconds
}

type RPCConfig struct {
	PlatformURL         string        // P-chain endpoint
	ChainRPCTemplate    string        // e.g., "https://api.avax.network/ext/bc/%s/rpc"; empty disables block heights
	Timeout             time.Duration // Per call timeout
	MaxRetries          int           // 0 disables retries
	RegistryConcurrency int           // Parallel per-chain enrichment calls
}

type CacheConfig struct {
	RedisEnabled bool
	Addr         string // host:port, e.g., "localhost:6379"
	Password     string // empty string if no password
	DB           int    // Redis database number (0-15)
	TTLStrategy  string // "default", "aggressive", "conservative"
}

type SynthConfig struct {
	Seed                   int64  // 0 seeds from the clock
	StakingSource          string // "synthetic" or "rpc"
	PerformanceInterval    time.Duration
	ICMInterval            time.Duration
	StakingInterval        time.Duration
	NetworkRefreshInterval time.Duration
}

type MonitoringConfig struct {
	MetricsEnabled      bool
	PrometheusPort      string // e.g., "9090"
	HealthCheckInterval time.Duration
}

type LoggingConfig struct {
	Level      string // "debug", "info", "warn", "error"
	Format     string // "json", "console"
	OutputPath string // file path or "stdout"
	MaxSizeMB  int    // Max size in MB before rotation
	MaxBackups int    // Max number of old log files to retain
	MaxAgeDays int    // Max age in days for old log files
	Compress   bool   // Compress rotated logs
}

// Load reads environment variables and returns populated Config
// It will load from .env file if present, but env vars take precedence
func Load() (*Config, error) {
	// Environment variables already set will NOT be overwritten
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			HTTPPort:        getEnv("PORT", getEnv("HTTP_PORT", "5000")),
			Environment:     getEnv("ENVIRONMENT", "development"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

			// Rate Limiting
			RateLimitEnabled:        getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RateLimitRequestsPerSec: getEnvAsFloat("RATE_LIMIT_RPS", 20.0),
			RateLimitBurst:          getEnvAsInt("RATE_LIMIT_BURST", 40),

			// CORS
			CORSEnabled:        getEnvAsBool("CORS_ENABLED", true),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			CORSMaxAge:         getEnvAsInt("CORS_MAX_AGE", 300),
		},
		RPC: RPCConfig{
			PlatformURL:         getEnv("AVALANCHE_RPC_URL", "https://api.avax.network/ext/bc/P"),
			ChainRPCTemplate:    getEnv("AVALANCHE_CHAIN_RPC_TEMPLATE", ""),
			Timeout:             getEnvAsDuration("RPC_TIMEOUT", 10*time.Second),
			MaxRetries:          getEnvAsInt("RPC_MAX_RETRIES", 0),
			RegistryConcurrency: getEnvAsInt("REGISTRY_CONCURRENCY", 8),
		},
		Cache: CacheConfig{
			RedisEnabled: getEnvAsBool("REDIS_ENABLED", false),
			Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			TTLStrategy:  getEnv("CACHE_TTL_STRATEGY", "default"),
		},
		Synth: SynthConfig{
			Seed:                   getEnvAsInt64("SYNTH_SEED", 0),
			StakingSource:          getEnv("STAKING_SOURCE", "synthetic"),
			PerformanceInterval:    getEnvAsDuration("PERFORMANCE_INTERVAL", 5*time.Second),
			ICMInterval:            getEnvAsDuration("ICM_INTERVAL", 10*time.Second),
			StakingInterval:        getEnvAsDuration("STAKING_INTERVAL", 30*time.Second),
			NetworkRefreshInterval: getEnvAsDuration("NETWORK_REFRESH_INTERVAL", 60*time.Second),
		},
		Monitoring: MonitoringConfig{
			MetricsEnabled:      getEnvAsBool("METRICS_ENABLED", true),
			PrometheusPort:      getEnv("PROMETHEUS_PORT", "9090"),
			HealthCheckInterval: getEnvAsDuration("HEALTH_CHECK_INTERVAL", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
			Compress:   getEnvAsBool("LOG_COMPRESS", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// MustLoad loads config or panics - useful for main.go
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}
	return cfg
}

// getEnv retrieves environment variable or returns default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves environment variable as int or returns default
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsInt64 retrieves environment variable as int64 or returns default
func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsBool retrieves environment variable as bool or returns default
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsDuration retrieves environment variable as duration or returns default
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsFloat retrieves environment variable as float64 or returns default
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsSlice retrieves environment variable as string slice (comma-separated) or returns default
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}

	if len(values) == 0 {
		return defaultValue
	}

	return values
}

// ServerPort returns the HTTP port as an integer
func (c *Config) ServerPort() int {
	port, _ := strconv.Atoi(c.Server.HTTPPort)
	return port
}

// MetricsPort returns the Prometheus port as an integer
func (c *Config) MetricsPort() int {
	port, _ := strconv.Atoi(c.Monitoring.PrometheusPort)
	return port
}

// IsProduction reports whether ENVIRONMENT is production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
