// Package config provides hierarchical configuration loading for casepilot.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the casepilot service.
type Config struct {
	Server   Server   `yaml:"server"`
	Engine   Engine   `yaml:"engine"`
	LLM      LLM      `yaml:"llm"`
	Cache    Cache    `yaml:"cache"`
	Postgres Postgres `yaml:"postgres"`
	NATS     NATS     `yaml:"nats"`
	Logging  Logging  `yaml:"logging"`
	Breaker  Breaker  `yaml:"breaker"`
	Rate     Rate     `yaml:"rate"`
	Auth     Auth     `yaml:"auth"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
	// MaxBodyBytes bounds uploaded case file size.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// Engine holds execution engine configuration.
type Engine struct {
	// WorkerTimeout is the independent deadline applied to each worker.
	WorkerTimeout time.Duration `yaml:"worker_timeout"`
	// MaxParallel bounds concurrently running workers; 0 means unbounded.
	MaxParallel int `yaml:"max_parallel"`
}

// LLM holds configuration for the OpenAI-compatible endpoint the workers call.
type LLM struct {
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// Cache holds report cache configuration.
type Cache struct {
	MaxSizeMB int64         `yaml:"max_size_mb"`
	ReportTTL time.Duration `yaml:"report_ttl"`
}

// Postgres holds the report archive connection configuration. An empty DSN
// selects the in-memory archive.
type Postgres struct {
	DSN             string        `yaml:"dsn"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
}

// NATS holds lifecycle-event publishing configuration. An empty URL disables
// publishing.
type NATS struct {
	URL string `yaml:"url"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
	Async   bool   `yaml:"async"`
}

// Breaker holds circuit breaker configuration for LLM calls.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Rate holds rate limiter configuration.
type Rate struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// Auth holds API-key authentication configuration. When no key hashes are
// configured, authentication is disabled.
type Auth struct {
	// APIKeyHashes are bcrypt hashes of accepted API keys.
	APIKeyHashes []string `yaml:"api_key_hashes"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:         "8080",
			CORSOrigin:   "http://localhost:3000",
			MaxBodyBytes: 1 << 20, // 1 MiB of case text
		},
		Engine: Engine{
			WorkerTimeout: 60 * time.Second,
			MaxParallel:   0,
		},
		LLM: LLM{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			MaxTokens:   4096,
		},
		Cache: Cache{
			MaxSizeMB: 64,
			ReportTTL: 15 * time.Minute,
		},
		Postgres: Postgres{
			DSN:             "",
			MaxConns:        10,
			MinConns:        2,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 10 * time.Minute,
		},
		NATS: NATS{
			URL: "",
		},
		Logging: Logging{
			Level:   "info",
			Service: "casepilot",
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
		Rate: Rate{
			RequestsPerSecond: 10,
			Burst:             50,
		},
	}
}
