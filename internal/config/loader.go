package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "casepilot.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "CASEPILOT_PORT")
	setString(&cfg.Server.CORSOrigin, "CASEPILOT_CORS_ORIGIN")
	setInt64(&cfg.Server.MaxBodyBytes, "CASEPILOT_MAX_BODY_BYTES")
	setDuration(&cfg.Engine.WorkerTimeout, "CASEPILOT_WORKER_TIMEOUT")
	setInt(&cfg.Engine.MaxParallel, "CASEPILOT_MAX_PARALLEL")
	setString(&cfg.LLM.BaseURL, "OPENAI_BASE_URL")
	setString(&cfg.LLM.APIKey, "OPENAI_API_KEY")
	setString(&cfg.LLM.Model, "CASEPILOT_LLM_MODEL")
	setFloat32(&cfg.LLM.Temperature, "CASEPILOT_LLM_TEMPERATURE")
	setInt(&cfg.LLM.MaxTokens, "CASEPILOT_LLM_MAX_TOKENS")
	setInt64(&cfg.Cache.MaxSizeMB, "CASEPILOT_CACHE_SIZE_MB")
	setDuration(&cfg.Cache.ReportTTL, "CASEPILOT_CACHE_REPORT_TTL")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "CASEPILOT_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "CASEPILOT_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "CASEPILOT_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "CASEPILOT_PG_MAX_CONN_IDLE_TIME")
	setString(&cfg.NATS.URL, "NATS_URL")
	setString(&cfg.Logging.Level, "CASEPILOT_LOG_LEVEL")
	setString(&cfg.Logging.Service, "CASEPILOT_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "CASEPILOT_LOG_ASYNC")
	setInt(&cfg.Breaker.MaxFailures, "CASEPILOT_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "CASEPILOT_BREAKER_TIMEOUT")
	setFloat64(&cfg.Rate.RequestsPerSecond, "CASEPILOT_RATE_RPS")
	setInt(&cfg.Rate.Burst, "CASEPILOT_RATE_BURST")
	setStringSlice(&cfg.Auth.APIKeyHashes, "CASEPILOT_API_KEY_HASHES")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Server.MaxBodyBytes < 1 {
		return errors.New("server.max_body_bytes must be >= 1")
	}
	if cfg.Engine.WorkerTimeout <= 0 {
		return errors.New("engine.worker_timeout must be positive")
	}
	if cfg.Engine.MaxParallel < 0 {
		return errors.New("engine.max_parallel must be >= 0")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	if cfg.Rate.Burst < 1 {
		return errors.New("rate.burst must be >= 1")
	}
	if cfg.Postgres.DSN != "" && cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		*dst = out
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setFloat32(dst *float32, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			*dst = float32(f)
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
