package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"go.trai.ch/zerr"

	"gitea.kood.tech/petrkubec/roomble/backend/compat"
)

// DefaultConfigPaths are tried in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/roomble/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// ErrInvalidConfig is returned when the loaded configuration fails validation.
var ErrInvalidConfig = zerr.New("invalid configuration")

// Development fallbacks, rejected in production.
const (
	devDatabaseURL = "user=admin password=password dbname=roomble sslmode=disable"
	devJWTSecret   = "your_secret_key_please_change_in_production"
)

var configValidator = validator.New(validator.WithRequiredStructEnabled())

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			URL:             devDatabaseURL,
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Auth: AuthConfig{
			JWTSecret: devJWTSecret,
		},
		CORS: CORSConfig{
			Origins: []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3001"},
		},
		RateLimit: RateLimitConfig{
			Requests: 60,
			Window:   time.Minute,
		},
		Search: SearchConfig{
			DefaultPageSize:        50,
			MaxPageSize:            100,
			RequireFlatmateSeeking: true,
			NearestTowns:           3,
		},
		Compat: CompatConfig{
			Weights: compat.EqualWeights(),
		},
		Locality: LocalityConfig{
			Source: "embedded",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Load builds the configuration: struct defaults, then the YAML file if one
// is found, then environment variables.
func Load() (*Config, error) {
	return load(findConfigFile())
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, zerr.Wrap(err, "load defaults")
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "load config file"), "path", path)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, zerr.Wrap(err, "load environment")
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, zerr.Wrap(err, "unmarshal configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"cors.origins",
}

// processSliceFields splits comma-separated env values into lists.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(path, out); err != nil {
			return zerr.With(zerr.Wrap(err, "split list"), "path", path)
		}
	}
	return nil
}

// envMappings maps environment variables (lowercased) to config keys.
var envMappings = map[string]string{
	// Legacy names
	"port":         "server.port",
	"go_env":       "server.environment",
	"database_url": "database.url",
	"jwt_secret":   "auth.jwt_secret",
	"log_level":    "logging.level",
	"log_format":   "logging.format",

	// Server
	"server_host":             "server.host",
	"server_read_timeout":     "server.read_timeout",
	"server_write_timeout":    "server.write_timeout",
	"server_shutdown_timeout": "server.shutdown_timeout",

	// Database
	"db_max_open_conns":        "database.max_open_conns",
	"db_max_idle_conns":        "database.max_idle_conns",
	"db_conn_max_lifetime":     "database.conn_max_lifetime",
	"db_breaker_max_requests":  "database.breaker.max_requests",
	"db_breaker_interval":      "database.breaker.interval",
	"db_breaker_timeout":       "database.breaker.timeout",
	"db_breaker_min_requests":  "database.breaker.min_requests",
	"db_breaker_failure_ratio": "database.breaker.failure_ratio",

	// HTTP
	"cors_origins":        "cors.origins",
	"rate_limit_requests": "rate_limit.requests",
	"rate_limit_window":   "rate_limit.window",
	"disable_rate_limit":  "rate_limit.disabled",

	// Search
	"search_default_page_size":        "search.default_page_size",
	"search_max_page_size":            "search.max_page_size",
	"search_require_flatmate_seeking": "search.require_flatmate_seeking",
	"search_nearest_towns":            "search.nearest_towns",

	// Scoring
	"compat_weight_smoke":  "compat.weights.smoke",
	"compat_weight_veg":    "compat.weights.veg",
	"compat_weight_pets":   "compat.weights.pets",
	"compat_weight_gender": "compat.weights.gender",

	// Localities
	"locality_source": "locality.source",

	// Logging
	"log_caller": "logging.caller",
}

// envTransformFunc maps known environment variables and drops the rest.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
