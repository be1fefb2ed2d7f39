// Package config loads service settings from defaults, an optional YAML file
// and the environment.
package config

import (
	"net"
	"strconv"
	"time"

	"gitea.kood.tech/petrkubec/roomble/backend/compat"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Search    SearchConfig    `koanf:"search"`
	Compat    CompatConfig    `koanf:"compat"`
	Locality  LocalityConfig  `koanf:"locality"`
	Logging   LoggingConfig   `koanf:"logging"`
}

type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	Environment     string        `koanf:"environment" validate:"oneof=development production test"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"gte=0"`
	Breaker         BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the circuit breaker around database reads.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests" validate:"gt=0"`
	Interval     time.Duration `koanf:"interval" validate:"gte=0"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio" validate:"gt=0,lte=1"`
}

type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret" validate:"required"`
}

type CORSConfig struct {
	Origins []string `koanf:"origins" validate:"min=1"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests" validate:"gt=0"`
	Window   time.Duration `koanf:"window" validate:"gt=0"`
	Disabled bool          `koanf:"disabled"`
}

// SearchConfig is the paging and eligibility policy for searches.
type SearchConfig struct {
	DefaultPageSize        int  `koanf:"default_page_size" validate:"gt=0"`
	MaxPageSize            int  `koanf:"max_page_size" validate:"gtefield=DefaultPageSize"`
	RequireFlatmateSeeking bool `koanf:"require_flatmate_seeking"`
	NearestTowns           int  `koanf:"nearest_towns" validate:"gte=0"`
}

type CompatConfig struct {
	Weights compat.Weights `koanf:"weights"`
}

// LocalityConfig selects where the town table comes from.
type LocalityConfig struct {
	Source string `koanf:"source" validate:"oneof=embedded postgres"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
