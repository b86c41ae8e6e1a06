package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Environment    string   `env:"ENV" env-default:"development"`
	Port           string   `env:"PORT" env-default:"8080"`
	LogLevel       string   `env:"LOG_LEVEL" env-default:"info"`
	FrontendURL    string   `env:"FRONTEND_URL" env-default:"http://localhost:3000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" env-separator:","` // CORS; falls back to FRONTEND_URL
	RedisURI       string   `env:"REDIS_URI" env-default:"redis://localhost:6379/0"`
	// MetricsAddr is the internal listener for /metrics; empty disables it.
	MetricsAddr string `env:"METRICS_ADDR" env-default:"127.0.0.1:9090"`
	// AllowedHost enables the production host check when set (bare hostname).
	AllowedHost string `env:"ALLOWED_HOST"`
	// TrustProxy makes X-Forwarded-For and X-Real-IP authoritative for client IPs.
	TrustProxy bool `env:"TRUST_PROXY" env-default:"false"`

	Mongo      MongoConfig
	Cloudinary CloudinaryConfig
	Pagination PaginationConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
}

type MongoConfig struct {
	// URL is MONGODB_URL, or MONGODB_URI when the former is unset. An empty
	// value is reported when the first connection is attempted.
	URL                    string        `env:"MONGODB_URL"`
	LegacyURI              string        `env:"MONGODB_URI"`
	Database               string        `env:"MONGODB_DATABASE" env-default:"threads"`
	ConnectTimeout         time.Duration `env:"MONGO_CONNECT_TIMEOUT" env-default:"30s"`
	ServerSelectionTimeout time.Duration `env:"MONGO_SERVER_SELECTION_TIMEOUT" env-default:"10s"`
}

type CloudinaryConfig struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
	Folder    string `env:"CLOUDINARY_FOLDER" env-default:"threads/profile"`
}

// Enabled reports whether uploads can be served.
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type PaginationConfig struct {
	DefaultSize int64 `env:"DEFAULT_PAGE_SIZE" env-default:"20"`
	MaxSize     int64 `env:"MAX_PAGE_SIZE" env-default:"100"`
	FeedSize    int64 `env:"FEED_PAGE_SIZE" env-default:"30"`
}

type CacheConfig struct {
	PageTTL time.Duration `env:"PAGE_CACHE_TTL" env-default:"60s"`
}

type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS" env-default:"30"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`
}

// Load decodes the process environment. It does not read .env; the caller
// does that first.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.AllowedHost = strings.TrimSpace(cfg.AllowedHost)
	cfg.MetricsAddr = strings.TrimSpace(cfg.MetricsAddr)
	if cfg.Mongo.URL == "" {
		cfg.Mongo.URL = cfg.Mongo.LegacyURI
	}
	cfg.Mongo.URL = strings.TrimSpace(cfg.Mongo.URL)

	cfg.AllowedOrigins = parseOrigins(cfg.AllowedOrigins)
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = parseOrigins([]string{cfg.FrontendURL})
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if cfg.Pagination.DefaultSize <= 0 {
		cfg.Pagination.DefaultSize = 20
	}
	if cfg.Pagination.MaxSize < cfg.Pagination.DefaultSize {
		cfg.Pagination.MaxSize = cfg.Pagination.DefaultSize
	}
	if cfg.Pagination.FeedSize <= 0 {
		cfg.Pagination.FeedSize = 30
	}
	return &cfg, nil
}

// parseOrigins trims entries and drops empties and duplicates.
func parseOrigins(in []string) []string {
	var out []string
	for _, part := range in {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" && !containsOrigin(out, part) {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
