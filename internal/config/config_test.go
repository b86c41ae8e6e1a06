package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ENV", "PORT", "LOG_LEVEL", "FRONTEND_URL", "ALLOWED_ORIGINS", "REDIS_URI",
		"MONGODB_URL", "MONGODB_URI", "MONGODB_DATABASE", "MONGO_CONNECT_TIMEOUT",
		"MONGO_SERVER_SELECTION_TIMEOUT", "DEFAULT_PAGE_SIZE", "MAX_PAGE_SIZE",
		"FEED_PAGE_SIZE", "PAGE_CACHE_TTL", "CLOUDINARY_CLOUD_NAME",
		"CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET", "CLOUDINARY_FOLDER",
		"ALLOWED_HOST", "TRUST_PROXY", "METRICS_ADDR", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW",
	} {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { _ = os.Setenv(k, v) })
			_ = os.Unsetenv(k)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "threads", cfg.Mongo.Database)
	assert.Equal(t, 30*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ServerSelectionTimeout)
	assert.Equal(t, int64(20), cfg.Pagination.DefaultSize)
	assert.Equal(t, int64(100), cfg.Pagination.MaxSize)
	assert.Equal(t, int64(30), cfg.Pagination.FeedSize)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.Cloudinary.Enabled())
	assert.False(t, cfg.TrustProxy)
	assert.Empty(t, cfg.AllowedHost)
	assert.Equal(t, "127.0.0.1:9090", cfg.MetricsAddr)
	assert.Equal(t, 30, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestLoad_MissingMongoURLIsNotAnError(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Mongo.URL)
}

func TestLoad_MongoURLFallsBackToURI(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://legacy:27017")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://legacy:27017", cfg.Mongo.URL)

	t.Setenv("MONGODB_URL", "mongodb://primary:27017")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://primary:27017", cfg.Mongo.URL)
}

func TestLoad_AllowedOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", " https://threads.example.com/ ,https://www.threads.example.com,,HTTPS://threads.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://threads.example.com", "https://www.threads.example.com"}, cfg.AllowedOrigins)
}

func TestLoad_Production(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", " Production ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_ProxyAndHost(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("ALLOWED_HOST", " api.threads.example.com ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, "api.threads.example.com", cfg.AllowedHost)
}
