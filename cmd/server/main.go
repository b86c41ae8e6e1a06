package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AnshRaj112/threads-backend/internal/config"
	"github.com/AnshRaj112/threads-backend/internal/database"
	"github.com/AnshRaj112/threads-backend/internal/handlers"
	"github.com/AnshRaj112/threads-backend/internal/metrics"
	"github.com/AnshRaj112/threads-backend/internal/middleware"
	"github.com/AnshRaj112/threads-backend/internal/routes"
	"github.com/AnshRaj112/threads-backend/internal/services"
	mongostore "github.com/AnshRaj112/threads-backend/internal/storage/mongo"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 15 * time.Second
)

func main() {
	// Load env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	log := newLogger(cfg)
	defer log.Sync()
	if envErr != nil {
		log.Debug("no .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	conn := database.NewConnector(database.Options{
		URI:                    cfg.Mongo.URL,
		Database:               cfg.Mongo.Database,
		ConnectTimeout:         cfg.Mongo.ConnectTimeout,
		ServerSelectionTimeout: cfg.Mongo.ServerSelectionTimeout,
	}, log)
	defer func() {
		if err := conn.Disconnect(context.Background()); err != nil {
			log.Warn("mongo disconnect failed", zap.Error(err))
		}
	}()

	store := mongostore.New(conn)
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	err = store.EnsureIndexes(startCtx)
	cancel()
	switch {
	case errors.Is(err, database.ErrMissingURI):
		log.Fatal("MongoDB is not configured; set MONGODB_URL", zap.Error(err))
	case err != nil:
		// Requests reconnect on demand.
		log.Error("failed to ensure MongoDB indexes", zap.Error(err))
	default:
		log.Info("MongoDB indexes ensured")
	}

	// Connect to Redis. Without it pages are not cached and writes are not rate limited.
	var rdb *redis.Client
	if cfg.RedisURI != "" {
		rdb, err = database.ConnectRedis(ctx, cfg.RedisURI, log)
		if err != nil {
			log.Warn("redis unavailable; page cache and write rate limiting disabled", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	m := metrics.New()
	stores := services.Stores{Users: store, Threads: store, Communities: store}
	limits := services.PageLimits{Default: cfg.Pagination.DefaultSize, Max: cfg.Pagination.MaxSize}
	pages := services.NewPageCache(rdb, cfg.Cache.PageTTL, log)

	deps := handlers.Deps{
		Users:    services.NewUserService(stores, pages, limits, m, log),
		Threads:  services.NewThreadService(stores, limits, m, log),
		Activity: services.NewActivityService(stores, m, log),
		Pages:    pages,
		FeedSize: cfg.Pagination.FeedSize,
		Log:      log,
	}

	// Initialize Cloudinary service
	if cfg.Cloudinary.Enabled() {
		cld, err := services.NewCloudinaryService(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder)
		if err != nil {
			log.Warn("failed to initialize Cloudinary; uploads disabled", zap.Error(err))
		} else {
			deps.Uploader = cld
			log.Info("Cloudinary service initialized")
		}
	} else {
		log.Warn("Cloudinary credentials not found; uploads disabled")
	}

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Identity)
	r.Use(middleware.RequestLogger(log, m))
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(ctx, cfg.AllowedHost, cfg.TrustProxy) {
			r.Use(mw)
		}
		log.Info("production security enabled")
	}

	writeLimit := middleware.NewRateLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.TrustProxy, log)
	routes.SetupRoutes(r, handlers.New(deps), routes.Options{
		DB:          conn,
		WriteLimit:  writeLimit.Middleware,
		SearchLimit: middleware.SearchRateLimit(ctx, cfg.TrustProxy),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		log.Info("threads backend running", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	var internal *http.Server
	if cfg.MetricsAddr != "" {
		internal = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           routes.InternalRouter(m.Handler()),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.Info("metrics listener running", zap.String("addr", internal.Addr))
			if err := internal.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics listener failed", zap.Error(err))
			}
		}()
	}

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	if internal != nil {
		_ = internal.Shutdown(shutdownCtx)
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	var zc zap.Config
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	if lvl, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	log, err := zc.Build()
	if err != nil {
		return zap.NewExample()
	}
	return log
}
