package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storefront/internal/config"
	"github.com/kailas-cloud/storefront/internal/db"
	dbRedis "github.com/kailas-cloud/storefront/internal/db/redis"
	"github.com/kailas-cloud/storefront/internal/domain/lang"
	"github.com/kailas-cloud/storefront/internal/generation"
	logpkg "github.com/kailas-cloud/storefront/internal/logger"
	"github.com/kailas-cloud/storefront/internal/metrics"
	catalogrepo "github.com/kailas-cloud/storefront/internal/repository/catalog"
	chiTransport "github.com/kailas-cloud/storefront/internal/transport/chi"
	actionuc "github.com/kailas-cloud/storefront/internal/usecase/action"
	cataloguc "github.com/kailas-cloud/storefront/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/storefront/internal/usecase/health"
	searchuc "github.com/kailas-cloud/storefront/internal/usecase/search"
	"github.com/kailas-cloud/storefront/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting storefront API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_dir", cfg.Catalog.DataDir),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	metrics.RegisterCatalogMetrics()

	fileStore := catalogrepo.NewFileStore(catalogrepo.Embedded())
	if cfg.Catalog.DataDir != "" {
		if fileStore, err = catalogrepo.NewDirStore(cfg.Catalog.DataDir); err != nil {
			logger.Fatal("Failed to open catalog directory", zap.Error(err))
		}
	}
	if err := fileStore.Ping(context.Background()); err != nil {
		logger.Fatal("Catalog not readable", zap.Error(err))
	}

	// Optional read-through cache in front of the files.
	var (
		loader     cataloguc.Store = fileStore
		cacheCheck healthuc.CachePinger
	)
	if cfg.Cache.Enabled {
		store := openCache(cfg.Cache, logger)
		defer store.Close()
		loader = catalogrepo.NewCachedStore(
			fileStore, store,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			cfg.Cache.KeyPrefix,
			metrics.CatalogCacheTotal,
			logger,
		)
		cacheCheck = store
	}

	fallback, _ := lang.Parse(cfg.Catalog.FallbackLang)
	defaultLang, _ := lang.Parse(cfg.Catalog.DefaultLang)

	catalogService := cataloguc.New(loader, fallback, metrics.CatalogLoadsTotal)
	searchService := searchuc.New(catalogService, searchuc.Metrics{
		Runs:       metrics.AlternativesRunsTotal,
		ResultSize: metrics.AlternativesResultSize,
	})
	healthService := healthuc.New(fileStore, cacheCheck)

	tracker := generation.NewTracker(
		time.Duration(cfg.Generation.ClientTTLSec)*time.Second,
		cfg.Generation.MaxClients,
	)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepGenerations(sweepCtx, tracker, time.Duration(cfg.Generation.ClientTTLSec)*time.Second)

	server := chiTransport.NewServer(
		catalogService,
		searchService,
		actionuc.New(),
		healthService,
		tracker,
		defaultLang,
		logger,
	)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(jsonRecoverer(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openCache connects the key-value store behind the catalog cache.
// Valkey and Redis speak the same protocol; the driver only names the deployment.
func openCache(cfg config.CacheConfig, logger *zap.Logger) db.Store {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Addrs,
		Password:   cfg.Password,
		Standalone: len(cfg.Addrs) == 1,
	})
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.String("driver", cfg.Driver), zap.Error(err))
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Cache not ready", zap.String("driver", cfg.Driver), zap.Error(err))
	}
	logger.Info("Connected to cache", zap.String("driver", cfg.Driver), zap.Strings("addrs", cfg.Addrs))
	return store
}

// sweepGenerations evicts idle client keys until ctx is done.
func sweepGenerations(ctx context.Context, tracker *generation.Tracker, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tracker.Sweep()
		}
	}
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logpkg.FromContextOr(r.Context(), logger).Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					writeJSONError(w, http.StatusInternalServerError, "internal_error", "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.String("client_id", r.Header.Get(chiTransport.HeaderClientID)),
				zap.String("generation", ww.Header().Get(chiTransport.HeaderGeneration)),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
