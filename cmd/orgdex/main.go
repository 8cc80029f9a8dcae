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

	"github.com/givesearch/orgdex/internal/config"
	dbRedis "github.com/givesearch/orgdex/internal/db/redis"
	"github.com/givesearch/orgdex/internal/domain"
	logpkg "github.com/givesearch/orgdex/internal/logger"
	"github.com/givesearch/orgdex/internal/metrics"
	"github.com/givesearch/orgdex/internal/repository/embcache"
	organizationrepo "github.com/givesearch/orgdex/internal/repository/organization"
	chiTransport "github.com/givesearch/orgdex/internal/transport/chi"
	localEmb "github.com/givesearch/orgdex/internal/transport/local"
	openaiEmb "github.com/givesearch/orgdex/internal/transport/openai"
	embeddinguc "github.com/givesearch/orgdex/internal/usecase/embedding"
	healthuc "github.com/givesearch/orgdex/internal/usecase/health"
	indexuc "github.com/givesearch/orgdex/internal/usecase/index"
	searchuc "github.com/givesearch/orgdex/internal/usecase/search"
	"github.com/givesearch/orgdex/internal/version"
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

	logger.Info("Starting orgdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	// Embedder chain. Search gets the degrading wrapper
	// (a failed query embedding degrades to a keyword-only ranking);
	// refresh keeps the raw cached embedder for per-item error accounting.
	dims := cfg.Embedding.Vectorizer.Dimensions
	provider := buildProvider(cfg, logger)
	cached := embcache.New(provider, store, metrics.EmbeddingCacheTotal, logger)
	resilient := embeddinguc.NewResilient(cached, dims, logger)

	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Vectorizer.Provider),
		zap.String("model", cfg.Embedding.Vectorizer.Model),
		zap.Int("dimensions", dims),
	)

	orgRepo := organizationrepo.New(store, dims)

	searchSvc := searchuc.New(orgRepo, resilient, searchuc.Params{
		SemanticWeight: cfg.Search.SemanticWeight,
		KeywordWeight:  cfg.Search.KeywordWeight,
		HybridBonus:    cfg.Search.HybridBonus,
		KeywordScore:   cfg.Search.KeywordScore,
		Threshold:      cfg.Search.ScoreThreshold,
		CandidateCap:   cfg.Search.CandidateCap,
	}, logger)

	refreshSvc := indexuc.New(orgRepo, cached, logger).
		WithPoolSize(cfg.Refresh.PoolSize).
		WithBatchLimit(cfg.Refresh.BatchLimit)

	healthSvc := healthuc.New(store, newEmbeddingHealthChecker(cached))

	server := chiTransport.NewServer(searchSvc, refreshSvc, orgRepo, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
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

// buildProvider selects the base embedding provider from config.
func buildProvider(cfg config.Config, logger *zap.Logger) domain.Embedder {
	v := cfg.Embedding.Vectorizer
	if v.Provider == config.LocalProvider {
		return localEmb.NewEmbedder(v.Dimensions)
	}

	provCfg := cfg.Embedding.Providers[v.Provider]
	return openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     provCfg.APIKey,
		BaseURL:    provCfg.BaseURL,
		Model:      v.Model,
		Dimensions: v.Dimensions,
		Provider:   v.Provider,
		Logger:     logger,
	})
}

// embeddingHealthChecker wraps domain.Embedder to implement health.EmbeddingChecker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
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

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}
