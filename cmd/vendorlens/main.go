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

	"github.com/ttcdx/vendorlens/internal/catalog"
	"github.com/ttcdx/vendorlens/internal/config"
	"github.com/ttcdx/vendorlens/internal/corpus"
	"github.com/ttcdx/vendorlens/internal/index"
	logpkg "github.com/ttcdx/vendorlens/internal/logger"
	"github.com/ttcdx/vendorlens/internal/metrics"
	chiTransport "github.com/ttcdx/vendorlens/internal/transport/chi"
	openaiReason "github.com/ttcdx/vendorlens/internal/transport/openai"
	healthuc "github.com/ttcdx/vendorlens/internal/usecase/health"
	queryuc "github.com/ttcdx/vendorlens/internal/usecase/query"
	recommenduc "github.com/ttcdx/vendorlens/internal/usecase/recommend"
	searchuc "github.com/ttcdx/vendorlens/internal/usecase/search"
	"github.com/ttcdx/vendorlens/internal/version"
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

	logger.Info("Starting vendorlens API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("corpus_path", cfg.Data.CorpusPath),
		zap.String("catalog_path", cfg.Data.CatalogPath),
	)

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	// Load the pre-built corpus and build the index off it
	store := corpus.NewStore()
	ix := index.New(index.Config{
		FieldBoost:    cfg.Search.FieldBoost,
		SnippetLength: cfg.Search.SnippetLength,
	})
	if cfg.Data.CorpusPath != "" {
		docs, err := corpus.Load(cfg.Data.CorpusPath)
		if err != nil {
			logger.Fatal("Failed to load corpus", zap.Error(err))
		}
		if err := store.Replace(docs); err != nil {
			logger.Fatal("Failed to populate document store", zap.Error(err))
		}
		ix.Rebuild(docs)
		logger.Info("Corpus indexed", zap.Int("documents", store.Len()))
	}

	// Load the vendor catalog
	cat := catalog.New()
	if cfg.Data.CatalogPath != "" {
		vendors, err := catalog.Load(cfg.Data.CatalogPath)
		if err != nil {
			logger.Fatal("Failed to load vendor catalog", zap.Error(err))
		}
		if err := cat.Replace(vendors); err != nil {
			logger.Fatal("Failed to populate catalog", zap.Error(err))
		}
		logger.Info("Catalog loaded", zap.Int("vendors", cat.Len()))
	}

	// Scoring dimension table: configured or stock questionnaire
	dimensions := recommenduc.DefaultDimensions()
	if len(cfg.Recommend.Dimensions) > 0 {
		dimensions = make([]recommenduc.Dimension, 0, len(cfg.Recommend.Dimensions))
		for _, d := range cfg.Recommend.Dimensions {
			dimensions = append(dimensions, recommenduc.Dimension{
				Key: d.Key, Weight: d.Weight, Multi: d.Multi,
			})
		}
	}
	if err := recommenduc.ValidateDimensions(dimensions); err != nil {
		logger.Fatal("Invalid dimension table", zap.Error(err))
	}

	// Optional reasoning provider; the orchestrator falls back to the
	// deterministic template renderer when unconfigured or failing.
	var reasoner queryuc.Reasoner
	if cfg.Reasoning.APIKey != "" {
		reasoner = openaiReason.NewReasoner(&openaiReason.Config{
			APIKey:  cfg.Reasoning.APIKey,
			BaseURL: cfg.Reasoning.BaseURL,
			Model:   cfg.Reasoning.Model,
			Logger:  logger,
		})
		logger.Info("Reasoning provider configured", zap.String("model", cfg.Reasoning.Model))
	}

	// Use case services
	searchSvc := searchuc.New(ix)
	recommendSvc := recommenduc.New(cat, dimensions)
	orchestrator := queryuc.New(searchSvc, recommendSvc, reasoner, queryuc.Config{
		Timeout:      time.Duration(cfg.Search.TimeoutSec) * time.Second,
		TopN:         cfg.Recommend.TopN,
		RelatedLimit: cfg.Recommend.RelatedLimit,
	})
	healthSvc := healthuc.New(map[string]healthuc.SnapshotLener{
		"corpus":  store,
		"index":   ix,
		"catalog": cat,
	})

	// HTTP server
	server := chiTransport.NewServer(orchestrator, healthSvc, chiTransport.PageLimits{
		Default: cfg.Search.DefaultPageSize,
		Max:     cfg.Search.MaxPageSize,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

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

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
