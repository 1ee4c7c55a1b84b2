package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"trustgate/internal/audit"
	"trustgate/internal/cache"
	"trustgate/internal/config"
	"trustgate/internal/lookup"
	"trustgate/internal/origin"
	"trustgate/internal/ratelimit"
	"trustgate/internal/store"
	"trustgate/internal/validator"
)

// api carries the request-scoped collaborators for the HTTP handlers.
type api struct {
	evaluator *validator.Evaluator
	writer    *audit.Writer
	limiter   *ratelimit.Limiter
	log       zerolog.Logger

	dbConfigured    bool
	redisConfigured bool
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("invalid log level")
	}
	log = log.Level(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Audit sink: Postgres when configured, otherwise acknowledged no-op so
	// local development needs no database.
	var sink audit.Sink = audit.NopSink{}
	if cfg.Database.URL != "" {
		db, err := store.Open(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		sink = db
		log.Info().Msg("connected to postgres, audit log enabled")
	} else {
		log.Warn().Msg("no database configured, audit entries will be discarded")
	}

	writer := audit.NewWriter(sink, cfg.Audit.Buffer, log)
	writer.Start(ctx)

	// Rate limiter: optional, a nil limiter allows everything.
	var limiter *ratelimit.Limiter
	if cfg.Redis.Addr != "" {
		limiter, err = ratelimit.New(cfg.Redis.Addr, cfg.RateLimit.Requests, cfg.RateLimit.Window, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer limiter.Close()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis, rate limiting enabled")
	} else {
		log.Warn().Msg("no redis configured, rate limiting disabled")
	}

	dnsCache := cache.New()
	dnsCache.StartCleanup(ctx, cfg.DNS.CacheTTL)

	resolver := lookup.NewResolver(cfg.DNS.ResolverURL, cfg.DNS.LookupTimeout)
	evaluator := validator.NewEvaluator(resolver, dnsCache, cfg.DNS.CacheTTL, log)

	a := &api{
		evaluator:       evaluator,
		writer:          writer,
		limiter:         limiter,
		log:             log,
		dbConfigured:    cfg.Database.URL != "",
		redisConfigured: cfg.Redis.Addr != "",
	}

	guard := origin.New()

	mux := http.NewServeMux()
	mux.HandleFunc("/validate-email", guard.Middleware(a.rateLimited(a.validateHandler)))
	mux.HandleFunc("/healthz", a.healthHandler)
	mux.HandleFunc("/info", guard.Middleware(a.infoHandler))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("trustgate API listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-quit
	log.Info().Msg("shutdown signal received, draining in-flight requests")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}

	// Stop the audit writer after the server has drained, so entries from
	// the last in-flight requests still get persisted.
	cancel()
	writer.Wait()

	log.Info().Msg("server shut down cleanly")
}
