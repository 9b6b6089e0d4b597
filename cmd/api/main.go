package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"uncharted_escape/internal/adapters/gemini"
	server "uncharted_escape/internal/adapters/http_server"
	"uncharted_escape/internal/adapters/memstore"
	"uncharted_escape/internal/adapters/observability"
	redisad "uncharted_escape/internal/adapters/redis"
	"uncharted_escape/internal/adapters/relay"
	"uncharted_escape/internal/app"
	"uncharted_escape/internal/domain"
	"uncharted_escape/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogFile)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// session state + suggestion cache
	var (
		store domain.SessionStore
		cache domain.Cache
		rdb   *redis.Client
	)
	if cfg.RedisAddr != "" {
		rdb = redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		store = redisad.NewSessionStore(rdb, cfg.SessionTTL)
		cache = redisad.NewCache(rdb)
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis connection ok")
	} else {
		store = memstore.NewSessionStore(cfg.SessionTTL)
		cache = memstore.NewCache()
		log.Info().Msg("sessions kept in process memory")
	}

	seed, err := app.LoadSeed(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load seed catalog failed")
	}

	// collaborators
	ai := gemini.New(cfg.GeminiBase, cfg.GeminiKey, cfg.GeminiModel, cfg.GeminiRPS)
	if !ai.HasKey() {
		log.Warn().Msg("no Gemini API key configured; AI features will use their fallbacks")
	}
	svc := app.NewService(app.NewSessions(store, seed), ai, relay.New(cfg.RelayURL), cache, cfg.SuggestTTL)

	limit, err := server.RateLimit(cfg.AIRateLimit, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("rate limiter setup failed")
	}

	// http
	srv := server.New(cfg.HTTPTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Svc: svc, AILimit: limit})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if rdb != nil {
			return rdb.Close()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("bye")
}
