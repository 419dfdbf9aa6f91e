// Command server runs the wellness backend HTTP API.
//
// @title       Wellness Backend API
// @version     1.0
// @description Mood tracking, community posts, self-care checklists and an AI companion chat.
// @BasePath    /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-wellness-backend/internal/config"
	httpapi "github.com/tbourn/go-wellness-backend/internal/http"
	"github.com/tbourn/go-wellness-backend/internal/llm"
	"github.com/tbourn/go-wellness-backend/internal/observability"
	"github.com/tbourn/go-wellness-backend/internal/repo"
	"github.com/tbourn/go-wellness-backend/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is normal outside local development.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.ConfigureLogger(os.Stdout, cfg.LogPretty, cfg.OTEL.ServiceName)
	sysutil.SetLogLevel(cfg.LogLevel)
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file loaded; using process environment")
	}

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("store init failed")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("store close")
		}
	}()

	gw, err := newGateway(ctx, cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("language model init failed")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, store, gw, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	log.Info().
		Str("addr", srv.Addr).
		Str("version", version).
		Str("store", cfg.StoreDriver).
		Bool("llm", gw.Configured()).
		Msg("wellness backend listening")
	if err := runServer(ctx, srv); err != nil {
		log.Error().Err(err).Msg("server error")
		return
	}
	log.Info().Msg("server stopped")
}

// openStore builds the configured entity store and seeds the community
// board when enabled.
func openStore(ctx context.Context, cfg config.Config) (repo.Store, error) {
	var (
		store repo.Store
		err   error
	)
	switch cfg.StoreDriver {
	case "sqlite":
		store, err = repo.NewSQLStore(cfg.DBPath)
	default:
		store = repo.NewMemStore()
	}
	if err != nil {
		return nil, err
	}
	if cfg.SeedDemoData {
		if err := repo.SeedThoughtPosts(ctx, store, time.Now().UTC()); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return store, nil
}

// newGateway wraps the Ark chat model. Without credentials the gateway runs
// unconfigured and every call takes its fallback path.
func newGateway(ctx context.Context, cfg config.LLMConfig) (*llm.Gateway, error) {
	m, err := llm.NewArkModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if m == nil {
		log.Warn().Msg("ARK_API_KEY or ARK_MODEL not set; language model features will use fallbacks")
		return llm.New(nil, cfg), nil
	}
	return llm.New(m, cfg), nil
}

// runServer serves until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
