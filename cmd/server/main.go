package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	router "github.com/dkeye/Notes/internal/adapters/http"
	"github.com/dkeye/Notes/internal/app"
	"github.com/dkeye/Notes/internal/app/notes"
	"github.com/dkeye/Notes/internal/app/orch"
	"github.com/dkeye/Notes/internal/config"
	applog "github.com/dkeye/Notes/internal/log"
	"github.com/dkeye/Notes/internal/store"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Early logger so config.Load can report problems.
	applog.Init(applog.Config{Level: "info", Pretty: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	applog.Init(cfg.Log)

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("Server exited gracefully")
}

func run(ctx context.Context, cfg *config.Config) error {
	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open note store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("close note store")
		}
	}()

	disp := app.NewDispatcher(cfg.Dispatcher.QueueSize)
	o := orch.New(disp, app.PolicyFromString(cfg.Dispatcher.Backpressure))
	svc := notes.NewService(st, o)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router.SetupRouter(ctx, cfg, o, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return disp.Run(gCtx)
	})
	g.Go(func() error {
		log.Info().Str("addr", addr).Str("backpressure", cfg.Dispatcher.Backpressure).Msg("Notes server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
