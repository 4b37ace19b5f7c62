package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Antoni2487/Bodeguita/internal/config"
	"github.com/Antoni2487/Bodeguita/internal/infra"
	"github.com/Antoni2487/Bodeguita/internal/repository"
	"github.com/Antoni2487/Bodeguita/internal/router"
	"github.com/Antoni2487/Bodeguita/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Start goroutine worker pool for async tasks (reconciliation alerts,
	// ticket PDF + email). Worker handlers are wired here (composition root)
	// so the pool has full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	handlers := map[string]worker.Handler{
		worker.QueueAlertas: worker.NewAlertaWorker(mailer, cfg.OperatorEmail),
		worker.QueueTickets: worker.NewTicketWorker(
			repository.NewVentaRepository(db),
			repository.NewProductoBodegaRepository(db),
			repository.NewBodegaRepository(db),
			repository.NewUsuarioRepository(db),
			mailer,
			cfg.PDFStoragePath,
		),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	r, app := router.New(cfg, db, rdb)

	// Rehydrate in-memory state BEFORE accepting traffic: pending orders back
	// into their per-bodega queues, notifications back into per-user stacks.
	if err := app.Notificaciones.InicializarPilas(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to rehydrate notification stacks")
	}
	if err := app.Pedidos.InicializarColas(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to rehydrate order queues")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Bodeguita backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
