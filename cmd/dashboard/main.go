package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dashboard-curvas/internal/config"
	"dashboard-curvas/internal/service/cargos"
	"dashboard-curvas/internal/service/curvas"
	generate_excel "dashboard-curvas/internal/service/generate-excel"
	"dashboard-curvas/internal/service/reconcile"
	"dashboard-curvas/internal/storage/mysql"
)

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	storage, err := mysql.New(*cfg)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	// one clock decides the open month for the curve and the role breakdown
	now := time.Now

	curvaService := curvas.NewService(storage, curvas.NewAggregator(now), curvas.Options{
		Kpi:          curvas.KpiOptions{MinActiveMonthCost: cfg.MinActiveMonthCost},
		FetchTimeout: cfg.FetchTimeout,
	})
	cargoService := cargos.NewService(curvaService, storage, now)

	svc := services{
		curvas:    curvaService,
		cargos:    cargoService,
		reconcile: reconcile.NewService(storage, cfg.ReconciliationTolerance),
		report:    generate_excel.NewGenerateService(curvaService, cargoService),
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, svc),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
