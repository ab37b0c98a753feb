package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	domainRepo "farewatch-service/internal/domain/repository"
	"farewatch-service/internal/infrastructure/config"
	httpRepo "farewatch-service/internal/interface/repository"
	searchUsecase "farewatch-service/internal/usecase"
	"farewatch-service/pkg/logger"
	"farewatch-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Farewatch Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("farewatch")

	// Set up API clients
	priceRepo := httpRepo.NewTravelpayoutsRepository(cfg, log)
	telegramRepo := httpRepo.NewTelegramRepository(cfg, log)

	var flightInfoRepo domainRepo.FlightInfoRepository
	if cfg.AirLabsAPIKey != "" {
		flightInfoRepo = httpRepo.NewAirLabsRepository(cfg, log)
	} else {
		log.Info("AIRLABS_API_KEY not set, flight enrichment disabled")
	}

	processor := searchUsecase.NewSearchProcessor(cfg, priceRepo, flightInfoRepo, telegramRepo, m, log)

	// Announce startup on the devlogs topic
	processor.Start(ctx)

	// Start the poll loop in a goroutine: one cycle right away, then on ticker
	go func() {
		if err := processor.RunCycle(ctx); err != nil {
			log.Error("Search cycle aborted", "error", err)
		}

		pollTicker := time.NewTicker(cfg.PollInterval)
		defer pollTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Search loop stopped")
				return
			case <-pollTicker.C:
				if err := processor.RunCycle(ctx); err != nil {
					log.Error("Search cycle aborted", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop the poll loop

	// Best-effort shutdown notice
	processor.Stop(shutdownCtx)

	log.Info("Farewatch Service stopped")
}
