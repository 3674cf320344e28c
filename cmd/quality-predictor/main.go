package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yasunstudio/sppg-app-sub005/internal/api"
	"github.com/yasunstudio/sppg-app-sub005/internal/config"
	"github.com/yasunstudio/sppg-app-sub005/internal/environment"
	"github.com/yasunstudio/sppg-app-sub005/internal/mq"
	"github.com/yasunstudio/sppg-app-sub005/internal/predict"
	"github.com/yasunstudio/sppg-app-sub005/internal/storage"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("quality-predictor database error: %v", err)
	}
	defer dbPool.Close()

	if err := storage.RunMigrations(ctx, dbPool); err != nil {
		log.Fatalf("quality-predictor migration error: %v", err)
	}

	repo := storage.NewRepository(dbPool)

	engine := predict.NewEngine(predict.Params{
		BaseQuality:  cfg.BaseQualityScore,
		BaseRisk:     cfg.BaseRiskScore,
		UnitValueIDR: cfg.UnitValueIDR,
	})

	publisher := mq.NewAlertPublisher(cfg.KafkaBrokers, cfg.KafkaTopicAlerts)
	defer publisher.Close()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewServer(repo, environment.NewProvider(), engine, publisher).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("quality-predictor listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("quality-predictor server error: %v", err)
	}
}
