package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"briefly/db"
	"briefly/internal/config"
	"briefly/internal/metrics"
	"briefly/internal/repository"
	"briefly/pkg/summary"
)

const (
	popTimeout    = 30 * time.Second
	popRetryDelay = 5 * time.Second
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	invoker, err := config.NewInvoker(cfg)
	if err != nil {
		log.Fatalf("error creating LLM client: %v", err)
	}

	ctx := context.Background()

	rdb, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer rdb.Close()

	conn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer conn.Close()

	service := summary.NewService(
		metrics.InstrumentInvoker(invoker),
		metrics.InstrumentFetcher(config.NewFetcher(cfg)),
		cfg.SummaryOptions(),
	)
	worker := NewWorker(service, repository.NewAnalysisRepository(conn))
	queue := db.NewQueue(rdb, db.ArticleQueueKey)

	processed, err := worker.Run(ctx, queue, popTimeout, popRetryDelay)
	if err != nil {
		log.Fatalf("worker stopped: %v", err)
	}
	slog.Info("queue drained, exiting", "processed", processed)
}
