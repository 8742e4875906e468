package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"briefly/db"
	"briefly/internal/config"
	"briefly/pkg/news"
)

const (
	fetchLimit = 50
	seenTTL    = 7 * 24 * time.Hour
)

type JobQueue interface {
	Push(ctx context.Context, job db.Job) error
	MarkSeen(ctx context.Context, source, externalID string, ttl time.Duration) (bool, error)
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	rdb, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer rdb.Close()

	queue := db.NewQueue(rdb, db.ArticleQueueKey)

	var clients []news.NewsClient
	if cfg.FinnhubAPIKey != "" {
		clients = append(clients, news.NewFinnHubClient(cfg.FinnhubAPIKey))
	}
	if cfg.AlphaVantageAPIKey != "" {
		clients = append(clients, news.NewAlphaVantageClient(cfg.AlphaVantageAPIKey))
	}

	if len(clients) == 0 {
		slog.Error("no news source API keys configured")
		return
	}

	for _, client := range clients {
		source := client.Name()

		fetchedArticles, err := client.Fetch(ctx, fetchLimit)
		if err != nil {
			slog.Error("error fetching articles", "source", source, "error", err)
			continue
		}

		queued, skipped, failed := enqueue(ctx, queue, source, fetchedArticles)

		slog.Info("fetch complete", "source", source, "queued", queued, "skipped", skipped, "errors", failed)
	}
}

// enqueue pushes one job per article that was not queued within seenTTL.
func enqueue(ctx context.Context, queue JobQueue, source string, articles []news.Article) (queued, skipped, failed int) {
	for _, a := range articles {
		fresh, err := queue.MarkSeen(ctx, source, a.ExternalID, seenTTL)
		if err != nil {
			slog.Error("error checking seen articles", "source", source, "error", err, "url", a.URL)
			failed++
			continue
		}
		if !fresh {
			skipped++
			continue
		}

		job := db.NewJob(a.URL, source, a.Headline)
		job.ExternalID = a.ExternalID
		job.Publisher = a.Publisher
		job.PublishedAt = a.PublishedAt

		if err := queue.Push(ctx, job); err != nil {
			slog.Error("error pushing to Redis queue", "source", source, "error", err, "url", a.URL)
			failed++
			continue
		}
		queued++
	}
	return queued, skipped, failed
}
