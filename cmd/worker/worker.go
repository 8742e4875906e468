package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"briefly/db"
	"briefly/internal/model"
)

type ArticleAnalyzer interface {
	SummarizeArticle(ctx context.Context, url string) (string, error)
	AnalyzeSentiment(ctx context.Context, text, model string) (string, error)
	DefaultModel() string
	ArticleModel() string
}

type AnalysisSaver interface {
	SaveAnalysis(a *model.Analysis) error
}

type JobSource interface {
	Pop(ctx context.Context, timeout time.Duration) (*db.Job, error)
}

type Worker struct {
	analyzer ArticleAnalyzer
	store    AnalysisSaver
}

func NewWorker(analyzer ArticleAnalyzer, store AnalysisSaver) *Worker {
	return &Worker{analyzer: analyzer, store: store}
}

// Run processes jobs until no job arrives within popTimeout. A failed pop is
// retried after retryDelay. It returns the number of processed jobs.
func (w *Worker) Run(ctx context.Context, src JobSource, popTimeout, retryDelay time.Duration) (int, error) {
	var processed int
	for {
		job, err := src.Pop(ctx, popTimeout)
		if errors.Is(err, db.ErrQueueEmpty) {
			return processed, nil
		}
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			select {
			case <-ctx.Done():
				return processed, ctx.Err()
			case <-time.After(retryDelay):
			}
			continue
		}

		w.Process(ctx, job)
		processed++
	}
}

// Process summarizes the job's article and then analyzes the sentiment of
// the summary. Failed jobs are recorded and never re-queued. The summary
// service already logs failures.
func (w *Worker) Process(ctx context.Context, job *db.Job) {
	base := model.Analysis{
		JobID:     job.ID,
		SourceURL: job.URL,
		Publisher: job.Publisher,
	}
	if !job.PublishedAt.IsZero() {
		published := job.PublishedAt
		base.PublishedAt = &published
	}

	summaryText, err := w.analyzer.SummarizeArticle(ctx, job.URL)
	a := base
	a.Kind = model.KindArticleSummary
	a.Model = w.analyzer.ArticleModel()
	w.save(a, summaryText, err)
	if err != nil {
		return
	}

	sentiment, err := w.analyzer.AnalyzeSentiment(ctx, summaryText, "")
	a = base
	a.Kind = model.KindSentiment
	a.Model = w.analyzer.DefaultModel()
	a.Input = summaryText
	w.save(a, sentiment, err)
	if err != nil {
		return
	}

	slog.Info("article processed successfully", "job_id", job.ID, "url", job.URL, "source", job.Source)
}

func (w *Worker) save(a model.Analysis, output string, callErr error) {
	a.Status = model.StatusCompleted
	a.Output = output
	if callErr != nil {
		a.Status = model.StatusFailed
		a.Error = callErr.Error()
	}

	if err := w.store.SaveAnalysis(&a); err != nil {
		slog.Error("error saving analysis", "job_id", a.JobID, "kind", a.Kind, "error", err)
	}
}
