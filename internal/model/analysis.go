package model

import "time"

const (
	KindTextSummary    = "text_summary"
	KindArticleSummary = "article_summary"
	KindSentiment      = "sentiment"

	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Analysis is one recorded call to the summary service.
type Analysis struct {
	ID        int64
	JobID     string
	Kind      string
	SourceURL string
	// Publisher and PublishedAt come from the news feed for worker jobs.
	Publisher   string
	PublishedAt *time.Time
	Model       string
	Input       string
	Output      string
	Status      string
	Error       string
	CreatedAt   time.Time
}
