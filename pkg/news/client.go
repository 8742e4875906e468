package news

import (
	"context"
	"time"
)

// Article is a feed entry. ExternalID is stable per source and is used to
// skip entries that were already queued.
type Article struct {
	ExternalID  string
	Headline    string
	URL         string
	Source      string
	Publisher   string
	PublishedAt time.Time
}

type NewsClient interface {
	Fetch(ctx context.Context, limit int) ([]Article, error)
	Name() string
}
