package article

import (
	"context"
	"fmt"
)

type Article struct {
	URL      string
	Title    string
	Byline   string
	SiteName string
	Text     string
}

// Fetcher downloads a web page and extracts the article body. All failures
// are reported as *FetchError.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Article, error)
}

type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("article %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
