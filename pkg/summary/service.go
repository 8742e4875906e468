package summary

import (
	"context"
	"errors"
	"log/slog"

	"briefly/pkg/article"
	"briefly/pkg/llm"
)

const (
	DefaultModel    = llm.DefaultOpenAIModel
	ArticleMaxWords = 150

	articleFailurePrefix = "Error summarizing the article: "
	requestFailure       = "Error in processing the request."
)

type Options struct {
	// DefaultModel is used by AnalyzeSentiment when no model is given.
	DefaultModel string
	// ArticleModel is the fixed model used by SummarizeArticle.
	ArticleModel string
}

// Service runs the text summary, article summary and sentiment operations.
// Every operation makes at most one model call and nothing is cached.
type Service struct {
	invoker llm.Invoker
	fetcher article.Fetcher
	opts    Options
}

func NewService(invoker llm.Invoker, fetcher article.Fetcher, opts Options) *Service {
	if opts.DefaultModel == "" {
		opts.DefaultModel = DefaultModel
	}
	if opts.ArticleModel == "" {
		opts.ArticleModel = opts.DefaultModel
	}
	return &Service{invoker: invoker, fetcher: fetcher, opts: opts}
}

func (s *Service) ArticleModel() string {
	return s.opts.ArticleModel
}

func (s *Service) DefaultModel() string {
	return s.opts.DefaultModel
}

// SummarizeText asks the model for a summary of at most maxWords words. The
// bound is passed through as given and is not checked on the result.
func (s *Service) SummarizeText(ctx context.Context, text, model string, maxWords int) (string, error) {
	if model == "" {
		model = s.opts.DefaultModel
	}

	summary, err := s.invoker.Complete(ctx, model, llm.SummaryPrompt(text, maxWords))
	if err != nil {
		slog.Warn("text summary failed", "provider", s.invoker.Name(), "model", model, "error", err)
		return "", err
	}
	return summary, nil
}

// SummarizeArticle fetches the article at url and summarizes its text with
// the article model and a 150 word limit.
func (s *Service) SummarizeArticle(ctx context.Context, url string) (string, error) {
	a, err := s.FetchArticle(ctx, url)
	if err != nil {
		return "", err
	}
	return s.SummarizeText(ctx, a.Text, s.opts.ArticleModel, ArticleMaxWords)
}

// FetchArticle returns the fetched article. Errors are always *article.FetchError.
func (s *Service) FetchArticle(ctx context.Context, url string) (*article.Article, error) {
	a, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		var fetchErr *article.FetchError
		if !errors.As(err, &fetchErr) {
			err = &article.FetchError{URL: url, Err: err}
		}
		slog.Warn("article fetch failed", "url", url, "error", err)
		return nil, err
	}
	return a, nil
}

// AnalyzeSentiment returns the model's free-text description of the
// sentiment of text.
func (s *Service) AnalyzeSentiment(ctx context.Context, text, model string) (string, error) {
	if model == "" {
		model = s.opts.DefaultModel
	}

	sentiment, err := s.invoker.Complete(ctx, model, llm.SentimentPrompt(text))
	if err != nil {
		slog.Warn("sentiment analysis failed", "provider", s.invoker.Name(), "model", model, "error", err)
		return "", err
	}
	return sentiment, nil
}
