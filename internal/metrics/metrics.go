package metrics

import (
	"context"
	"time"

	"briefly/pkg/article"
	"briefly/pkg/llm"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefly_llm_requests_total",
			Help: "Total number of model invocations",
		},
		[]string{"provider", "outcome"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "briefly_llm_request_duration_seconds",
			Help:    "Duration of model invocations in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"provider"},
	)

	ArticleFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefly_article_fetches_total",
			Help: "Total number of article fetches",
		},
		[]string{"outcome"},
	)
)

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

type instrumentedInvoker struct {
	next llm.Invoker
}

// InstrumentInvoker records count and latency of every Complete call.
func InstrumentInvoker(next llm.Invoker) llm.Invoker {
	return &instrumentedInvoker{next: next}
}

func (i *instrumentedInvoker) Name() string {
	return i.next.Name()
}

func (i *instrumentedInvoker) Complete(ctx context.Context, model string, messages []llm.Message) (string, error) {
	start := time.Now()
	content, err := i.next.Complete(ctx, model, messages)
	LLMRequestDuration.WithLabelValues(i.next.Name()).Observe(time.Since(start).Seconds())
	LLMRequests.WithLabelValues(i.next.Name(), outcome(err)).Inc()
	return content, err
}

type instrumentedFetcher struct {
	next article.Fetcher
}

func InstrumentFetcher(next article.Fetcher) article.Fetcher {
	return &instrumentedFetcher{next: next}
}

func (f *instrumentedFetcher) Fetch(ctx context.Context, url string) (*article.Article, error) {
	a, err := f.next.Fetch(ctx, url)
	ArticleFetches.WithLabelValues(outcome(err)).Inc()
	return a, err
}
