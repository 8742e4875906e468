package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"briefly/internal/config"
	"briefly/pkg/summary"
)

type Summarizer interface {
	SummarizeText(ctx context.Context, text, model string, maxWords int) (string, error)
	SummarizeArticle(ctx context.Context, url string) (string, error)
	AnalyzeSentiment(ctx context.Context, text, model string) (string, error)
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	invoker, err := config.NewInvoker(cfg)
	if err != nil {
		log.Fatalf("error creating LLM client: %v", err)
	}

	service := summary.NewService(invoker, config.NewFetcher(cfg), cfg.SummaryOptions())
	os.Exit(run(os.Args[1:], service, os.Stdout, os.Stderr))
}

// run parses args, performs one operation and prints its rendered result.
// It returns the process exit code: 0 on success, 1 when the operation
// failed and 2 on bad usage.
func run(args []string, svc Summarizer, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("summarizer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	url := fs.String("url", "", "article URL to summarize")
	text := fs.String("text", "", "text to summarize or analyze")
	sentiment := fs.Bool("sentiment", false, "analyze the sentiment of -text instead of summarizing it")
	modelName := fs.String("model", "", "model to use (defaults to DEFAULT_MODEL)")
	words := fs.Int("words", summary.ArticleMaxWords, "maximum number of words for a text summary")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *words <= 0 {
		fmt.Fprintln(stderr, "-words must be positive")
		return 2
	}

	ctx := context.Background()

	var result string
	var err error
	switch {
	case *url != "":
		result, err = svc.SummarizeArticle(ctx, *url)
	case *text != "" && *sentiment:
		result, err = svc.AnalyzeSentiment(ctx, *text, *modelName)
	case *text != "":
		result, err = svc.SummarizeText(ctx, *text, *modelName, *words)
	default:
		fs.Usage()
		return 2
	}

	fmt.Fprintln(stdout, summary.Render(result, err))
	if err != nil {
		return 1
	}
	return 0
}
