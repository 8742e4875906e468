package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"briefly/pkg/article"
	"briefly/pkg/llm"

	"github.com/go-playground/assert/v2"
)

type fakeSummarizer struct {
	reply string
	err   error

	op       string
	text     string
	model    string
	maxWords int
	url      string
}

func (f *fakeSummarizer) SummarizeText(ctx context.Context, text, model string, maxWords int) (string, error) {
	f.op, f.text, f.model, f.maxWords = "text", text, model, maxWords
	return f.reply, f.err
}

func (f *fakeSummarizer) SummarizeArticle(ctx context.Context, url string) (string, error) {
	f.op, f.url = "article", url
	return f.reply, f.err
}

func (f *fakeSummarizer) AnalyzeSentiment(ctx context.Context, text, model string) (string, error) {
	f.op, f.text, f.model = "sentiment", text, model
	return f.reply, f.err
}

func TestRunDispatch(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		op       string
		maxWords int
	}{
		{"article", []string{"-url", "https://example.com/a"}, "article", 0},
		{"text default words", []string{"-text", "body"}, "text", 150},
		{"text custom words", []string{"-text", "body", "-words", "20", "-model", "m"}, "text", 20},
		{"sentiment", []string{"-text", "body", "-sentiment"}, "sentiment", 0},
		{"url wins over text", []string{"-text", "body", "-url", "https://example.com/a"}, "article", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSummarizer{reply: "Result."}
			var stdout, stderr bytes.Buffer

			code := run(tt.args, svc, &stdout, &stderr)

			assert.Equal(t, 0, code)
			assert.Equal(t, "Result.\n", stdout.String())
			assert.Equal(t, tt.op, svc.op)
			assert.Equal(t, tt.maxWords, svc.maxWords)
		})
	}
}

func TestRunFailureOutput(t *testing.T) {
	fetchErr := &article.FetchError{URL: "https://example.com/a", Err: errors.New("HTTP 404")}
	invErr := &llm.InvocationError{Provider: "openai", Model: "m", Err: errors.New("401 unauthorized")}

	tests := []struct {
		name string
		args []string
		err  error
		want string
	}{
		{"fetch failure", []string{"-url", "https://example.com/a"}, fetchErr, "Error summarizing the article: " + fetchErr.Error() + "\n"},
		{"article invocation failure", []string{"-url", "https://example.com/a"}, invErr, "Error in processing the request.\n"},
		{"text invocation failure", []string{"-text", "body"}, invErr, "Error in processing the request.\n"},
		{"sentiment invocation failure", []string{"-text", "body", "-sentiment"}, invErr, "Error in processing the request.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSummarizer{err: tt.err}
			var stdout, stderr bytes.Buffer

			code := run(tt.args, svc, &stdout, &stderr)

			assert.Equal(t, 1, code)
			assert.Equal(t, tt.want, stdout.String())
		})
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{}},
		{"unknown flag", []string{"-bogus"}},
		{"zero words", []string{"-text", "body", "-words", "0"}},
		{"negative words", []string{"-text", "body", "-words", "-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSummarizer{}
			var stdout, stderr bytes.Buffer

			code := run(tt.args, svc, &stdout, &stderr)

			assert.Equal(t, 2, code)
			assert.Equal(t, "", svc.op)
			assert.Equal(t, "", stdout.String())
		})
	}
}
