package article

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (compatible; briefly/1.0; +https://github.com/briefly)"
	DefaultMaxBytes  = 5 * 1024 * 1024
	DefaultTimeout   = 30 * time.Second
)

var ErrNoText = errors.New("no article text found")

type ReadabilityFetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

func NewReadabilityFetcher(timeout time.Duration, userAgent string, maxBytes int64) *ReadabilityFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	return &ReadabilityFetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
	}
}

func (f *ReadabilityFetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("invalid url: %w", err)}
	}
	if pageURL.Scheme != "http" && pageURL.Scheme != "https" {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("unsupported url scheme %q", pageURL.Scheme)}
	}

	html, err := f.fetchHTML(ctx, rawURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}

	a, err := extract(html, pageURL)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	return a, nil
}

func (f *ReadabilityFetcher) fetchHTML(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml") {
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}

	// Read one byte past the limit to detect oversized pages.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("content exceeds size limit of %d bytes", f.maxBytes)
	}

	return body, nil
}

func extract(html []byte, pageURL *url.URL) (*Article, error) {
	a := &Article{URL: pageURL.String()}

	parsed, err := readability.FromReader(bytes.NewReader(html), pageURL)
	if err == nil {
		a.Title = strings.TrimSpace(parsed.Title)
		a.Byline = strings.TrimSpace(parsed.Byline)
		a.SiteName = strings.TrimSpace(parsed.SiteName)
		a.Text = strings.TrimSpace(parsed.TextContent)
	}

	if a.Text == "" {
		title, text, qerr := extractWithGoquery(html)
		if qerr != nil {
			if err != nil {
				return nil, fmt.Errorf("failed to parse HTML: %w", err)
			}
			return nil, fmt.Errorf("failed to parse HTML: %w", qerr)
		}
		if a.Title == "" {
			a.Title = title
		}
		a.Text = text
	}

	if a.Text == "" {
		return nil, ErrNoText
	}
	return a, nil
}

// extractWithGoquery is the fallback for pages readability cannot score,
// typically short pages without enough paragraph content.
func extractWithGoquery(html []byte) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", "", err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("script, style, nav, aside, footer, header, iframe, noscript").Remove()

	var sel *goquery.Selection
	if article := doc.Find("article").First(); article.Length() > 0 {
		sel = article
	} else if main := doc.Find("main").First(); main.Length() > 0 {
		sel = main
	} else {
		sel = doc.Find("body")
	}

	var blocks []string
	sel.Find("h1, h2, h3, h4, p, li, blockquote").Each(func(i int, s *goquery.Selection) {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		blocks = append(blocks, strings.Join(strings.Fields(sel.Text()), " "))
	}

	return title, strings.TrimSpace(strings.Join(blocks, "\n\n")), nil
}
