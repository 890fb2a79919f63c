package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mkobayashi/ai-daily/internal/feed"
)

const (
	// DefaultTimeout bounds a single feed fetch end to end.
	DefaultTimeout = 15 * time.Second
	// DefaultConcurrency is the fetch pool width, independent of catalog size.
	DefaultConcurrency = 10

	userAgent    = "ai-daily/1.0 (RSS Reader)"
	acceptHeader = "application/rss+xml, application/atom+xml, application/xml, text/xml, */*"

	progressEvery = 10
)

// Fetcher retrieves feed documents concurrently and normalizes them into
// articles. Certificate validation is deliberately relaxed: plenty of small
// blogs run with broken TLS, and feed content is treated as untrusted text
// either way.
type Fetcher struct {
	client      *http.Client
	concurrency int
}

func New(timeout time.Duration, concurrency int) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		concurrency: concurrency,
	}
}

// FetchAll retrieves every source in the catalog through a fixed-width
// worker pool and returns the flattened articles plus success and failure
// counts. A failing feed is logged and counted; it never aborts the batch.
func (f *Fetcher) FetchAll(ctx context.Context, sources []feed.Source) ([]feed.Article, int, int) {
	var (
		mu       sync.Mutex
		articles []feed.Article
		okCount  int
		failed   int
		done     atomic.Int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	for _, source := range sources {
		g.Go(func() error {
			arts := f.fetchOne(ctx, source)

			mu.Lock()
			if len(arts) > 0 {
				articles = append(articles, arts...)
				okCount++
			} else {
				failed++
			}
			ok, fail := okCount, failed
			mu.Unlock()

			if n := done.Add(1); n%progressEvery == 0 || n == int64(len(sources)) {
				slog.Info("fetch progress",
					"done", n, "total", len(sources), "ok", ok, "failed", fail)
			}
			return nil
		})
	}
	g.Wait()

	slog.Info("fetch complete", "articles", len(articles), "ok", okCount, "failed", failed)
	return articles, okCount, failed
}

// fetchOne downloads and parses a single feed. Every failure mode, from a
// connect timeout to an XML parse error, resolves to zero articles.
func (f *Fetcher) fetchOne(ctx context.Context, source feed.Source) []feed.Article {
	data, err := f.download(ctx, source.FeedURL)
	if err != nil {
		slog.Warn("feed fetch failed", "source", source.Name, "error", err)
		return nil
	}
	return feed.Parse(data, source)
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
