// Package runner orchestrates the fetch -> filter -> score -> summarize ->
// publish pipeline.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkobayashi/ai-daily/internal/ai"
	"github.com/mkobayashi/ai-daily/internal/curator"
	"github.com/mkobayashi/ai-daily/internal/feed"
	"github.com/mkobayashi/ai-daily/internal/publisher"
	"github.com/mkobayashi/ai-daily/internal/report"
)

// Fetcher collects articles from a source catalog. It reports the number
// of sources that yielded articles and the number that did not.
type Fetcher interface {
	FetchAll(ctx context.Context, sources []feed.Source) (articles []feed.Article, successCount, failCount int)
}

// Runner executes the full digest pipeline against a fixed source catalog.
type Runner struct {
	sources    []feed.Source
	hours      int
	topN       int
	lang       string
	fetcher    Fetcher
	caller     ai.Caller
	publishers []publisher.Publisher
}

func New(sources []feed.Source, hours, topN int, lang string, f Fetcher, caller ai.Caller, pubs []publisher.Publisher) *Runner {
	return &Runner{
		sources:    sources,
		hours:      hours,
		topN:       topN,
		lang:       lang,
		fetcher:    f,
		caller:     caller,
		publishers: pubs,
	}
}

// Run executes the pipeline once. Now anchors the time window and the
// report date.
func (r *Runner) Run(ctx context.Context, now time.Time) (*report.Digest, error) {
	slog.Info("starting pipeline",
		"sources", len(r.sources), "hours", r.hours, "top_n", r.topN, "lang", r.lang)

	articles, successCount, failCount := r.fetcher.FetchAll(ctx, r.sources)
	if len(articles) == 0 {
		return nil, fmt.Errorf("runner: no articles fetched from any feed, check network connection")
	}
	slog.Info("fetch complete",
		"articles", len(articles), "success", successCount, "failed", failCount)

	window := time.Duration(r.hours) * time.Hour
	recent := curator.FilterRecent(articles, window, now)
	if len(recent) == 0 {
		return nil, fmt.Errorf("runner: no articles within the last %d hours, try increasing the window (e.g. 168 for one week)", r.hours)
	}
	slog.Info("time filter applied", "recent", len(recent), "hours", r.hours)

	slog.Info("scoring articles", "count", len(recent))
	scores := curator.ScoreArticles(ctx, r.caller, recent)

	ranked := curator.Rank(recent, scores, r.topN)
	if len(ranked) > 0 {
		slog.Info("articles ranked",
			"selected", len(ranked),
			"score_high", ranked[0].Score.Total(),
			"score_low", ranked[len(ranked)-1].Score.Total())
	}

	slog.Info("summarizing top articles", "count", len(ranked))
	top := make([]feed.Article, len(ranked))
	for i, a := range ranked {
		top[i] = a.Article
	}
	summaries := curator.SummarizeArticles(ctx, r.caller, top, r.lang)
	for i := range ranked {
		if sm, ok := summaries[i]; ok {
			ranked[i].Summary = sm
		} else {
			ranked[i].Summary = curator.FallbackSummary(ranked[i].Article)
		}
	}

	slog.Info("generating highlights")
	highlights := curator.Highlights(ctx, r.caller, ranked, r.lang)

	stats := report.Stats{
		TotalFeeds:       len(r.sources),
		SuccessFeeds:     successCount,
		FetchedArticles:  len(articles),
		FilteredArticles: len(recent),
		WindowHours:      r.hours,
	}
	digest := report.Build(ranked, highlights, stats, r.lang, now)

	// Continue with the remaining publishers even if one fails.
	var publishErrors []error
	for _, pub := range r.publishers {
		if err := pub.Publish(ctx, digest); err != nil {
			publishErrors = append(publishErrors, fmt.Errorf("publish via %T failed: %w", pub, err))
			slog.Warn("publisher failed", "publisher", fmt.Sprintf("%T", pub), "error", err)
		} else {
			slog.Info("published", "publisher", fmt.Sprintf("%T", pub))
		}
	}
	if len(publishErrors) == len(r.publishers) && len(r.publishers) > 0 {
		return nil, fmt.Errorf("runner: all publishers failed: %v", publishErrors)
	}

	slog.Info("pipeline complete",
		"selected", len(ranked), "publisher_failures", len(publishErrors))
	return digest, nil
}
