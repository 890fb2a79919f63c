package curator

import (
	"context"
	"log/slog"

	"github.com/mkobayashi/ai-daily/internal/ai"
	"github.com/mkobayashi/ai-daily/internal/feed"
)

// SummarizeArticles generates localized titles, summaries, and reasons for
// the top-ranked articles, keyed by input index. Batching, waves, and
// whole-batch fallback mirror the scoring stage; the fallback summary is
// the article's own title.
func SummarizeArticles(ctx context.Context, caller ai.Caller, articles []feed.Article, lang string) map[int]Summary {
	batches := makeBatches(articles)
	slog.Info("ai summarization", "articles", len(articles), "batches", len(batches))

	summaries := make(map[int]Summary, len(articles))
	runWaves(ctx, batches, func(ctx context.Context, batch []indexed) map[int]Summary {
		return summarizeBatch(ctx, caller, batch, lang)
	}, func(batchSummaries map[int]Summary) {
		for i, s := range batchSummaries {
			summaries[i] = s
		}
	}, "summary")

	return summaries
}

func summarizeBatch(ctx context.Context, caller ai.Caller, batch []indexed, lang string) map[int]Summary {
	response, err := caller.Call(ctx, buildSummaryPrompt(batch, lang))
	if err != nil {
		slog.Warn("summary batch failed", "error", err)
		return fallbackSummaries(batch)
	}

	var results []struct {
		Index   *int   `json:"index"`
		Title   string `json:"title"`
		Summary string `json:"summary"`
		Reason  string `json:"reason"`
	}
	if err := decodeResults(response, &results); err != nil {
		slog.Warn("summary batch failed", "error", err)
		return fallbackSummaries(batch)
	}

	valid := make(map[int]bool, len(batch))
	for _, item := range batch {
		valid[item.Index] = true
	}

	summaries := make(map[int]Summary, len(results))
	for _, r := range results {
		if r.Index == nil || !valid[*r.Index] {
			continue
		}
		summaries[*r.Index] = Summary{
			Title:  r.Title,
			Body:   r.Summary,
			Reason: r.Reason,
		}
	}
	return summaries
}

// FallbackSummary degrades to the original title so the report never shows
// an empty entry.
func FallbackSummary(a feed.Article) Summary {
	return Summary{Title: a.Title, Body: a.Title}
}

func fallbackSummaries(batch []indexed) map[int]Summary {
	summaries := make(map[int]Summary, len(batch))
	for _, item := range batch {
		summaries[item.Index] = FallbackSummary(item.Article)
	}
	return summaries
}
