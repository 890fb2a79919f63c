package curator

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mkobayashi/ai-daily/internal/ai"
	"github.com/mkobayashi/ai-daily/internal/feed"
)

const (
	// batchSize is how many articles go into one AI call.
	batchSize = 10
	// maxConcurrent bounds the AI calls in flight within a wave.
	maxConcurrent = 2
)

// ScoreArticles scores every article through batched AI calls and returns a
// map keyed by the article's input index. A failed batch contributes the
// default score for each of its articles instead of failing the run; the
// result therefore never has to be complete - consumers fill missing
// indices with DefaultScore.
func ScoreArticles(ctx context.Context, caller ai.Caller, articles []feed.Article) map[int]Score {
	batches := makeBatches(articles)
	slog.Info("ai scoring", "articles", len(articles), "batches", len(batches))

	scores := make(map[int]Score, len(articles))
	runWaves(ctx, batches, func(ctx context.Context, batch []indexed) map[int]Score {
		return scoreBatch(ctx, caller, batch)
	}, func(batchScores map[int]Score) {
		for i, s := range batchScores {
			scores[i] = s
		}
	}, "scoring")

	return scores
}

func scoreBatch(ctx context.Context, caller ai.Caller, batch []indexed) map[int]Score {
	response, err := caller.Call(ctx, buildScoringPrompt(batch))
	if err != nil {
		slog.Warn("scoring batch failed", "error", err)
		return defaultScores(batch)
	}

	var results []struct {
		Index      *int      `json:"index"`
		Relevance  *looseInt `json:"relevance"`
		Quality    *looseInt `json:"quality"`
		Timeliness *looseInt `json:"timeliness"`
		Category   string    `json:"category"`
		Keywords   []string  `json:"keywords"`
	}
	if err := decodeResults(response, &results); err != nil {
		slog.Warn("scoring batch failed", "error", err)
		return defaultScores(batch)
	}

	valid := make(map[int]bool, len(batch))
	for _, item := range batch {
		valid[item.Index] = true
	}

	scores := make(map[int]Score, len(results))
	for _, r := range results {
		if r.Index == nil || !valid[*r.Index] {
			continue
		}
		category := r.Category
		if !validCategories[category] {
			category = CategoryOther
		}
		keywords := r.Keywords
		if len(keywords) > maxKeywords {
			keywords = keywords[:maxKeywords]
		}
		scores[*r.Index] = Score{
			Relevance:  clampDimension(r.Relevance),
			Quality:    clampDimension(r.Quality),
			Timeliness: clampDimension(r.Timeliness),
			Category:   category,
			Keywords:   keywords,
		}
	}
	return scores
}

func clampDimension(v *looseInt) int {
	if v == nil {
		return 5
	}
	return clamp(int(*v), 1, 10)
}

func defaultScores(batch []indexed) map[int]Score {
	scores := make(map[int]Score, len(batch))
	for _, item := range batch {
		scores[item.Index] = DefaultScore()
	}
	return scores
}

func makeBatches(articles []feed.Article) [][]indexed {
	var batches [][]indexed
	for start := 0; start < len(articles); start += batchSize {
		end := min(start+batchSize, len(articles))
		batch := make([]indexed, 0, end-start)
		for i := start; i < end; i++ {
			batch = append(batch, indexed{Index: i, Article: articles[i]})
		}
		batches = append(batches, batch)
	}
	return batches
}

// runWaves processes batches in groups of maxConcurrent. A wave's calls all
// settle before the next wave starts, and each batch writes a disjoint index
// range, so merging happens conflict-free on the caller's goroutine.
func runWaves[T any](
	ctx context.Context,
	batches [][]indexed,
	process func(context.Context, []indexed) T,
	merge func(T),
	stage string,
) {
	for start := 0; start < len(batches); start += maxConcurrent {
		end := min(start+maxConcurrent, len(batches))
		wave := batches[start:end]

		results := make([]T, len(wave))
		var g errgroup.Group
		for i, batch := range wave {
			g.Go(func() error {
				results[i] = process(ctx, batch)
				return nil
			})
		}
		g.Wait()

		for _, r := range results {
			merge(r)
		}
		slog.Info(stage+" progress", "batches", end, "total", len(batches))
	}
}
