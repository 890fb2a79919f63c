// Package curator runs the AI curation stages: scoring, ranking,
// summarization, and highlights.
package curator

import "github.com/mkobayashi/ai-daily/internal/feed"

// CategoryOther is the catch-all category assigned when the model returns
// nothing usable.
const CategoryOther = "other"

// Categories is the closed set of labels the scorer accepts.
var Categories = []string{"ai-ml", "security", "engineering", "tools", "opinion", CategoryOther}

var validCategories = func() map[string]bool {
	m := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}()

const maxKeywords = 4

// Score holds the per-article scoring output. Each dimension is clamped
// into [1,10].
type Score struct {
	Relevance  int
	Quality    int
	Timeliness int
	Category   string
	Keywords   []string
}

// Total is the ranking key, always the sum of the three dimensions.
func (s Score) Total() int {
	return s.Relevance + s.Quality + s.Timeliness
}

// DefaultScore is substituted for every article in a batch whose AI call
// failed, and for any index the model skipped.
func DefaultScore() Score {
	return Score{Relevance: 5, Quality: 5, Timeliness: 5, Category: CategoryOther}
}

// Summary holds the per-article summarization output.
type Summary struct {
	// Title is the translated/localized title.
	Title string
	// Body is the multi-sentence structured summary.
	Body string
	// Reason is the one-line "why read this".
	Reason string
}

// ScoredArticle is the unit the report renderer consumes: the article plus
// its score and summary.
type ScoredArticle struct {
	feed.Article
	Score   Score
	Summary Summary
}

// DisplayTitle prefers the localized title and falls back to the original.
func (a ScoredArticle) DisplayTitle() string {
	if a.Summary.Title != "" {
		return a.Summary.Title
	}
	return a.Title
}
