package curator

import (
	"sort"
	"time"

	"github.com/mkobayashi/ai-daily/internal/feed"
)

// FilterRecent keeps articles published strictly after now minus the
// window. An article exactly at the cutoff is dropped.
func FilterRecent(articles []feed.Article, window time.Duration, now time.Time) []feed.Article {
	cutoff := now.Add(-window)
	var recent []feed.Article
	for _, a := range articles {
		if a.Published.After(cutoff) {
			recent = append(recent, a)
		}
	}
	return recent
}

// Rank joins articles with their scores, sorts by total score descending
// (stable, so equal totals keep input order), and returns the first topN.
// Indices missing from scores get the default score.
func Rank(articles []feed.Article, scores map[int]Score, topN int) []ScoredArticle {
	ranked := make([]ScoredArticle, 0, len(articles))
	for i, a := range articles {
		score, ok := scores[i]
		if !ok {
			score = DefaultScore()
		}
		ranked = append(ranked, ScoredArticle{Article: a, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Total() > ranked[j].Score.Total()
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
