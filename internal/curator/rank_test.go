package curator

import (
	"testing"
	"time"

	"github.com/mkobayashi/ai-daily/internal/feed"
)

func TestFilterRecent(t *testing.T) {
	now := time.Date(2026, 1, 12, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	articles := []feed.Article{
		{Title: "fresh", Published: now.Add(-time.Hour)},
		{Title: "at cutoff", Published: now.Add(-window)},
		{Title: "stale", Published: now.Add(-window - time.Minute)},
		{Title: "just inside", Published: now.Add(-window + time.Second)},
	}

	recent := FilterRecent(articles, window, now)
	if len(recent) != 2 {
		t.Fatalf("expected 2 recent articles, got %d", len(recent))
	}
	if recent[0].Title != "fresh" || recent[1].Title != "just inside" {
		t.Errorf("unexpected selection: %q, %q", recent[0].Title, recent[1].Title)
	}
}

func TestFilterRecentBoundaryExcluded(t *testing.T) {
	now := time.Date(2026, 1, 12, 12, 0, 0, 0, time.UTC)
	articles := []feed.Article{{Title: "boundary", Published: now.Add(-24 * time.Hour)}}

	if got := FilterRecent(articles, 24*time.Hour, now); len(got) != 0 {
		t.Fatalf("article exactly at the cutoff must be excluded, got %d", len(got))
	}
}

func TestRankSortsDescendingAndStable(t *testing.T) {
	articles := []feed.Article{
		{Title: "low"},
		{Title: "high"},
		{Title: "mid-first"},
		{Title: "mid-second"},
	}
	scores := map[int]Score{
		0: {Relevance: 1, Quality: 1, Timeliness: 1},
		1: {Relevance: 9, Quality: 9, Timeliness: 9},
		2: {Relevance: 5, Quality: 5, Timeliness: 5},
		3: {Relevance: 5, Quality: 5, Timeliness: 5},
	}

	ranked := Rank(articles, scores, 0)

	want := []string{"high", "mid-first", "mid-second", "low"}
	for i, title := range want {
		if ranked[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, ranked[i].Title)
		}
	}
}

func TestRankTopN(t *testing.T) {
	articles := makeArticles(10)
	scores := map[int]Score{}
	for i := range articles {
		scores[i] = Score{Relevance: i + 1, Quality: 1, Timeliness: 1}
	}

	ranked := Rank(articles, scores, 3)
	if len(ranked) != 3 {
		t.Fatalf("expected top 3, got %d", len(ranked))
	}
	if ranked[0].Title != "Article 9" {
		t.Errorf("expected highest-scored first, got %q", ranked[0].Title)
	}
}

func TestRankFewerThanN(t *testing.T) {
	ranked := Rank(makeArticles(2), map[int]Score{}, 5)
	if len(ranked) != 2 {
		t.Fatalf("expected all articles when fewer than N, got %d", len(ranked))
	}
}

func TestRankFillsMissingScoresWithDefault(t *testing.T) {
	ranked := Rank(makeArticles(2), map[int]Score{0: {Relevance: 9, Quality: 9, Timeliness: 9}}, 0)

	if ranked[1].Score != DefaultScore() {
		t.Errorf("expected default score for unscored index, got %+v", ranked[1].Score)
	}
	if ranked[1].Score.Total() != 15 {
		t.Errorf("expected default total 15, got %d", ranked[1].Score.Total())
	}
}
