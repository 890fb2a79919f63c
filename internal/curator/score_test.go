package curator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mkobayashi/ai-daily/internal/feed"
)

// callerFunc adapts a function to the ai.Caller interface.
type callerFunc func(ctx context.Context, prompt string) (string, error)

func (f callerFunc) Call(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

func makeArticles(n int) []feed.Article {
	articles := make([]feed.Article, n)
	for i := range articles {
		articles[i] = feed.Article{
			Title:       fmt.Sprintf("Article %d", i),
			Link:        fmt.Sprintf("https://example.com/%d", i),
			Description: fmt.Sprintf("Description %d", i),
			SourceName:  "example.com",
			Published:   time.Now(),
		}
	}
	return articles
}

func TestScoreArticlesParsesValidResponse(t *testing.T) {
	caller := callerFunc(func(_ context.Context, prompt string) (string, error) {
		return `{"results":[
			{"index":0,"relevance":8,"quality":7,"timeliness":9,"category":"engineering","keywords":["Go","compiler"]},
			{"index":1,"relevance":3,"quality":4,"timeliness":2,"category":"opinion","keywords":["career"]}
		]}`, nil
	})

	scores := ScoreArticles(context.Background(), caller, makeArticles(2))

	s0, ok := scores[0]
	if !ok {
		t.Fatal("missing score for index 0")
	}
	if s0.Relevance != 8 || s0.Quality != 7 || s0.Timeliness != 9 {
		t.Errorf("unexpected dimensions: %+v", s0)
	}
	if s0.Total() != 24 {
		t.Errorf("total must equal the dimension sum, got %d", s0.Total())
	}
	if s0.Category != "engineering" {
		t.Errorf("unexpected category %q", s0.Category)
	}
	if scores[1].Total() != 9 {
		t.Errorf("unexpected total for index 1: %d", scores[1].Total())
	}
}

func TestScoreArticlesClampsAndCoerces(t *testing.T) {
	caller := callerFunc(func(_ context.Context, _ string) (string, error) {
		return `{"results":[
			{"index":0,"relevance":99,"quality":-3,"timeliness":"7","category":"engineering","keywords":[]},
			{"index":1,"relevance":"not a number","quality":6.7,"timeliness":0,"category":"engineering","keywords":[]}
		]}`, nil
	})

	scores := ScoreArticles(context.Background(), caller, makeArticles(2))

	s0 := scores[0]
	if s0.Relevance != 10 {
		t.Errorf("expected 99 clamped to 10, got %d", s0.Relevance)
	}
	if s0.Quality != 1 {
		t.Errorf("expected -3 clamped to 1, got %d", s0.Quality)
	}
	if s0.Timeliness != 7 {
		t.Errorf("expected quoted \"7\" coerced to 7, got %d", s0.Timeliness)
	}

	s1 := scores[1]
	if s1.Relevance != 5 {
		t.Errorf("expected non-numeric coerced to 5, got %d", s1.Relevance)
	}
	if s1.Quality != 6 {
		t.Errorf("expected 6.7 truncated to 6, got %d", s1.Quality)
	}
	if s1.Timeliness != 1 {
		t.Errorf("expected 0 clamped to 1, got %d", s1.Timeliness)
	}

	for i, s := range scores {
		for _, d := range []int{s.Relevance, s.Quality, s.Timeliness} {
			if d < 1 || d > 10 {
				t.Errorf("index %d: dimension %d outside [1,10]", i, d)
			}
		}
	}
}

func TestScoreArticlesNormalizesCategoryAndKeywords(t *testing.T) {
	caller := callerFunc(func(_ context.Context, _ string) (string, error) {
		return `{"results":[
			{"index":0,"relevance":5,"quality":5,"timeliness":5,"category":"blockchain","keywords":["a","b","c","d","e","f"]},
			{"index":1,"relevance":5,"quality":5,"timeliness":5}
		]}`, nil
	})

	scores := ScoreArticles(context.Background(), caller, makeArticles(2))

	if scores[0].Category != CategoryOther {
		t.Errorf("expected unknown category normalized to %q, got %q", CategoryOther, scores[0].Category)
	}
	if len(scores[0].Keywords) != 4 {
		t.Errorf("expected keywords capped at 4, got %d", len(scores[0].Keywords))
	}
	if scores[1].Category != CategoryOther {
		t.Errorf("expected absent category to default to %q, got %q", CategoryOther, scores[1].Category)
	}
}

func TestScoreArticlesStripsCodeFence(t *testing.T) {
	caller := callerFunc(func(_ context.Context, _ string) (string, error) {
		return "```json\n{\"results\":[{\"index\":0,\"relevance\":9,\"quality\":9,\"timeliness\":9,\"category\":\"ai-ml\",\"keywords\":[\"LLM\"]}]}\n```", nil
	})

	scores := ScoreArticles(context.Background(), caller, makeArticles(1))
	if scores[0].Total() != 27 {
		t.Fatalf("fenced response not parsed, got %+v", scores[0])
	}
}

func TestScoreArticlesFailedBatchGetsDefaults(t *testing.T) {
	caller := callerFunc(func(_ context.Context, _ string) (string, error) {
		return "", errors.New("boom")
	})

	articles := makeArticles(25) // three batches
	scores := ScoreArticles(context.Background(), caller, articles)

	if len(scores) != len(articles) {
		t.Fatalf("output index coverage %d must equal input coverage %d", len(scores), len(articles))
	}
	for i := range articles {
		s, ok := scores[i]
		if !ok {
			t.Fatalf("index %d missing from output", i)
		}
		if s != (Score{Relevance: 5, Quality: 5, Timeliness: 5, Category: CategoryOther}) {
			t.Errorf("index %d: expected default score, got %+v", i, s)
		}
	}
}

func TestScoreArticlesMalformedJSONGetsDefaults(t *testing.T) {
	caller := callerFunc(func(_ context.Context, _ string) (string, error) {
		return "Sure! Here are the scores: {\"results\": oops", nil
	})

	scores := ScoreArticles(context.Background(), caller, makeArticles(3))
	for i := 0; i < 3; i++ {
		if scores[i] != DefaultScore() {
			t.Errorf("index %d: expected default score for malformed response", i)
		}
	}
}

func TestScoreArticlesIgnoresUnknownIndices(t *testing.T) {
	caller := callerFunc(func(_ context.Context, _ string) (string, error) {
		return `{"results":[
			{"index":7,"relevance":9,"quality":9,"timeliness":9,"category":"tools","keywords":[]},
			{"relevance":9,"quality":9,"timeliness":9,"category":"tools","keywords":[]}
		]}`, nil
	})

	scores := ScoreArticles(context.Background(), caller, makeArticles(2))
	if len(scores) != 0 {
		t.Fatalf("expected out-of-range and index-less results dropped, got %v", scores)
	}
}

func TestScoreArticlesBatchesRequests(t *testing.T) {
	var mu sync.Mutex
	var prompts []string
	caller := callerFunc(func(_ context.Context, prompt string) (string, error) {
		mu.Lock()
		prompts = append(prompts, prompt)
		mu.Unlock()
		return `{"results":[]}`, nil
	})

	ScoreArticles(context.Background(), caller, makeArticles(25))

	if len(prompts) != 3 {
		t.Fatalf("expected 3 batches for 25 articles, got %d calls", len(prompts))
	}
	found := false
	for _, p := range prompts {
		if strings.Contains(p, "Index 24:") {
			found = true
		}
	}
	if !found {
		t.Error("expected one batch to carry index 24")
	}
}
