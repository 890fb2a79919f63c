package curator

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSummarizeArticlesParsesResponse(t *testing.T) {
	caller := callerFunc(func(_ context.Context, _ string) (string, error) {
		return `{"results":[
			{"index":0,"title":"Localized Zero","summary":"A summary.","reason":"Because."},
			{"index":1,"title":"Localized One","summary":"Another.","reason":""}
		]}`, nil
	})

	summaries := SummarizeArticles(context.Background(), caller, makeArticles(2), "en")

	if summaries[0].Title != "Localized Zero" || summaries[0].Body != "A summary." || summaries[0].Reason != "Because." {
		t.Errorf("unexpected summary: %+v", summaries[0])
	}
	if summaries[1].Reason != "" {
		t.Errorf("expected empty reason preserved, got %q", summaries[1].Reason)
	}
}

func TestSummarizeArticlesFailureFallsBack(t *testing.T) {
	caller := callerFunc(func(_ context.Context, _ string) (string, error) {
		return "", errors.New("boom")
	})

	articles := makeArticles(3)
	summaries := SummarizeArticles(context.Background(), caller, articles, "en")

	if len(summaries) != 3 {
		t.Fatalf("expected full index coverage on failure, got %d", len(summaries))
	}
	for i, a := range articles {
		s := summaries[i]
		if s.Title != a.Title || s.Body != a.Title || s.Reason != "" {
			t.Errorf("index %d: expected title fallback, got %+v", i, s)
		}
	}
}

func TestSummarizeArticlesRecoversFencedResponseWithProse(t *testing.T) {
	caller := callerFunc(func(_ context.Context, _ string) (string, error) {
		return "```json\n{\"results\":[{\"index\":0,\"title\":\"T\",\"summary\":\"S\",\"reason\":\"R\"}]}\n```", nil
	})

	summaries := SummarizeArticles(context.Background(), caller, makeArticles(1), "en")
	if summaries[0].Title != "T" {
		t.Fatalf("fenced response not recovered: %+v", summaries[0])
	}
}

func TestSummarizeArticlesUnfencedProseFallsBack(t *testing.T) {
	caller := callerFunc(func(_ context.Context, _ string) (string, error) {
		return "Here you go!\n{\"results\":[{\"index\":0,\"title\":\"T\"}]}", nil
	})

	articles := makeArticles(1)
	summaries := SummarizeArticles(context.Background(), caller, articles, "en")
	if summaries[0].Title != articles[0].Title {
		t.Fatalf("expected per-item fallback for unparsable response, got %+v", summaries[0])
	}
}

func TestSummarizeArticlesThreadsLanguage(t *testing.T) {
	var sawChinese, sawEnglish bool
	caller := callerFunc(func(_ context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "in Chinese") {
			sawChinese = true
		}
		if strings.Contains(prompt, "in English") {
			sawEnglish = true
		}
		return `{"results":[]}`, nil
	})

	SummarizeArticles(context.Background(), caller, makeArticles(1), "zh")
	if !sawChinese {
		t.Error("expected zh language instruction in prompt")
	}

	SummarizeArticles(context.Background(), caller, makeArticles(1), "en")
	if !sawEnglish {
		t.Error("expected en language instruction in prompt")
	}
}

func TestHighlights(t *testing.T) {
	caller := callerFunc(func(_ context.Context, prompt string) (string, error) {
		if !strings.Contains(prompt, "Article 0") {
			t.Errorf("expected article titles in prompt")
		}
		return "  A fine day in tech.  \n", nil
	})

	articles := []ScoredArticle{{Article: makeArticles(1)[0], Score: DefaultScore()}}
	got := Highlights(context.Background(), caller, articles, "en")
	if got != "A fine day in tech." {
		t.Errorf("expected trimmed highlights, got %q", got)
	}
}

func TestHighlightsFailureReturnsEmpty(t *testing.T) {
	caller := callerFunc(func(_ context.Context, _ string) (string, error) {
		return "", errors.New("boom")
	})

	articles := []ScoredArticle{{Article: makeArticles(1)[0], Score: DefaultScore()}}
	if got := Highlights(context.Background(), caller, articles, "en"); got != "" {
		t.Errorf("expected empty highlights on failure, got %q", got)
	}
}

func TestHighlightsNoArticles(t *testing.T) {
	called := false
	caller := callerFunc(func(_ context.Context, _ string) (string, error) {
		called = true
		return "x", nil
	})

	if got := Highlights(context.Background(), caller, nil, "en"); got != "" {
		t.Errorf("expected empty highlights for no articles, got %q", got)
	}
	if called {
		t.Error("expected no AI call for an empty selection")
	}
}
