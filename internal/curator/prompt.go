package curator

import (
	"fmt"
	"strings"

	"github.com/mkobayashi/ai-daily/internal/feed"
)

const (
	scoringExcerptLen = 300
	summaryExcerptLen = 800
)

// indexed pairs an article with its position in the stage's input slice.
// The model echoes the index back, which is how results are keyed.
type indexed struct {
	Index   int
	Article feed.Article
}

func buildScoringPrompt(batch []indexed) string {
	var sb strings.Builder

	sb.WriteString(`You are a technology content curator selecting articles for a daily digest aimed at software and AI practitioners.

Score each article below on three dimensions (integers 1-10, 10 highest), assign one category label, and extract 2-4 keywords.

## Dimensions

### relevance - value to software / AI / internet practitioners
- 10: a major event or breakthrough every engineer should know about
- 7-9: valuable to most practitioners
- 4-6: valuable within a specific niche
- 1-3: barely related to the industry

### quality - depth and writing quality of the article itself
- 10: deep analysis, original insight, well sourced
- 7-9: substantial, with a distinct point of view
- 4-6: accurate and clearly written
- 1-3: shallow or purely derivative

### timeliness - whether it is worth reading right now
- 10: a major event happening now or an important fresh release
- 7-9: tied to a recent hot topic
- 4-6: evergreen, does not age
- 1-3: stale or time-irrelevant

## Category (pick exactly one)
- ai-ml: AI, machine learning, LLMs, deep learning
- security: security, privacy, vulnerabilities, cryptography
- engineering: software engineering, architecture, languages, systems design
- tools: developer tools, open source projects, new libraries/frameworks
- opinion: industry opinion, personal reflection, careers, culture
- other: none of the above fits

## Keywords
2-4 short English keywords capturing the topic (e.g. "Rust", "LLM", "database", "performance").

## Articles

`)
	sb.WriteString(promptArticleList(batch, scoringExcerptLen, false))
	sb.WriteString(`

Return strict JSON only, no markdown fences or extra text:
{
  "results": [
    {
      "index": 0,
      "relevance": 8,
      "quality": 7,
      "timeliness": 9,
      "category": "engineering",
      "keywords": ["Rust", "compiler", "performance"]
    }
  ]
}`)

	return sb.String()
}

func buildSummaryPrompt(batch []indexed, lang string) string {
	var sb strings.Builder

	sb.WriteString(`You are a technology content summarizer. For each article below produce three things:

1. "title": the title, translated/localized.
2. "summary": a structured 4-6 sentence summary that lets the reader skip the original: the core question or topic (1 sentence), the key arguments, techniques, or findings (2-3 sentences), and the conclusion or the author's main point (1 sentence).
3. "reason": a single sentence on why it is worth reading - the summary says what it is, the reason says why it matters.

`)
	sb.WriteString(langInstruction(lang))
	sb.WriteString(`

Summary requirements:
- Lead with the substance; never open with "This article discusses..."
- Keep concrete names, numbers, versions, and benchmark figures
- If the article compares options, name them and state the verdict
- Goal: 30 seconds of reading decides whether the original deserves 10 minutes

## Articles

`)
	sb.WriteString(promptArticleList(batch, summaryExcerptLen, true))
	sb.WriteString(`

Return strict JSON only:
{
  "results": [
    {
      "index": 0,
      "title": "localized title",
      "summary": "the summary...",
      "reason": "why it is worth reading..."
    }
  ]
}`)

	return sb.String()
}

func buildHighlightsPrompt(articles []ScoredArticle, lang string) string {
	var sb strings.Builder

	sb.WriteString("Given today's curated technology articles below, write a 3-5 sentence \"today at a glance\" lead.\n")
	sb.WriteString(`Requirements:
- Distill 2-3 overarching trends or topics of the day
- Synthesize across articles instead of listing them one by one
- Tight, punchy, like a news lede
`)
	sb.WriteString(langInstruction(lang))
	sb.WriteString("\n\nArticles:\n")

	for i, a := range articles {
		summary := truncatePrompt(a.Summary.Body, 100)
		fmt.Fprintf(&sb, "%d. [%s] %s — %s\n", i+1, a.Score.Category, a.DisplayTitle(), summary)
	}

	sb.WriteString("\nReturn the plain-text lead only: no JSON, no markdown.")
	return sb.String()
}

func promptArticleList(batch []indexed, excerptLen int, withLink bool) string {
	parts := make([]string, 0, len(batch))
	for _, item := range batch {
		a := item.Article
		var sb strings.Builder
		fmt.Fprintf(&sb, "Index %d: [%s] %s\n", item.Index, a.SourceName, a.Title)
		if withLink {
			fmt.Fprintf(&sb, "URL: %s\n", a.Link)
		}
		sb.WriteString(truncatePrompt(a.Description, excerptLen))
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "\n\n---\n\n")
}

func langInstruction(lang string) string {
	if lang == "zh" {
		return "Write all titles, summaries, and reasons in Chinese; translate English source material."
	}
	return "Write all titles, summaries, and reasons in English."
}

func truncatePrompt(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
