package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mkobayashi/ai-daily/internal/curator"
)

type keywordCount struct {
	word  string
	count int
}

// topKeywords tallies keywords case-insensitively and returns the most
// frequent ones, ties broken alphabetically for stable output.
func topKeywords(articles []curator.ScoredArticle, limit int) []keywordCount {
	counts := make(map[string]int)
	for _, a := range articles {
		for _, kw := range a.Score.Keywords {
			counts[strings.ToLower(kw)]++
		}
	}

	sorted := make([]keywordCount, 0, len(counts))
	for word, count := range counts {
		sorted = append(sorted, keywordCount{word, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].word < sorted[j].word
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// categoryPieChart emits a mermaid pie of the category distribution.
func categoryPieChart(articles []curator.ScoredArticle, lang, title string) string {
	counts := make(map[string]int)
	var order []string
	for _, a := range articles {
		if counts[a.Score.Category] == 0 {
			order = append(order, a.Score.Category)
		}
		counts[a.Score.Category]++
	}
	if len(order) == 0 {
		return ""
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	var sb strings.Builder
	sb.WriteString("```mermaid\npie showData\n")
	fmt.Fprintf(&sb, "    title %q\n", title)
	for _, category := range order {
		fmt.Fprintf(&sb, "    %q : %d\n", categoryLabel(category, lang), counts[category])
	}
	sb.WriteString("```\n")
	return sb.String()
}

// keywordBarChart emits a terminal-friendly ASCII bar chart of the ten most
// frequent keywords.
func keywordBarChart(articles []curator.ScoredArticle) string {
	keywords := topKeywords(articles, 10)
	if len(keywords) == 0 {
		return ""
	}

	const barWidth = 20
	maxCount := keywords[0].count
	labelWidth := 0
	for _, kw := range keywords {
		if len(kw.word) > labelWidth {
			labelWidth = len(kw.word)
		}
	}

	var sb strings.Builder
	sb.WriteString("```\n")
	for _, kw := range keywords {
		filled := max(1, kw.count*barWidth/maxCount)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		fmt.Fprintf(&sb, "%-*s │ %s %d\n", labelWidth, kw.word, bar, kw.count)
	}
	sb.WriteString("```\n")
	return sb.String()
}

// tagCloud renders the top keywords inline, the three most frequent bolded.
func tagCloud(articles []curator.ScoredArticle) string {
	keywords := topKeywords(articles, 20)
	if len(keywords) == 0 {
		return ""
	}

	tags := make([]string, 0, len(keywords))
	for i, kw := range keywords {
		if i < 3 {
			tags = append(tags, fmt.Sprintf("**%s**(%d)", kw.word, kw.count))
		} else {
			tags = append(tags, fmt.Sprintf("%s(%d)", kw.word, kw.count))
		}
	}
	return strings.Join(tags, " · ")
}
