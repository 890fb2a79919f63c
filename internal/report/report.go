// Package report renders the curated digest into markdown. No AI calls
// happen here; it is pure formatting over the pipeline's outputs.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mkobayashi/ai-daily/internal/curator"
)

// Stats carries the run counters shown in the report header.
type Stats struct {
	TotalFeeds       int
	SuccessFeeds     int
	FetchedArticles  int
	FilteredArticles int
	WindowHours      int
}

// Digest is the final rendered document plus the structured data the
// publishers need (discord embeds, web page, console preview).
type Digest struct {
	Date       time.Time
	Lang       string
	Markdown   string
	Highlights string
	Articles   []curator.ScoredArticle
	Stats      Stats
}

// Build assembles the digest for a run.
func Build(articles []curator.ScoredArticle, highlights string, stats Stats, lang string, now time.Time) *Digest {
	return &Digest{
		Date:       now,
		Lang:       lang,
		Markdown:   Render(articles, highlights, stats, lang, now),
		Highlights: highlights,
		Articles:   articles,
		Stats:      stats,
	}
}

type categoryMeta struct {
	emoji string
	zh    string
	en    string
}

var categoryMetas = map[string]categoryMeta{
	"ai-ml":       {emoji: "🤖", zh: "AI / ML", en: "AI / ML"},
	"security":    {emoji: "🔒", zh: "安全", en: "Security"},
	"engineering": {emoji: "⚙️", zh: "工程", en: "Engineering"},
	"tools":       {emoji: "🛠", zh: "工具 / 开源", en: "Tools / Open Source"},
	"opinion":     {emoji: "💡", zh: "观点 / 杂谈", en: "Opinion"},
	"other":       {emoji: "📝", zh: "其他", en: "Other"},
}

func categoryLabel(category, lang string) string {
	meta, ok := categoryMetas[category]
	if !ok {
		meta = categoryMetas[curator.CategoryOther]
	}
	if lang == "zh" {
		return meta.emoji + " " + meta.zh
	}
	return meta.emoji + " " + meta.en
}

// ui holds the localized fixed strings of the report.
type ui struct {
	title      string
	subtitle   string
	highlights string
	mustRead   string
	stats      string
	statsRow   string
	pieTitle   string
	tagsTitle  string
	whyRead    string
	ago        func(mins, hours, days int) string
}

func uiStrings(lang string) ui {
	if lang == "zh" {
		return ui{
			title:      "📰 AI 博客每日精选",
			subtitle:   "来自 %d 个顶级技术博客，AI 精选 Top %d",
			highlights: "📝 今日看点",
			mustRead:   "🏆 今日必读",
			stats:      "📊 数据概览",
			statsRow:   "| 扫描源 | 抓取文章 | 时间范围 | 精选 |",
			pieTitle:   "文章分类分布",
			tagsTitle:  "🏷️ 话题标签",
			whyRead:    "💡 **为什么值得读**",
			ago: func(mins, hours, days int) string {
				switch {
				case mins < 60:
					return fmt.Sprintf("%d 分钟前", mins)
				case hours < 24:
					return fmt.Sprintf("%d 小时前", hours)
				default:
					return fmt.Sprintf("%d 天前", days)
				}
			},
		}
	}
	return ui{
		title:      "📰 AI Blog Daily Digest",
		subtitle:   "AI-curated top %[2]d from %[1]d leading tech blogs",
		highlights: "📝 Today's Highlights",
		mustRead:   "🏆 Must Reads",
		stats:      "📊 Run Overview",
		statsRow:   "| Sources | Articles | Window | Selected |",
		pieTitle:   "Category Distribution",
		tagsTitle:  "🏷️ Topic Tags",
		whyRead:    "💡 **Why read this**",
		ago: func(mins, hours, days int) string {
			switch {
			case mins < 60:
				return fmt.Sprintf("%d minutes ago", mins)
			case hours < 24:
				return fmt.Sprintf("%d hours ago", hours)
			default:
				return fmt.Sprintf("%d days ago", days)
			}
		},
	}
}

var medals = []string{"🥇", "🥈", "🥉"}

// Render produces the full markdown document: title, optional highlights,
// top-3 showcase, run statistics with visual aids, then articles grouped by
// category ordered by member count.
func Render(articles []curator.ScoredArticle, highlights string, stats Stats, lang string, now time.Time) string {
	loc := uiStrings(lang)
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s — %s\n\n", loc.title, now.Format("2006-01-02"))
	fmt.Fprintf(&sb, "> "+loc.subtitle+"\n\n", stats.TotalFeeds, len(articles))

	if highlights != "" {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n---\n\n", loc.highlights, highlights)
	}

	if len(articles) >= 3 {
		fmt.Fprintf(&sb, "## %s\n\n", loc.mustRead)
		for i := 0; i < 3; i++ {
			a := articles[i]
			fmt.Fprintf(&sb, "%s **%s**\n\n", medals[i], a.DisplayTitle())
			fmt.Fprintf(&sb, "[%s](%s) — %s · %s · %s\n\n",
				a.Title, a.Link, a.SourceName, relativeAge(a.Published, now, loc), categoryLabel(a.Score.Category, lang))
			fmt.Fprintf(&sb, "> %s\n\n", a.Summary.Body)
			if a.Summary.Reason != "" {
				fmt.Fprintf(&sb, "%s: %s\n\n", loc.whyRead, a.Summary.Reason)
			}
			if len(a.Score.Keywords) > 0 {
				fmt.Fprintf(&sb, "🏷️ %s\n\n", strings.Join(a.Score.Keywords, ", "))
			}
		}
		sb.WriteString("---\n\n")
	}

	fmt.Fprintf(&sb, "## %s\n\n", loc.stats)
	sb.WriteString(loc.statsRow + "\n|:---:|:---:|:---:|:---:|\n")
	fmt.Fprintf(&sb, "| %d/%d | %d → %d | %dh | **%d** |\n\n",
		stats.SuccessFeeds, stats.TotalFeeds,
		stats.FetchedArticles, stats.FilteredArticles,
		stats.WindowHours, len(articles))

	if pie := categoryPieChart(articles, lang, loc.pieTitle); pie != "" {
		sb.WriteString(pie + "\n")
	}
	if chart := keywordBarChart(articles); chart != "" {
		sb.WriteString(chart + "\n")
	}
	if tags := tagCloud(articles); tags != "" {
		fmt.Fprintf(&sb, "### %s\n\n%s\n\n", loc.tagsTitle, tags)
	}
	sb.WriteString("---\n\n")

	sb.WriteString(renderCategorySections(articles, lang, loc, now))

	return sb.String()
}

// renderCategorySections groups articles by category, orders categories by
// descending member count, and keeps articles in ranked order inside each.
func renderCategorySections(articles []curator.ScoredArticle, lang string, loc ui, now time.Time) string {
	groups := make(map[string][]curator.ScoredArticle)
	var order []string
	for _, a := range articles {
		if _, seen := groups[a.Score.Category]; !seen {
			order = append(order, a.Score.Category)
		}
		groups[a.Score.Category] = append(groups[a.Score.Category], a)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(groups[order[i]]) > len(groups[order[j]])
	})

	var sb strings.Builder
	index := 0
	for _, category := range order {
		fmt.Fprintf(&sb, "## %s\n\n", categoryLabel(category, lang))
		for _, a := range groups[category] {
			index++
			fmt.Fprintf(&sb, "### %d. %s\n\n", index, a.DisplayTitle())
			fmt.Fprintf(&sb, "[%s](%s) — **%s** · %s · ⭐ %d/30\n\n",
				a.Title, a.Link, a.SourceName, relativeAge(a.Published, now, loc), a.Score.Total())
			fmt.Fprintf(&sb, "> %s\n\n", a.Summary.Body)
			if len(a.Score.Keywords) > 0 {
				fmt.Fprintf(&sb, "🏷️ %s\n\n", strings.Join(a.Score.Keywords, ", "))
			}
			sb.WriteString("---\n\n")
		}
	}
	return sb.String()
}

// relativeAge renders a human age for recent articles and an absolute date
// past seven days.
func relativeAge(published, now time.Time, loc ui) string {
	diff := now.Sub(published)
	if diff < 0 {
		diff = 0
	}
	mins := int(diff.Minutes())
	hours := mins / 60
	days := hours / 24

	if days >= 7 {
		return published.Format("2006-01-02")
	}
	return loc.ago(mins, hours, days)
}
