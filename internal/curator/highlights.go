package curator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mkobayashi/ai-daily/internal/ai"
)

// highlightsWindow is how many top articles feed the lead paragraph.
const highlightsWindow = 10

// Highlights produces a short prose lead over the top articles in a single
// AI call. Any failure degrades to an empty string, which the renderer
// treats as "omit the section."
func Highlights(ctx context.Context, caller ai.Caller, articles []ScoredArticle, lang string) string {
	if len(articles) == 0 {
		return ""
	}
	top := articles
	if len(top) > highlightsWindow {
		top = top[:highlightsWindow]
	}

	text, err := caller.Call(ctx, buildHighlightsPrompt(top, lang))
	if err != nil {
		slog.Warn("highlights generation failed", "error", err)
		return ""
	}
	return strings.TrimSpace(text)
}
