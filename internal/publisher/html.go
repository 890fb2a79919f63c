package publisher

import (
	"fmt"
	"html"
	"strings"

	"github.com/mkobayashi/ai-daily/internal/report"
)

// buildHTMLBody renders the digest as a standalone HTML page, shared by the
// email and web publishers.
func buildHTMLBody(digest *report.Digest) string {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 700px; margin: 0 auto; padding: 20px; color: #333; }
h1 { color: #1a1a2e; border-bottom: 2px solid #e94560; padding-bottom: 10px; }
.highlights { background: #f0f0f0; padding: 15px; border-radius: 8px; margin-bottom: 20px; }
.article { border: 1px solid #ddd; border-radius: 8px; padding: 15px; margin-bottom: 15px; }
.article h3 { margin-top: 0; color: #0f3460; }
.meta { color: #666; font-size: 0.9em; margin-bottom: 10px; }
.reason { color: #0f3460; font-style: italic; margin-top: 10px; }
.tags { color: #888; font-size: 0.85em; margin-top: 8px; }
</style></head><body>`)

	fmt.Fprintf(&sb, "<h1>AI Daily Digest — %s</h1>", digest.Date.Format("2006-01-02"))

	if digest.Highlights != "" {
		fmt.Fprintf(&sb, `<div class="highlights"><p>%s</p></div>`, html.EscapeString(digest.Highlights))
	}

	for i, a := range digest.Articles {
		sb.WriteString(`<div class="article">`)
		fmt.Fprintf(&sb, `<h3>%d. <a href="%s">%s</a></h3>`,
			i+1, html.EscapeString(a.Link), html.EscapeString(a.DisplayTitle()))
		fmt.Fprintf(&sb, `<div class="meta">%s | %s | %d/30</div>`,
			html.EscapeString(a.SourceName), html.EscapeString(a.Score.Category), a.Score.Total())
		fmt.Fprintf(&sb, "<p>%s</p>", html.EscapeString(a.Summary.Body))
		if a.Summary.Reason != "" {
			fmt.Fprintf(&sb, `<div class="reason">%s</div>`, html.EscapeString(a.Summary.Reason))
		}
		if len(a.Score.Keywords) > 0 {
			fmt.Fprintf(&sb, `<div class="tags">%s</div>`, html.EscapeString(strings.Join(a.Score.Keywords, ", ")))
		}
		sb.WriteString("</div>")
	}

	sb.WriteString("</body></html>")
	return sb.String()
}
