package feed

import (
	"bytes"
	"encoding/xml"
	"html"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

const maxDescriptionLen = 500

// xmlNode is a generic element tree. Feeds disagree on whether they declare
// a default namespace, so lookups match on the local tag name regardless of
// namespace; the decoder already unwraps CDATA sections into CharData.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

// Parse turns a raw feed document into normalized articles. A malformed
// document yields zero articles and a log line, never an error: one broken
// feed must not take the batch down.
func Parse(data []byte, source Source) []Article {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	var root xmlNode
	if err := dec.Decode(&root); err != nil {
		slog.Warn("feed: xml parse failed", "source", source.Name, "error", err)
		return nil
	}

	if root.XMLName.Local == "feed" {
		return parseAtom(&root, source)
	}
	return parseRSS(&root, source)
}

func parseAtom(root *xmlNode, source Source) []Article {
	var articles []Article
	for _, entry := range findAll(root, "entry") {
		title := cleanText(childText(entry, "title"))
		link := atomLink(entry)

		published, ok := parseDate(childText(entry, "published"))
		if !ok {
			published, ok = parseDate(childText(entry, "updated"))
		}
		if !ok {
			published = time.Now().UTC()
		}

		desc := childText(entry, "summary")
		if desc == "" {
			desc = childText(entry, "content")
		}
		desc = truncateRunes(cleanText(desc), maxDescriptionLen)

		if title == "" && link == "" {
			continue
		}
		articles = append(articles, Article{
			Title:       title,
			Link:        link,
			Published:   published,
			Description: desc,
			SourceName:  source.Name,
			SourceURL:   source.SiteURL,
		})
	}
	return articles
}

func parseRSS(root *xmlNode, source Source) []Article {
	var articles []Article
	for _, item := range findAll(root, "item") {
		title := cleanText(childText(item, "title"))

		link := strings.TrimSpace(childText(item, "link"))
		if link == "" {
			link = strings.TrimSpace(childText(item, "guid"))
		}

		published, ok := parseDate(childText(item, "pubDate"))
		if !ok {
			// Covers both dc:date and a bare date element.
			published, ok = parseDate(childText(item, "date"))
		}
		if !ok {
			published = time.Now().UTC()
		}

		desc := rssDescription(item)
		desc = truncateRunes(cleanText(desc), maxDescriptionLen)

		if title == "" && link == "" {
			continue
		}
		articles = append(articles, Article{
			Title:       title,
			Link:        link,
			Published:   published,
			Description: desc,
			SourceName:  source.Name,
			SourceURL:   source.SiteURL,
		})
	}
	return articles
}

// atomLink picks the href of the first link with rel="alternate" or no rel
// at all. Self, hub, and enclosure links never win even when listed first.
func atomLink(entry *xmlNode) string {
	for i := range entry.Children {
		c := &entry.Children[i]
		if c.XMLName.Local != "link" {
			continue
		}
		rel := attr(c, "rel")
		href := attr(c, "href")
		if href != "" && (rel == "alternate" || rel == "") {
			return href
		}
	}
	return ""
}

// rssDescription prefers a content-namespaced body (content:encoded) over
// the plain description element.
func rssDescription(item *xmlNode) string {
	for i := range item.Children {
		c := &item.Children[i]
		if c.XMLName.Local == "encoded" && strings.Contains(c.XMLName.Space, "content") {
			if c.Text != "" {
				return c.Text
			}
		}
	}
	return childText(item, "description")
}

// findAll collects descendant elements with the given local name,
// in document order.
func findAll(n *xmlNode, local string) []*xmlNode {
	var found []*xmlNode
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Local == local {
			found = append(found, c)
			continue
		}
		found = append(found, findAll(c, local)...)
	}
	return found
}

// childText returns the text of the first direct child with the given local
// name, namespaced or not.
func childText(n *xmlNode, local string) string {
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Local == local {
			return c.Text
		}
	}
	return ""
}

func attr(n *xmlNode, name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// cleanText strips HTML tags and decodes entities left over after tag
// removal, collapsing the result to trimmed plain text.
func cleanText(s string) string {
	if strings.ContainsAny(s, "<>") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.TrimSpace(html.UnescapeString(s))
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// dateFormats covers RFC-1123 variants with named, numeric, or missing
// timezones, ISO-8601 with and without offsets, and bare dates.
var dateFormats = []string{
	time.RFC1123,
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate tries the known formats in order, then falls back to the
// generic mail-header date parser. A date that defeats all of them reports
// !ok rather than failing the article.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	if t, err := mail.ParseDate(s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
