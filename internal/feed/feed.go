package feed

import "time"

// Source is one entry of the feed catalog: a display name, the feed
// document URL, and the human-facing site URL. The catalog is loaded once
// at startup and never mutated.
type Source struct {
	Name    string `yaml:"name"`
	FeedURL string `yaml:"feed_url"`
	SiteURL string `yaml:"site_url"`
}

// Article is one normalized feed entry. Title and Description are plain
// text with HTML stripped and entities decoded; Description is capped at
// 500 characters. Published falls back to the fetch time when the feed
// carries no parseable date.
type Article struct {
	Title       string
	Link        string
	Published   time.Time
	Description string
	SourceName  string
	SourceURL   string
}
