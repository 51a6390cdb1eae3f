package post

import "time"

// Raw holds the fields scraped from a post page before any interpretation.
type Raw struct {
	RawTimestamp string `json:"raw_timestamp"`
	RawCaption   string `json:"raw_caption"`
}

// Post represents one extracted Instagram post, ready for formatting
type Post struct {
	SourceURL    string `json:"source_url"`
	RawTimestamp string `json:"raw_timestamp,omitempty"`
	RawCaption   string `json:"raw_caption"`
	Date         string `json:"date"`
	Region       string `json:"region"`
	MapLink      string `json:"map_link"`
}

// NewPost resolves a Post from a permalink and its scraped fields.
// Region and map link are inferred from the caption using regions.
func NewPost(permalink string, raw Raw, regions *RegionTable, now time.Time) *Post {
	return &Post{
		SourceURL:    NormalizeURL(permalink),
		RawTimestamp: raw.RawTimestamp,
		RawCaption:   raw.RawCaption,
		Date:         ResolveDate(raw.RawTimestamp, now),
		Region:       regions.Classify(raw.RawCaption),
		MapLink:      ExtractMapLink(raw.RawCaption),
	}
}
