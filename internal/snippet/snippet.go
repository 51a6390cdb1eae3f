// Package snippet renders extracted posts as object literals that can be pasted
// straight into a JavaScript or TypeScript list.
package snippet

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/pfrederiksen/igpost/internal/post"
)

// ResultHeader opens the bordered result block
const ResultHeader = "=== 提取結果 ==="

// Formatter turns scraped fields into a snippet
type Formatter struct {
	regions *post.RegionTable
	now     func() time.Time
}

// NewFormatter creates a Formatter that classifies captions with regions and
// resolves missing dates against now. A nil regions uses the built-in table and
// a nil now uses time.Now.
func NewFormatter(regions *post.RegionTable, now func() time.Time) *Formatter {
	if regions == nil {
		regions = post.DefaultRegions()
	}
	if now == nil {
		now = time.Now
	}
	return &Formatter{
		regions: regions,
		now:     now,
	}
}

type fieldOverrides struct {
	region  string
	mapLink string
}

// Option supplies a field value instead of inferring it from the caption.
type Option func(*fieldOverrides)

// WithRegion uses region instead of classifying the caption. Empty means infer.
func WithRegion(region string) Option {
	return func(o *fieldOverrides) {
		o.region = region
	}
}

// WithMapLink uses link instead of searching the caption. Empty means infer.
func WithMapLink(link string) Option {
	return func(o *fieldOverrides) {
		o.mapLink = link
	}
}

// Format resolves the post fields and renders them as a snippet.
// The resolved post is returned alongside the text.
func (f *Formatter) Format(permalink, caption, rawTimestamp string, opts ...Option) (string, *post.Post) {
	var o fieldOverrides
	for _, opt := range opts {
		opt(&o)
	}

	p := post.NewPost(permalink, post.Raw{RawTimestamp: rawTimestamp, RawCaption: caption}, f.regions, f.now())
	if o.region != "" {
		p.Region = o.region
	}
	if o.mapLink != "" {
		p.MapLink = o.mapLink
	}

	return Render(p), p
}

// Render writes p as an object literal followed by a trailing comma
func Render(p *post.Post) string {
	var b strings.Builder

	b.WriteString("            {\n")
	fmt.Fprintf(&b, "                region: '%s',\n", p.Region)
	fmt.Fprintf(&b, "                permalink: '%s',\n", p.SourceURL)
	fmt.Fprintf(&b, "                date: '%s',\n", p.Date)
	fmt.Fprintf(&b, "                map: '%s',\n", p.MapLink)
	fmt.Fprintf(&b, "                content: `%s`\n", EscapeBackticks(p.RawCaption))
	b.WriteString("            } ,")

	return b.String()
}

// EscapeBackticks replaces every backtick with a backslash and two backticks.
func EscapeBackticks(s string) string {
	return strings.ReplaceAll(s, "`", "\\``")
}

// WriteBlock writes text between the result header and a footer rule as wide
// as the header, surrounded by blank lines.
func WriteBlock(w io.Writer, text string) error {
	footer := strings.Repeat("=", runewidth.StringWidth(ResultHeader))
	_, err := fmt.Fprintf(w, "\n%s\n%s\n%s\n\n", ResultHeader, text, footer)
	return err
}
