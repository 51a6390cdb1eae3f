package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/igpost/internal/post"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

const (
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	Accept    = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	Timeout   = 15 * time.Second

	// CaptionMarker (✨️, sparkles plus variation selector) separates the
	// account/engagement preamble of an og:description from the caption text.
	CaptionMarker = "\u2728\ufe0f"

	trailingArtifact = `.".`
)

// ErrUnexpectedStatus is returned when the post page does not answer 200 OK
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Scraper handles fetching and parsing Instagram post pages
type Scraper struct {
	client    *http.Client
	userAgent string
	accept    string
	limiter   *rate.Limiter
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithTimeout sets the HTTP client timeout. Defaults to Timeout (15s).
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client.Timeout = d
	}
}

// WithHeaders overrides the User-Agent and Accept headers sent with each request.
// Empty values keep the defaults.
func WithHeaders(userAgent, accept string) Option {
	return func(s *Scraper) {
		if userAgent != "" {
			s.userAgent = userAgent
		}
		if accept != "" {
			s.accept = accept
		}
	}
}

// WithMinInterval spaces consecutive fetches at least d apart.
// Zero or negative leaves fetches unthrottled.
func WithMinInterval(d time.Duration) Option {
	return func(s *Scraper) {
		if d <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		s.client = c
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		userAgent: UserAgent,
		accept:    Accept,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchPost fetches a post page and extracts its raw timestamp and caption.
// Any failure (transport, status, decoding or parsing) is returned as an error;
// missing elements are not failures and yield empty fields.
func (s *Scraper) FetchPost(ctx context.Context, url string) (*post.Raw, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", s.accept)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decoding body: %w", err)
	}

	return parsePost(body)
}

// parsePost extracts the timestamp and caption from post HTML
func parsePost(r io.Reader) (*post.Raw, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	raw := &post.Raw{}

	// First <time> carrying a datetime attribute, in document order
	doc.Find("time").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if dt, ok := sel.Attr("datetime"); ok && dt != "" {
			raw.RawTimestamp = dt
			return false
		}
		return true
	})

	description := doc.Find(`meta[property="og:description"]`).First().AttrOr("content", "")
	raw.RawCaption = extractCaption(description)

	return raw, nil
}

// extractCaption returns the text after the first caption marker (or the whole
// description when there is none), trimmed, with a trailing `.".` reduced to `."`.
func extractCaption(description string) string {
	caption := description
	if _, after, found := strings.Cut(description, CaptionMarker); found {
		caption = after
	}
	caption = strings.TrimSpace(caption)

	if strings.HasSuffix(caption, trailingArtifact) {
		caption = strings.TrimSpace(caption[:len(caption)-1])
	}

	return caption
}
