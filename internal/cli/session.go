package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/igpost/internal/logger"
	"github.com/pfrederiksen/igpost/internal/post"
	"github.com/pfrederiksen/igpost/internal/snippet"
)

// User-facing messages
const (
	Banner          = "Instagram 貼文資訊提取器（連續模式）\n輸入 Instagram 貼文網址（輸入 q 離開）\n"
	Prompt          = "請輸入 IG 貼文網址: "
	Farewell        = "已離開程式"
	MsgInvalidURL   = "❌ 請輸入有效的 Instagram URL"
	MsgExtracting   = "⏳ 正在提取..."
	MsgExtractError = "❌ 提取失敗，可能需要登入或貼文不存在"
)

// State is the session's position in the prompt loop
type State int

const (
	StateAwaitingInput State = iota
	StateDone
)

// PostFetcher fetches the raw fields of a single post
type PostFetcher interface {
	FetchPost(ctx context.Context, url string) (*post.Raw, error)
}

// Session drives the prompt loop: read a URL, fetch it, print the snippet.
type Session struct {
	fetcher   PostFetcher
	formatter *snippet.Formatter
	in        io.Reader
	out       io.Writer
	format    OutputFormat
	metrics   *logger.Metrics
}

// NewSession creates a session reading URLs from in and writing results to out
func NewSession(fetcher PostFetcher, formatter *snippet.Formatter, in io.Reader, out io.Writer) *Session {
	return &Session{
		fetcher:   fetcher,
		formatter: formatter,
		in:        in,
		out:       out,
		format:    FormatText,
		metrics:   logger.NewMetrics(),
	}
}

// Run prompts for URLs until q, end of input or ctx is canceled.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprint(s.out, Banner+"\n")

	lines, done := s.readLines()
	defer close(done)

	state := StateAwaitingInput
	for state == StateAwaitingInput {
		fmt.Fprint(s.out, Prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, Farewell)
			state = StateDone
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				fmt.Fprintln(s.out, Farewell)
				state = StateDone
				continue
			}
			state = s.Handle(ctx, line)
		}
	}

	return nil
}

// readLines feeds input lines to a channel so the loop can also watch ctx.
// The channel is closed at end of input. Closing done stops delivery; a reader
// blocked in Scan stays blocked until the input yields a line, EOF or an error.
func (s *Session) readLines() (<-chan string, chan struct{}) {
	lines := make(chan string)
	done := make(chan struct{})

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Debug("Reading input failed", logger.Fields{"error": err.Error()})
		}
	}()

	return lines, done
}

// Handle processes one input line and returns the next state.
func (s *Session) Handle(ctx context.Context, line string) State {
	input := strings.TrimSpace(line)

	if strings.EqualFold(input, "q") {
		fmt.Fprintln(s.out, Farewell)
		return StateDone
	}

	if !post.IsInstagramURL(input) {
		s.metrics.IncrCounter("input.invalid")
		fmt.Fprintln(s.out, MsgInvalidURL)
		fmt.Fprintln(s.out)
		return StateAwaitingInput
	}

	url := post.NormalizeURL(input)
	fmt.Fprintln(s.out, MsgExtracting)

	start := time.Now()
	raw, err := s.fetcher.FetchPost(ctx, url)
	s.metrics.RecordTiming("fetch.duration", time.Since(start))
	if err != nil {
		s.metrics.IncrCounter("fetch.failure")
		logger.Debug("Fetch failed", logger.Fields{"url": url, "error": err.Error()})

		if ctx.Err() != nil {
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, Farewell)
			return StateDone
		}

		fmt.Fprintln(s.out, MsgExtractError)
		fmt.Fprintln(s.out)
		return StateAwaitingInput
	}
	s.metrics.IncrCounter("fetch.success")
	s.metrics.SetGauge("caption.runes", float64(utf8.RuneCountInString(raw.RawCaption)))

	text, p := s.formatter.Format(url, raw.RawCaption, raw.RawTimestamp)
	logger.Debug("Extracted post", logger.Fields{
		"url":    p.SourceURL,
		"date":   p.Date,
		"region": p.Region,
		"map":    p.MapLink,
	})

	if err := WriteOutput(s.out, text, p, s.format); err != nil {
		logger.Error("Writing output failed", logger.Fields{"url": url}, err)
	}

	return StateAwaitingInput
}

// ProcessAll handles each URL in order without prompting. It stops early on q
// or when ctx is canceled.
func (s *Session) ProcessAll(ctx context.Context, urls []string) {
	for _, u := range urls {
		if ctx.Err() != nil || s.Handle(ctx, u) == StateDone {
			return
		}
	}
}
