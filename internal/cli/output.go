package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/igpost/internal/post"
	"github.com/pfrederiksen/igpost/internal/snippet"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a format name (case-insensitive)
func ParseFormat(name string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", name)
	}
	return format, nil
}

// WriteOutput writes one extracted post in the specified format
func WriteOutput(w io.Writer, text string, p *post.Post, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, p)
	case FormatText:
		return snippet.WriteBlock(w, text)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the resolved post as JSON
func writeJSON(w io.Writer, p *post.Post) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(p)
}
