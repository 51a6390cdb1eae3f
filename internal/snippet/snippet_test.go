package snippet

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/igpost/internal/post"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
}

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter(nil, fixedNow)

	text, p := f.Format(
		"https://www.instagram.com/p/ABC123?igsh=xyz",
		"台北好吃牛肉麵 ✨️ 推薦地址：台北市大安區 https://maps.app.goo.gl/abc123",
		"2024-03-15T10:30:00.000Z",
	)

	want := "            {\n" +
		"                region: '台北 Taipei',\n" +
		"                permalink: 'https://www.instagram.com/p/ABC123/',\n" +
		"                date: '2024-03-15',\n" +
		"                map: 'https://maps.app.goo.gl/abc123',\n" +
		"                content: `台北好吃牛肉麵 ✨️ 推薦地址：台北市大安區 https://maps.app.goo.gl/abc123`\n" +
		"            } ,"

	assert.Equal(t, want, text)
	assert.Equal(t, "2024-03-15", p.Date)
	assert.Equal(t, "台北 Taipei", p.Region)
	assert.Equal(t, "https://maps.app.goo.gl/abc123", p.MapLink)
}

func TestFormatter_Defaults(t *testing.T) {
	f := NewFormatter(nil, fixedNow)

	text, p := f.Format("https://www.instagram.com/p/X", "", "")

	assert.Equal(t, "2026-10-17", p.Date)
	assert.Equal(t, post.DefaultRegion, p.Region)
	assert.Contains(t, text, "map: '',\n")
	assert.Contains(t, text, "content: ``\n")
}

func TestFormatter_Overrides(t *testing.T) {
	f := NewFormatter(nil, fixedNow)

	_, p := f.Format(
		"https://www.instagram.com/p/X/",
		"台北 https://maps.app.goo.gl/abc",
		"",
		WithRegion("日本 Japan"),
		WithMapLink("https://maps.google.com/?q=tokyo"),
	)
	assert.Equal(t, "日本 Japan", p.Region)
	assert.Equal(t, "https://maps.google.com/?q=tokyo", p.MapLink)

	_, p = f.Format("https://www.instagram.com/p/X/", "台北", "", WithRegion(""), WithMapLink(""))
	assert.Equal(t, "台北 Taipei", p.Region, "empty override falls back to inference")
	assert.Empty(t, p.MapLink)
}

func TestFormatter_CustomRegions(t *testing.T) {
	rt := &post.RegionTable{
		Regions: []post.Region{{Label: "Europe", Keywords: []string{"paris"}}},
		Default: "Elsewhere",
	}
	f := NewFormatter(rt, fixedNow)

	_, p := f.Format("https://www.instagram.com/p/X/", "Paris croissant", "")
	assert.Equal(t, "Europe", p.Region)

	_, p = f.Format("https://www.instagram.com/p/X/", "台北", "")
	assert.Equal(t, "Elsewhere", p.Region)
}

func TestEscapeBackticks(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"no ticks", "no ticks"},
		{"a`b", "a\\``b"},
		{"``", "\\``\\``"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeBackticks(tt.in))
		})
	}
}

func TestRender_EscapesContentOnly(t *testing.T) {
	p := &post.Post{
		SourceURL:  "https://www.instagram.com/p/X/",
		RawCaption: "use `code`",
		Date:       "2024-01-01",
		Region:     post.DefaultRegion,
	}

	text := Render(p)
	assert.Contains(t, text, "content: `use \\``code\\```\n")
	assert.True(t, strings.HasSuffix(text, "} ,"))
	assert.Equal(t, 7, strings.Count(text, "\n")+1)
}

func TestWriteBlock(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteBlock(&buf, "body"))

	assert.Equal(t, "\n=== 提取結果 ===\nbody\n================\n\n", buf.String())
}
