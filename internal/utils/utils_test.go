package utils

import (
	"html/template"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTextSanitises(t *testing.T) {
	out := RenderText("Hello **world**\nsecond line<script>alert(1)</script>")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(out)))
	require.NoError(t, err)

	assert.Equal(t, "world", doc.Find("strong").Text())
	assert.Equal(t, 1, doc.Find("br").Length())
	assert.Zero(t, doc.Find("script").Length())
}

func TestRenderTextLazyImages(t *testing.T) {
	out := RenderText("![cat](https://example.com/cat.png)")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(out)))
	require.NoError(t, err)

	img := doc.Find("img")
	require.Equal(t, 1, img.Length())
	loading, _ := img.Attr("loading")
	assert.Equal(t, "lazy", loading)
}

func TestRenderCacheMemoises(t *testing.T) {
	c := NewRenderCache(2)
	calls := 0
	render := func(s string) template.HTML {
		calls++
		return template.HTML("<p>" + s + "</p>")
	}

	assert.Equal(t, template.HTML("<p>a</p>"), c.GetOrRender("a", render))
	assert.Equal(t, template.HTML("<p>a</p>"), c.GetOrRender("a", render))
	assert.Equal(t, 1, calls)

	c.GetOrRender("b", render)
	c.GetOrRender("c", render)
	assert.Equal(t, 2, c.Len())
	c.GetOrRender("a", render)
	assert.Equal(t, 4, calls)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want uint
		ok   bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseID(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "привет…", Truncate("привет мир", 6))
	assert.Equal(t, "a b", PlainText("<p>a</p>\n<p>b</p>"))
}
