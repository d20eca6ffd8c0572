package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"html/template"
	"log"

	lru "github.com/hashicorp/golang-lru/v2"
)

// renderedCacheSize bounds how many rendered texts stay in memory.
const renderedCacheSize = 500

// RenderCache memoises rendered post and comment bodies keyed by a digest
// of the source text, so edits naturally miss.
type RenderCache struct {
	lruCache *lru.Cache[string, template.HTML]
}

func NewRenderCache(size int) *RenderCache {
	l, err := lru.New[string, template.HTML](size)
	if err != nil {
		log.Fatalf("Failed to create LRU cache: %v", err)
	}
	return &RenderCache{lruCache: l}
}

func cacheKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// GetOrRender returns the cached HTML for source, rendering it on a miss.
func (c *RenderCache) GetOrRender(source string, render func(string) template.HTML) template.HTML {
	key := cacheKey(source)
	if html, ok := c.lruCache.Get(key); ok {
		return html
	}
	html := render(source)
	c.lruCache.Add(key, html)
	return html
}

func (c *RenderCache) Len() int {
	return c.lruCache.Len()
}

func (c *RenderCache) Purge() {
	c.lruCache.Purge()
}
