package handlers

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// MediaHandler serves uploaded images from the media root.
type MediaHandler struct {
	root string
}

func NewMediaHandler(root string) *MediaHandler {
	return &MediaHandler{root: root}
}

// Serve handles GET /media/*filepath. Stored names are random, so responses
// may be cached for a long time.
func (h *MediaHandler) Serve(c *gin.Context) {
	name := path.Clean("/" + c.Param("filepath"))
	if name == "/" || strings.HasPrefix(path.Base(name), ".") {
		NotFound(c)
		return
	}
	full := filepath.Join(h.root, filepath.FromSlash(name))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		NotFound(c)
		return
	}
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.File(full)
}
