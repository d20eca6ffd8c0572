package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StaticPage is one entry of the static page table.
type StaticPage struct {
	Template string
	Title    string
	Data     gin.H
}

// StaticPages maps each page route segment to what it renders.
var StaticPages = map[string]StaticPage{
	"about": {
		Template: "pages/about.html",
		Title:    "About",
		Data:     gin.H{"Project": "Blogicum"},
	},
	"rules": {
		Template: "pages/rules.html",
		Title:    "Rules",
	},
	"contacts": {
		Template: "pages/contacts.html",
		Title:    "Contacts",
		Data:     gin.H{"Email": "team@blogicum.example"},
	},
}

type PageHandler struct {
	pages map[string]StaticPage
}

func NewPageHandler(pages map[string]StaticPage) *PageHandler {
	return &PageHandler{pages: pages}
}

// Show returns the handler for the named page.
func (h *PageHandler) Show(name string) gin.HandlerFunc {
	page, ok := h.pages[name]
	return func(c *gin.Context) {
		if !ok {
			NotFound(c)
			return
		}
		obj := gin.H{"Title": page.Title}
		for k, v := range page.Data {
			obj[k] = v
		}
		Render(c, http.StatusOK, page.Template, obj)
	}
}
