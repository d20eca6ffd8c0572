package handlers

import (
	"blogicum/internal/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	posts *services.PostService
}

func NewCategoryHandler(posts *services.PostService) *CategoryHandler {
	return &CategoryHandler{posts: posts}
}

// Posts lists the visible posts of a published category.
func (h *CategoryHandler) Posts(c *gin.Context) {
	category, page, err := h.posts.ListByCategory(c.Request.Context(), c.Param("slug"), c.Query("page"))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "blog/category.html", gin.H{
		"Category": category,
		"Page":     page,
		"Title":    category.Title,
	})
}
