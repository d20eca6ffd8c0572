package handlers

import (
	"blogicum/internal/forms"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/services"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments *services.CommentService
	posts    *PostHandler
}

func NewCommentHandler(comments *services.CommentService, posts *PostHandler) *CommentHandler {
	return &CommentHandler{comments: comments, posts: posts}
}

// Create adds a comment. An invalid submission re-renders the post page.
func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	form := forms.NewCommentForm()
	if !form.Bind(c) {
		h.posts.renderDetail(c, postID, form)
		return
	}
	_, err := h.comments.AddComment(c.Request.Context(), middleware.CurrentUser(c), postID, form.Text())
	if err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, detailPath(postID))
}

// ownComment loads the comment for an author-only page. It answers the
// request itself and returns nil when the comment is missing, belongs to
// another post or to someone else.
func (h *CommentHandler) ownComment(c *gin.Context) *models.Comment {
	postID, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	commentID, ok := paramID(c, "cid")
	if !ok {
		return nil
	}
	comment, err := h.comments.CommentForEdit(c.Request.Context(), middleware.CurrentUser(c), postID, commentID)
	if errors.Is(err, services.ErrForbidden) {
		c.Redirect(http.StatusFound, detailPath(postID))
		return nil
	}
	if err != nil {
		handleError(c, err)
		return nil
	}
	return comment
}

func (h *CommentHandler) ShowEdit(c *gin.Context) {
	comment := h.ownComment(c)
	if comment == nil {
		return
	}
	form := forms.NewCommentForm()
	form.Fill(comment.Text)
	Render(c, http.StatusOK, "blog/comment.html", gin.H{"Form": form, "Comment": comment, "Title": "Edit comment"})
}

func (h *CommentHandler) Update(c *gin.Context) {
	comment := h.ownComment(c)
	if comment == nil {
		return
	}
	form := forms.NewCommentForm()
	if !form.Bind(c) {
		Render(c, http.StatusOK, "blog/comment.html", gin.H{"Form": form, "Comment": comment, "Title": "Edit comment"})
		return
	}
	_, err := h.comments.UpdateComment(c.Request.Context(), middleware.CurrentUser(c), comment.PostID, comment.ID, form.Text())
	if err != nil && !errors.Is(err, services.ErrForbidden) {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, detailPath(comment.PostID))
}

func (h *CommentHandler) ShowDelete(c *gin.Context) {
	comment := h.ownComment(c)
	if comment == nil {
		return
	}
	Render(c, http.StatusOK, "blog/comment.html", gin.H{"Comment": comment, "Delete": true, "Title": "Delete comment"})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	commentID, ok := paramID(c, "cid")
	if !ok {
		return
	}
	err := h.comments.DeleteComment(c.Request.Context(), middleware.CurrentUser(c), postID, commentID)
	if err != nil && !errors.Is(err, services.ErrForbidden) {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, detailPath(postID))
}
