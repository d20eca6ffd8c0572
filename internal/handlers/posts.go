package handlers

import (
	"blogicum/internal/forms"
	"blogicum/internal/middleware"
	"blogicum/internal/models"
	"blogicum/internal/services"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func detailPath(postID uint) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

func profilePath(username string) string {
	return "/profile/" + username + "/"
}

// Index lists the publicly visible posts.
func (h *PostHandler) Index(c *gin.Context) {
	page, err := h.posts.ListPublished(c.Request.Context(), c.Query("page"))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "blog/index.html", gin.H{"Page": page, "Title": "Latest posts"})
}

func (h *PostHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}
	page, err := h.posts.Search(c.Request.Context(), q, c.Query("page"))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "blog/index.html", gin.H{"Page": page, "Query": q, "Title": "Search: " + q})
}

func (h *PostHandler) Detail(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.renderDetail(c, postID, forms.NewCommentForm())
}

// renderDetail shows the post with its comments; form is the comment form,
// possibly carrying errors from a rejected submission.
func (h *PostHandler) renderDetail(c *gin.Context, postID uint, form *forms.CommentForm) {
	post, comments, err := h.posts.GetDetail(c.Request.Context(), postID, middleware.CurrentUser(c))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "blog/detail.html", gin.H{
		"Post":     post,
		"Comments": comments,
		"Form":     form,
		"Title":    post.Title,
	})
}

func (h *PostHandler) newForm(c *gin.Context) (*forms.PostForm, error) {
	ctx := c.Request.Context()
	categories, err := h.posts.Categories(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := h.posts.Locations(ctx)
	if err != nil {
		return nil, err
	}
	return forms.NewPostForm(categories, locations), nil
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	form, err := h.newForm(c)
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "blog/create.html", gin.H{"Form": form, "Title": "New post"})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	form, err := h.newForm(c)
	if err != nil {
		handleError(c, err)
		return
	}
	if !form.Bind(c, "") {
		Render(c, http.StatusOK, "blog/create.html", gin.H{"Form": form, "Title": "New post"})
		return
	}
	if _, err := h.posts.CreatePost(c.Request.Context(), user, form.Input()); err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(user.Username))
}

// ownPost loads the post for an author-only page. It answers the request
// itself and returns nil when the post is missing or belongs to someone else.
func (h *PostHandler) ownPost(c *gin.Context) *models.Post {
	postID, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	post, err := h.posts.PostForEdit(c.Request.Context(), middleware.CurrentUser(c), postID)
	if errors.Is(err, services.ErrForbidden) {
		c.Redirect(http.StatusFound, detailPath(postID))
		return nil
	}
	if err != nil {
		handleError(c, err)
		return nil
	}
	return post
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	post := h.ownPost(c)
	if post == nil {
		return
	}
	form, err := h.newForm(c)
	if err != nil {
		handleError(c, err)
		return
	}
	form.Fill(post)
	Render(c, http.StatusOK, "blog/create.html", gin.H{"Form": form, "Post": post, "Title": "Edit post"})
}

func (h *PostHandler) Update(c *gin.Context) {
	post := h.ownPost(c)
	if post == nil {
		return
	}
	form, err := h.newForm(c)
	if err != nil {
		handleError(c, err)
		return
	}
	if !form.Bind(c, post.Image) {
		Render(c, http.StatusOK, "blog/create.html", gin.H{"Form": form, "Post": post, "Title": "Edit post"})
		return
	}
	_, err = h.posts.UpdatePost(c.Request.Context(), middleware.CurrentUser(c), post.ID, form.Input())
	if errors.Is(err, services.ErrForbidden) {
		c.Redirect(http.StatusFound, detailPath(post.ID))
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, detailPath(post.ID))
}

// ShowDelete asks for confirmation before deleting.
func (h *PostHandler) ShowDelete(c *gin.Context) {
	post := h.ownPost(c)
	if post == nil {
		return
	}
	form, err := h.newForm(c)
	if err != nil {
		handleError(c, err)
		return
	}
	form.Fill(post)
	Render(c, http.StatusOK, "blog/create.html", gin.H{"Form": form, "Post": post, "Delete": true, "Title": "Delete post"})
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	err := h.posts.DeletePost(c.Request.Context(), middleware.CurrentUser(c), postID)
	if errors.Is(err, services.ErrForbidden) {
		c.Redirect(http.StatusFound, detailPath(postID))
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
