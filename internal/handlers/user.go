package handlers

import (
	"blogicum/internal/forms"
	"blogicum/internal/middleware"
	"blogicum/internal/services"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *services.UserService
	posts *services.PostService
}

func NewUserHandler(users *services.UserService, posts *services.PostService) *UserHandler {
	return &UserHandler{users: users, posts: posts}
}

// Profile lists a user's posts. Owners also see their drafts and scheduled posts.
func (h *UserHandler) Profile(c *gin.Context) {
	viewer := middleware.CurrentUser(c)
	profile, page, err := h.posts.ListByAuthor(c.Request.Context(), c.Param("username"), viewer, c.Query("page"))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "blog/profile.html", gin.H{
		"Profile": profile,
		"Page":    page,
		"IsOwner": viewer != nil && viewer.ID == profile.ID,
		"Title":   profile.DisplayName(),
	})
}

func (h *UserHandler) ShowEdit(c *gin.Context) {
	form := forms.NewProfileForm()
	form.Fill(middleware.CurrentUser(c))
	Render(c, http.StatusOK, "blog/user.html", gin.H{"Form": form, "Title": "Edit profile"})
}

func (h *UserHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	form := forms.NewProfileForm()
	if !form.Bind(c) {
		Render(c, http.StatusOK, "blog/user.html", gin.H{"Form": form, "Title": "Edit profile"})
		return
	}
	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, form.Input())
	if errors.Is(err, services.ErrUsernameTaken) {
		form.AddError("username", forms.UsernameTakenMessage)
		Render(c, http.StatusOK, "blog/user.html", gin.H{"Form": form, "Title": "Edit profile"})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, profilePath(updated.Username))
}
