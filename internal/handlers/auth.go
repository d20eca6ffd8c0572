package handlers

import (
	"blogicum/internal/forms"
	"blogicum/internal/middleware"
	"blogicum/internal/services"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "registration/registration_form.html", gin.H{"Form": forms.NewRegistrationForm(), "Title": "Sign up"})
}

// Register creates the account and logs the new user in.
func (h *AuthHandler) Register(c *gin.Context) {
	form := forms.NewRegistrationForm()
	if !form.Bind(c) {
		Render(c, http.StatusOK, "registration/registration_form.html", gin.H{"Form": form, "Title": "Sign up"})
		return
	}
	user, err := h.users.Register(c.Request.Context(), form.Input())
	if errors.Is(err, services.ErrUsernameTaken) {
		form.AddError("username", forms.UsernameTakenMessage)
		Render(c, http.StatusOK, "registration/registration_form.html", gin.H{"Form": form, "Title": "Sign up"})
		return
	}
	if errors.Is(err, services.ErrPasswordTooLong) {
		form.AddError("password1", forms.PasswordTooLongMessage)
		Render(c, http.StatusOK, "registration/registration_form.html", gin.H{"Form": form, "Title": "Sign up"})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	if err := middleware.Login(c, user); err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "registration/login.html", gin.H{"Form": forms.NewLoginForm(c.Query("next")), "Title": "Log in"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	form := forms.NewLoginForm("")
	if !form.Bind(c) {
		Render(c, http.StatusOK, "registration/login.html", gin.H{"Form": form, "Title": "Log in"})
		return
	}
	username, password := form.Credentials()
	user, err := h.users.Authenticate(c.Request.Context(), username, password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		form.AddError("", forms.LoginFailedMessage)
		Render(c, http.StatusOK, "registration/login.html", gin.H{"Form": form, "Title": "Log in"})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	if err := middleware.Login(c, user); err != nil {
		handleError(c, err)
		return
	}
	next := form.Next()
	if next == "" {
		next = profilePath(user.Username)
	}
	c.Redirect(http.StatusFound, next)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.Logout(c); err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "registration/logged_out.html", gin.H{"Title": "Logged out"})
}
