package middleware

import (
	"blogicum/internal/models"
	"context"
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// SessionUserKey holds the logged-in user's id in the session.
const SessionUserKey = "user_id"

// LoginPath is where anonymous visitors are sent for protected pages.
const LoginPath = "/auth/login/"

// UserLoader resolves the user stored in the session.
type UserLoader interface {
	UserByID(ctx context.Context, id uint) (*models.User, error)
}

// CurrentUser returns the user set by LoadUser, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get(CheckUserKey); exists {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

// Login records the user in the session.
func Login(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(SessionUserKey, user.ID)
	return session.Save()
}

func Logout(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	c.Set(CheckUserKey, nil)
	return session.Save()
}

// AuthRequired redirects anonymous visitors to the login page, keeping the
// requested path in ?next=.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser retrieves the user from the session and sets it on the context.
// A session pointing at a deleted user is treated as anonymous.
func LoadUser(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, ok := session.Get(SessionUserKey).(uint); ok {
			user, err := users.UserByID(c.Request.Context(), id)
			if err == nil {
				c.Set(CheckUserKey, user)
			}
		}
		c.Next()
	}
}
