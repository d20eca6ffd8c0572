package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CSRFTokenKey   = "csrf_token"
	CSRFFormField  = "csrfmiddlewaretoken"
	CSRFHeaderName = "X-CSRFToken"
)

// Failure reasons passed to the CSRF failure handler.
const (
	ReasonNoToken   = "CSRF cookie not set."
	ReasonMissing   = "CSRF token missing."
	ReasonIncorrect = "CSRF token incorrect."
)

// CSRFToken returns the token for the current request, for embedding in forms.
func CSRFToken(c *gin.Context) string {
	return c.GetString(CSRFTokenKey)
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// CSRF keeps a per-session token and rejects unsafe requests that do not echo
// it back in the form field or header. onFailure renders the rejection and
// receives the reason.
func CSRF(onFailure func(c *gin.Context, reason string)) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(CSRFTokenKey).(string)
		hadToken := token != ""

		if !hadToken {
			var err error
			if token, err = newToken(); err != nil {
				log.Printf("Failed to generate CSRF token: %v", err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			session.Set(CSRFTokenKey, token)
			if err := session.Save(); err != nil {
				log.Printf("Failed to save session: %v", err)
			}
		}
		c.Set(CSRFTokenKey, token)

		if safeMethod(c.Request.Method) {
			c.Next()
			return
		}

		submitted := c.GetHeader(CSRFHeaderName)
		if submitted == "" {
			submitted = c.PostForm(CSRFFormField)
		}
		var reason string
		switch {
		case !hadToken:
			reason = ReasonNoToken
		case submitted == "":
			reason = ReasonMissing
		case subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1:
			reason = ReasonIncorrect
		}
		if reason != "" {
			log.Printf("Forbidden (%s): %s", reason, c.Request.URL.Path)
			onFailure(c, reason)
			c.Abort()
			return
		}
		c.Next()
	}
}
