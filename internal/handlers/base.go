package handlers

import (
	"blogicum/internal/middleware"
	"blogicum/internal/services"
	"blogicum/internal/utils"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like the current user.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CSRFToken"] = middleware.CSRFToken(c)
	obj["CurrentPath"] = c.Request.URL.Path
	obj["GeneratedAt"] = time.Now()
	if _, ok := obj["Query"]; !ok {
		obj["Query"] = ""
	}

	c.HTML(code, name, obj)
}

var errorTemplates = map[int]string{
	http.StatusForbidden:           "pages/403.html",
	http.StatusNotFound:            "pages/404.html",
	http.StatusInternalServerError: "pages/500.html",
}

// RenderError renders the error page for code and stops the handler chain.
func RenderError(c *gin.Context, code int) {
	name, ok := errorTemplates[code]
	if !ok {
		name = errorTemplates[http.StatusInternalServerError]
	}
	Render(c, code, name, gin.H{"Title": http.StatusText(code)})
	c.Abort()
}

// NotFound is also used for unknown routes.
func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound)
}

// CSRFFailure renders the CSRF rejection page with the failure reason.
func CSRFFailure(c *gin.Context, reason string) {
	Render(c, http.StatusForbidden, "pages/403csrf.html", gin.H{"Reason": reason, "Title": "Forbidden"})
}

// Recovery renders the server error page for recovered panics.
func Recovery(c *gin.Context, recovered any) {
	log.Printf("Panic serving %s: %v", c.Request.URL.Path, recovered)
	RenderError(c, http.StatusInternalServerError)
}

// handleError renders the page for a service error. Errors other than
// not-found are logged and shown as a server error without detail.
func handleError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNotFound) {
		NotFound(c)
		return
	}
	log.Printf("Error serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	RenderError(c, http.StatusInternalServerError)
}

// paramID reads a numeric path parameter; a malformed one is a 404.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		NotFound(c)
	}
	return id, ok
}
