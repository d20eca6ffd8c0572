package router

import (
	"blogicum/internal/config"
	"blogicum/internal/db"
	"blogicum/internal/handlers"
	"blogicum/internal/middleware"
	"blogicum/internal/services"
	"blogicum/web"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "blogicum_session"

// New builds the engine with sessions, CSRF protection, templates and routes.
func New(cfg *config.Config, store db.Repository, media services.MediaStore) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(handlers.Recovery))

	templates, err := LoadTemplates(web.FS)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	r.HTMLRender = templates

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   14 * 24 * 3600,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, sessionStore))
	r.Use(middleware.CSRF(handlers.CSRFFailure))

	users := services.NewUserService(store)
	r.Use(middleware.LoadUser(users))

	RegisterRoutes(r, cfg, store, media, users)
	r.NoRoute(handlers.NotFound)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Repository, media services.MediaStore, users *services.UserService) {
	postService := services.NewPostService(store, media, cfg)
	commentService := services.NewCommentService(store)

	postHandler := handlers.NewPostHandler(postService)
	commentHandler := handlers.NewCommentHandler(commentService, postHandler)
	categoryHandler := handlers.NewCategoryHandler(postService)
	userHandler := handlers.NewUserHandler(users, postService)
	authHandler := handlers.NewAuthHandler(users)
	pageHandler := handlers.NewPageHandler(handlers.StaticPages)
	mediaHandler := handlers.NewMediaHandler(cfg.MediaRoot)

	// Public routes
	r.GET("/", postHandler.Index)
	r.GET("/search/", postHandler.Search)
	r.GET("/category/:slug/", categoryHandler.Posts)
	r.GET("/profile/:username/", userHandler.Profile)
	r.GET("/posts/:id/", postHandler.Detail)

	r.GET("/auth/register/", authHandler.ShowRegister)
	r.POST("/auth/register/", authHandler.Register)
	r.GET("/auth/login/", authHandler.ShowLogin)
	r.POST("/auth/login/", authHandler.Login)
	r.POST("/auth/logout/", authHandler.Logout)

	for name := range handlers.StaticPages {
		r.GET("/pages/"+name+"/", pageHandler.Show(name))
	}
	r.GET("/media/*filepath", mediaHandler.Serve)

	// Routes for logged-in users; ownership is checked by the services.
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/profile/edit/", userHandler.ShowEdit)
		authorized.POST("/profile/edit/", userHandler.Update)

		authorized.GET("/posts/new/", postHandler.ShowCreate)
		authorized.POST("/posts/new/", postHandler.Create)
		authorized.GET("/posts/:id/edit/", postHandler.ShowEdit)
		authorized.POST("/posts/:id/edit/", postHandler.Update)
		authorized.GET("/posts/:id/delete/", postHandler.ShowDelete)
		authorized.POST("/posts/:id/delete/", postHandler.Delete)

		authorized.POST("/posts/:id/comments/new/", commentHandler.Create)
		authorized.GET("/posts/:id/comments/:cid/edit/", commentHandler.ShowEdit)
		authorized.POST("/posts/:id/comments/:cid/edit/", commentHandler.Update)
		authorized.GET("/posts/:id/comments/:cid/delete/", commentHandler.ShowDelete)
		authorized.POST("/posts/:id/comments/:cid/delete/", commentHandler.Delete)
	}
}
