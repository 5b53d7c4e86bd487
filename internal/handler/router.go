package handler

import (
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xxxsen/micropost/internal/auth"
	"github.com/xxxsen/micropost/internal/middleware"
)

type RouterDeps struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Follows       *FollowHandler
	Posts         *MicroPostHandler
	Authenticator *auth.Authenticator
	CookieName    string
	RateWindow    time.Duration
	RateMaxKeys   int
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.Use(
		withBasePath(api.BasePath()),
		middleware.Authenticate(deps.Authenticator, deps.CookieName),
	)
	requireUser := middleware.RequireUser(path.Join(api.BasePath(), "auth", "login"))
	limit := middleware.RateLimit(deps.RateWindow, deps.RateMaxKeys)

	api.GET("/auth/login", deps.Auth.LoginForm)
	api.GET("/auth/register", deps.Auth.RegisterForm)
	api.POST("/auth/login", limit, deps.Auth.Login)
	api.POST("/auth/register", limit, deps.Auth.Register)
	api.POST("/auth/logout", deps.Auth.Logout)

	users := api.Group("/users")
	users.GET("/profile/:id", deps.Users.Profile)
	users.GET("/profile/:id/edit", deps.Users.EditProfileForm)
	users.PATCH("/profile/:id/edit", deps.Users.UpdateProfile)
	users.GET("/users", deps.Users.List)
	users.GET("/user/:id", deps.Users.Get)
	users.POST("/user", limit, deps.Users.Create)
	users.PUT("/user/:id", deps.Users.Update)
	users.DELETE("/user/:id", deps.Users.Delete)
	users.POST("/:id/follow", requireUser, deps.Follows.Toggle)
	users.GET("/:id/followers", deps.Follows.Followers)
	users.GET("/:id/following", deps.Follows.Following)

	posts := api.Group("/posts")
	posts.GET("", deps.Posts.Index)
	posts.GET("/post/:id", deps.Posts.Show)
	posts.GET("/new", requireUser, deps.Posts.NewForm)
	posts.POST("/new", requireUser, deps.Posts.Create)
	posts.GET("/:id/edit", deps.Posts.EditForm)
	posts.PATCH("/:id/edit", deps.Posts.Update)
	posts.DELETE("/:id/delete", deps.Posts.Delete)

	api.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
