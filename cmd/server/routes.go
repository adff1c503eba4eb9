package main

import (
	"github.com/gin-gonic/gin"
	"github.com/postboard/api/internal/middleware"
	"github.com/postboard/api/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS(svc.cfg.CORS.AllowOrigins))
	r.Use(middleware.AuditLog(svc.audit))

	authRequired := middleware.AuthRequired(svc.tokens)
	ownsPost := middleware.OwnershipRequired(svc.posts.OwnerOf)
	ownsComment := middleware.OwnershipRequired(svc.comments.OwnerOf)

	r.GET("/health", svc.healthHandler.CheckHealth)

	auth := r.Group("/auth", svc.authLimiter.Middleware())
	{
		auth.POST("/register", svc.authHandler.Register)
		auth.POST("/login", svc.authHandler.Login)
		auth.GET("/refresh", svc.authHandler.Refresh)
		auth.GET("/logout", svc.authHandler.Logout)
	}

	users := r.Group("/users")
	{
		users.GET("", svc.userHandler.List)
		users.GET("/me", authRequired, svc.userHandler.Me)
		users.GET("/me/audit", authRequired, svc.auditHandler.Mine)
		users.GET("/:id", svc.userHandler.Get)
		users.PUT("", authRequired, svc.userHandler.UpdateMe)
		users.DELETE("", authRequired, svc.userHandler.DeleteMe)
	}

	posts := r.Group("/posts")
	{
		posts.GET("", svc.postHandler.List)
		posts.GET("/user/me", authRequired, svc.postHandler.Mine)
		posts.GET("/:id", svc.postHandler.Get)
		posts.POST("", authRequired, svc.postHandler.Create)
		posts.PUT("/:id", authRequired, ownsPost, svc.postHandler.Update)
		posts.DELETE("/:id", authRequired, ownsPost, svc.postHandler.Delete)
	}

	comments := r.Group("/comments")
	{
		comments.GET("", svc.commentHandler.List)
		comments.GET("/post/:postId", svc.commentHandler.ByPost)
		comments.GET("/:id", svc.commentHandler.Get)
		comments.POST("", authRequired, svc.commentHandler.Create)
		comments.PUT("/:id", authRequired, ownsComment, svc.commentHandler.Update)
		comments.DELETE("/:id", authRequired, ownsComment, svc.commentHandler.Delete)
	}
}
