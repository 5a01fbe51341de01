package handlers

import (
	"time"

	"project-tracker/backend/internal/middleware"
	"project-tracker/backend/internal/monitoring"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterDeps bundles everything the route table needs.
type RouterDeps struct {
	Register  *RegisterHandler
	Auth      *AuthHandler
	Projects  *ProjectHandler
	Members   *MemberHandler
	Tasks     *TaskHandler
	JWTSecret string
	RateLimit gin.HandlerFunc
	Health    map[string]monitoring.HealthCheckFunc
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	if deps.RateLimit != nil {
		router.Use(deps.RateLimit)
	}

	router.GET("/health", monitoring.HealthHandler(deps.Health))
	router.GET("/metrics", monitoring.MetricsHandler)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", deps.Register.Registration)
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/refresh", deps.Auth.Refresh)
		auth.POST("/logout", deps.Auth.Logout)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(deps.JWTSecret))
	{
		authed.GET("/projects", deps.Projects.Index)
		authed.POST("/projects", deps.Projects.Store)
		authed.GET("/projects/:slug", deps.Projects.Show)
		authed.PATCH("/projects/:slug", deps.Projects.Update)
		authed.DELETE("/projects/:slug", deps.Projects.Destroy)

		authed.GET("/projects/:slug/members", deps.Members.Index)
		authed.POST("/projects/:slug/members", deps.Members.Attach)
		authed.PATCH("/projects/:slug/members/:user_id", deps.Members.ChangeAccessLevel)
		authed.DELETE("/projects/:slug/members/:user_id", deps.Members.Detach)

		authed.GET("/projects/:slug/tasks", deps.Tasks.Index)
		authed.POST("/projects/:slug/tasks", deps.Tasks.Store)
		authed.GET("/projects/:slug/tasks/:task_slug", deps.Tasks.Show)
		authed.PATCH("/projects/:slug/tasks/:task_slug", deps.Tasks.Update)
		authed.DELETE("/projects/:slug/tasks/:task_slug", deps.Tasks.Destroy)
		authed.POST("/projects/:slug/tasks/:task_slug/complete", deps.Tasks.Complete)
	}

	return router
}
