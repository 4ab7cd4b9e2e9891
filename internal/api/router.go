package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/taskhive/internal/auth"
	"github.com/skillsenselab/taskhive/internal/logger"
	"github.com/skillsenselab/taskhive/internal/ratelimit"
	"github.com/skillsenselab/taskhive/internal/server/middleware"
	"github.com/skillsenselab/taskhive/internal/version"
)

// Deps are the wired services the router needs.
type Deps struct {
	Auth      *AuthHandler
	Tasks     *TaskHandler
	Users     *UserHandler
	Validator *auth.Validator
	Limiter   *ratelimit.Limiter
	Log       *logger.Logger
}

// RegisterRoutes wires the middleware stack and all routes onto the engine.
func RegisterRoutes(engine *gin.Engine, d Deps) {
	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.Recovery(d.Log),
	)

	build := version.Get()
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": build.Version})
	})

	api := engine.Group("/api")

	// Registration and login are anonymous.
	api.POST("/registration", d.Auth.Register)
	api.POST("/login", d.Auth.Login)

	// Refresh requires a refresh-type token and consumes rate budget.
	api.POST("/refresh",
		middleware.RequireRefresh(d.Validator),
		middleware.RateLimit(d.Limiter),
		d.Auth.Refresh,
	)

	// Task routes require an access token; mutating routes are rate-gated.
	todos := api.Group("/todos", middleware.RequireAccess(d.Validator))
	{
		gated := middleware.RateLimit(d.Limiter)
		todos.POST("", gated, d.Tasks.Create)
		todos.PUT("/:id", gated, d.Tasks.Update)
		todos.DELETE("/:id", gated, d.Tasks.Delete)
		todos.GET("/:id/:limit", d.Tasks.ListPage)
	}

	// Admin surface.
	api.GET("/users",
		middleware.RequireAccess(d.Validator),
		middleware.RequireAdmin(),
		d.Users.List,
	)
}
