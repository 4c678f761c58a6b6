package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mergington/school-management/internal/api/handlers"
	"github.com/mergington/school-management/internal/api/middleware"
	"github.com/mergington/school-management/internal/services"
)

// NewRouter sets up all the routes for the application
func NewRouter(
	authHandler *handlers.AuthHandler,
	activityHandler *handlers.ActivityHandler,
	healthHandler *handlers.HealthHandler,
	authService services.AuthService,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS())

	// Static frontend
	r.Static("/static", "./static")
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusTemporaryRedirect, "/static/index.html")
	})

	// Health check endpoint
	r.GET("/health", healthHandler.Health)

	// Activity catalog (public)
	r.GET("/activities", activityHandler.GetActivities)

	// Authentication endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/status", authHandler.Status)
	}

	// Registration endpoints (teacher login required)
	protected := r.Group("/activities")
	protected.Use(middleware.RequireAuth(authService))
	{
		protected.POST("/:name/signup", activityHandler.SignUp)
		protected.DELETE("/:name/unregister", activityHandler.Unregister)
	}

	return r
}
