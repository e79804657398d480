package routes

import (
	"net/http"

	"github.com/ArowuTest/lottogen-backend/internal/config"
	"github.com/ArowuTest/lottogen-backend/internal/handlers"
	"github.com/ArowuTest/lottogen-backend/internal/middleware"
	"github.com/ArowuTest/lottogen-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies holds the services the router wires into handlers
type HandlerDependencies struct {
	GenerationService services.GenerationService
	JobService        services.JobService
	ValidationService services.ValidationService
	SettingsService   services.SystemSettingsService
	AuthService       services.AuthService
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Create handlers
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	collectionHandler := handlers.NewCollectionHandler(deps.GenerationService, deps.JobService)
	jobHandler := handlers.NewJobHandler(deps.JobService)
	validationHandler := handlers.NewValidationHandler(deps.ValidationService)
	settingsHandler := handlers.NewSystemSettingsHandler(deps.SettingsService)

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":     "ok",
				"ledgerSize": deps.GenerationService.LedgerSize(),
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Odds routes
		odds := public.Group("/odds")
		{
			odds.GET("", validationHandler.Odds)
			odds.GET("/exact", validationHandler.ExactOdds)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// Collection routes
		collections := protected.Group("/collections")
		{
			collections.GET("", collectionHandler.ListCollections)
			collections.POST("", collectionHandler.CreateCollection)
			collections.GET("/:id", collectionHandler.GetCollection)
			collections.DELETE("/:id", collectionHandler.DeleteCollection)
			collections.POST("/:id/generate", collectionHandler.Generate)
			collections.POST("/:id/regenerate", collectionHandler.Regenerate)
			collections.POST("/:id/validate", validationHandler.Validate)
			collections.GET("/:id/export", collectionHandler.Export)
			collections.PUT("/:id/tickets/:key/freeze", collectionHandler.SetFrozen)
			collections.GET("/:id/tickets/:key/verify", collectionHandler.VerifyTicket)
			collections.DELETE("/:id/tickets/:key", collectionHandler.DeleteTicket)
		}

		// Job routes
		jobs := protected.Group("/jobs")
		{
			jobs.GET("/:id", jobHandler.GetJob)
			jobs.DELETE("/:id", jobHandler.CancelJob)
		}

		// Settings routes
		settings := protected.Group("/settings")
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PUT("", settingsHandler.UpdateSettings)
		}
	}

	return router
}
