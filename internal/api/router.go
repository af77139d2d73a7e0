package api

import (
	"github.com/drewk/recruiting-copilot/internal/api/handler"
	"github.com/drewk/recruiting-copilot/internal/api/middleware"
	"github.com/drewk/recruiting-copilot/internal/config"
	"github.com/drewk/recruiting-copilot/internal/logger"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the route handlers wired by the router.
type Handlers struct {
	Gem      *handler.GemHandler
	Pipeline *handler.PipelineHandler
	Digest   *handler.DigestHandler
	Chat     *handler.ChatHandler
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(h Handlers, cfg *config.ServerConfig, log *logger.Logger) *gin.Engine {
	// Set Gin mode
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler()

	// Health check
	r.GET("/health", healthHandler.Health)

	// API routes
	api := r.Group("/api")
	{
		// Sourcing data
		gem := api.Group("/gem")
		{
			gem.POST("/snapshot", h.Gem.SaveSnapshot)
			gem.GET("/latest", h.Gem.GetLatest)
			gem.GET("/trends", h.Gem.GetTrends)
		}

		// Pipeline analysis
		api.GET("/pipeline", h.Pipeline.GetPipeline)
		api.POST("/refresh", h.Pipeline.Refresh)

		// Recommendations
		api.GET("/activities", h.Pipeline.GetActivities)

		// Digest
		api.POST("/digest/send", h.Digest.Send)

		// Chat
		api.POST("/chat", h.Chat.Chat)
	}

	return r
}
