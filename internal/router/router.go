package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/prepmaster/prepmaster-backend/internal/config"
	"github.com/prepmaster/prepmaster-backend/internal/handler"
	"github.com/prepmaster/prepmaster-backend/internal/middleware"
	"github.com/prepmaster/prepmaster-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	System *handler.SystemHandler
	Static *handler.StaticHandler
	Auth   *handler.AuthHandler
	AI     *handler.AIHandler
}

// SetupRouter configures the Gin engine: CORS, request IDs, the public
// routes, and the rate-limited AI group.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list; otherwise
	// allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())

	router.GET("/health", handlers.System.Health)

	// Static data, read straight from the flat-file store.
	router.GET("/interview-questions", handlers.Static.InterviewQuestions)
	router.GET("/practice-questions", handlers.Static.PracticeQuestions)
	router.GET("/resources", handlers.Static.Resources)
	router.GET("/user", handlers.Static.User)

	router.POST("/login", handlers.Auth.Login)
	router.POST("/signup", handlers.Auth.Signup)

	// AI endpoints sit behind a per-IP limiter so one client cannot burn
	// the upstream quota.
	aiLimiter := middleware.NewRateLimiter(cfg.AIRateLimit, time.Minute)
	ai := router.Group("/ai")
	ai.Use(aiLimiter.Middleware())
	{
		ai.POST("/interview-questions", handlers.AI.GenerateQuestions)
		ai.POST("/evaluate-answer", handlers.AI.EvaluateAnswer)
		ai.POST("/learning-path", handlers.AI.LearningPath)
		ai.POST("/mcq-questions", handlers.AI.GenerateMCQ)
		ai.POST("/chat", handlers.AI.Chat)
	}

	return router
}
