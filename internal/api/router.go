package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/markdown-blog-api/internal/config"
	"github.com/markdown-blog-api/internal/database"
	"github.com/markdown-blog-api/internal/service"
	"github.com/rs/zerolog"
)

// SystemInspector reports on the backing database
type SystemInspector interface {
	HealthCheck(ctx context.Context) error
	Tables(ctx context.Context) ([]database.TableInfo, error)
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger, system SystemInspector) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowOrigin))

	// Handlers
	articleHandler := NewArticleHandler(services, log)
	tagHandler := NewTagHandler(services, log)
	settingHandler := NewSettingHandler(services, log)
	markdownHandler := NewMarkdownHandler(services, log)
	systemHandler := NewSystemHandler(system, log)

	router.GET("/health", systemHandler.Health)

	api := router.Group("/api")
	{
		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.GET("/summary", articleHandler.Summaries)
			articles.GET("/:id", articleHandler.Get)
			articles.GET("/:id/html", markdownHandler.ArticleHTML)
			articles.POST("", articleHandler.Create)
			articles.PUT("/:id", articleHandler.Update)
			articles.DELETE("/:id", articleHandler.Delete)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.List)
			tags.GET("/stats", tagHandler.Stats)
			tags.POST("", tagHandler.Create)
			tags.DELETE("/:id", tagHandler.Delete)
		}

		settings := api.Group("/settings")
		{
			settings.GET("", settingHandler.Get)
			settings.POST("", settingHandler.Update)
		}

		api.POST("/markdown/preview", markdownHandler.Preview)

		sys := api.Group("/system")
		{
			sys.GET("/health", systemHandler.Health)
			sys.GET("/tables", systemHandler.Tables)
		}
	}

	return router
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"kind":  "internal",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware(allowOrigin string) gin.HandlerFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, If-None-Match")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "ETag")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
