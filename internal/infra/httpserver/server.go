package httpserver

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Port           int
	StaticDir      string
	MaxUploadBytes int64
}

// NewRouter wires the HTTP surface: the recognition endpoint, health, and
// the static landing page.
func NewRouter(h *Handler, cfg ServerConfig, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	router.POST("/upload_video", limitBody(cfg.MaxUploadBytes), h.UploadVideo)
	router.GET("/health", h.Health)

	indexPath := filepath.Join(cfg.StaticDir, "index.html")
	if _, err := os.Stat(indexPath); err == nil {
		router.StaticFile("/", indexPath)
		router.Static("/static", cfg.StaticDir)
	} else {
		router.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message": "Action Recognition API is running",
				"endpoints": gin.H{
					"upload_video": "/upload_video (POST)",
					"health":       "/health (GET)",
				},
			})
		})
	}

	return router
}

// NewServer builds the http.Server for the router.
func NewServer(router *gin.Engine, port int) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}
}

func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
		)
	}
}
