// Package server exposes the steganography engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// multipartOverhead is the slack allowed on top of MaxUploadBytes for form fields and boundaries.
const multipartOverhead = 1 << 20

// NewRouter builds the API routes.
func NewRouter(cfg Config) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes + multipartOverhead

	router.Use(gin.Recovery(), requestLogger(), cors.New(corsConfig(cfg)), limitBody(cfg.MaxUploadBytes+multipartOverhead))

	stegoHandler := NewStegoHandler(cfg)

	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		stego := api.Group("/stego")
		{
			stego.POST("/validate", stegoHandler.Validate)
			stego.POST("/embed", stegoHandler.Embed)
			stego.POST("/extract", stegoHandler.Extract)
		}
	}

	return router
}

func corsConfig(cfg Config) cors.Config {
	config := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = cfg.AllowedOrigins
		config.AllowCredentials = true
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With"}
	config.ExposeHeaders = []string{"Content-Disposition"}
	return config
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client", c.ClientIP()).
			Msg("Request")
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg Config) error {
	gin.SetMode(gin.ReleaseMode)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Strs("origins", cfg.AllowedOrigins).Msg("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
