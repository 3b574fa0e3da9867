package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apierrors "github.com/maxfilov/shazam/internal/errors"
	"github.com/maxfilov/shazam/internal/handlers"
	"github.com/maxfilov/shazam/internal/index"
	"github.com/maxfilov/shazam/internal/logger"
	"github.com/maxfilov/shazam/internal/matcher"
	"github.com/maxfilov/shazam/internal/metrics"
	"github.com/maxfilov/shazam/internal/middleware"
)

var servePort uint16

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP fingerprinting server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Uint16Var(&servePort, "port", 8000, "HTTP listen port")
}

func runServe(cmd *cobra.Command, args []string) error {
	logLevel := getEnvOrDefault("LOG_LEVEL", "info")
	logFile := getEnvOrDefault("LOG_FILE", "shazam.log")
	if err := logger.Initialize(logLevel, logFile); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("=== shazam server starting ===")

	if err := godotenv.Load(); err != nil {
		logger.Log.Warn("no .env file found, using system environment variables")
	}

	metrics.Initialize()

	snapshotDir := getEnvOrDefault("SNAPSHOT_DIR", "./snapshot")
	tempAudioDir := getEnvOrDefault("TEMP_AUDIO_DIR", "./temp_audio")

	m := matcher.New()
	if index.Exists(snapshotDir) {
		idx, registry, err := index.Load(snapshotDir)
		if err != nil {
			snapshotErr := apierrors.NewSnapshotCorrupt(err.Error())
			logger.Log.Fatal("failed to load snapshot",
				zap.String("code", string(snapshotErr.Code)),
				zap.String("message", snapshotErr.Message))
		}
		m.Load(idx, registry)
		logger.Log.Info("snapshot loaded", zap.Int("tracks", registry.Len()))
	} else {
		logger.Log.Warn("no snapshot found, matcher will reject queries until one is loaded",
			zap.String("snapshot_dir", snapshotDir))
	}

	pool := matcher.NewWorkerPool()
	h := handlers.New(m, pool, tempAudioDir)

	port := fmt.Sprintf("%d", servePort)
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	r.Use(cors.New(corsConfig))

	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(gin.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/healthz", h.Health)
	r.GET("/internal/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/shazam", h.Shazam)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithFields("failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorWithFields("server forced to shutdown", err)
	}

	logger.Log.Info("server exited")
	return nil
}
