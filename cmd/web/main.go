package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/krisha-oswal/pantry-oracle/internal/config"
	"github.com/krisha-oswal/pantry-oracle/internal/logger"
	"github.com/krisha-oswal/pantry-oracle/internal/oracle"
	"github.com/krisha-oswal/pantry-oracle/internal/pantry"
	"github.com/krisha-oswal/pantry-oracle/internal/web"
)

func main() {
	log := logger.New(logger.LevelNormal, nil)

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}
	log = logger.New(logger.ParseLevel(cfg.LogLevel), nil)

	client := oracle.NewClient(cfg.OracleBaseURL, cfg.UpstreamTimeout, log)
	sessions := pantry.NewStore(cfg.SessionTTL, log)
	handler := web.NewHandler(client, sessions, cfg.UpstreamTimeout, cfg.MaxUploadBytes, log)

	gin.SetMode(cfg.GinMode)
	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler.Register(r)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		log.Info("pantry oracle web client listening on %s (backend %s)", cfg.ListenAddr, cfg.OracleBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown: %v", err)
	}
}
