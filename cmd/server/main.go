// @title                      Sakurai Cleaning Reports API
// @version                    1.0
// @description                Read-only access to completed cleaning reports.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"cleanreports/internal/cache"
	"cleanreports/internal/config"
	"cleanreports/internal/handler"
	"cleanreports/internal/logger"
	"cleanreports/internal/middleware"
	"cleanreports/internal/repository/postgres"
	"cleanreports/internal/router"
	"cleanreports/internal/service"
	s3storage "cleanreports/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Setup(cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	reportRepo := postgres.NewReportRepo(db)

	// Initialize store-name cache
	storeCache, redisClient, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	listingOpts := []service.ListingOption{}
	if storeCache != nil {
		listingOpts = append(listingOpts, service.WithStoreCache(storeCache))
	}

	// Initialize photo signing
	if cfg.S3.Bucket != "" {
		signer, err := s3storage.NewPhotoSigner(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 photo signer: %w", err)
		}
		listingOpts = append(listingOpts, service.WithPhotoSigner(signer))
	} else {
		log.Info("no photo bucket configured, photo references are served as stored")
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	listingSvc := service.NewListingService(reportRepo, cfg.Listing, cfg.Export, listingOpts...)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, cfg.Session, cfg.JWT.AccessTokenExpiry)
	dashboardH := handler.NewDashboardHandler(listingSvc, cfg.Listing.ErrorPolicy)
	reportH := handler.NewReportHandler(listingSvc, cfg.Listing.ErrorPolicy)
	healthH := handler.NewHealthHandler(db, redisClient)

	loginLimiter := middleware.NewIPRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst)
	go loginLimiter.Run(ctx, time.Minute)

	// Setup router
	r, err := router.Setup(cfg, authSvc, loginLimiter, authH, dashboardH, reportH, healthH)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
