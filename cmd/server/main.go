package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/cache"
	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	"portfolio-api/internal/handlers"
	applogger "portfolio-api/internal/logger"
	"portfolio-api/internal/realtime"
	"portfolio-api/internal/routes"
	"portfolio-api/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	logger, err := applogger.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	gormLevel := gormlogger.Info
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		gormLevel = gormlogger.Warn
	}

	// Init database
	db, err := database.Open(cfg.DBPath, gormLevel)
	if err != nil {
		return err
	}
	logger.Info("database ready", zap.String("path", cfg.DBPath))

	// One monitor shared by every named cache instance
	monitor := cache.NewMonitor(logger.Named("cache"))
	caches := cache.NewRegistry(cache.RegistryOptions{
		PageTTL:         cfg.Cache.PageTTL,
		APITTL:          cfg.Cache.APITTL,
		StaticTTL:       cfg.Cache.StaticTTL,
		UserTTL:         cfg.Cache.UserTTL,
		MaxSize:         cfg.Cache.MaxSize,
		CleanupInterval: cfg.Cache.CleanupInterval,
		SingleFlight:    cfg.Cache.SingleFlight,
		ReportEvery:     cfg.Cache.ReportEvery,
	}, monitor, logger.Named("cache"))
	defer caches.Destroy()

	svc := handlers.Services{
		Projects:     services.NewProjectService(db, caches),
		Technologies: services.NewTechnologyService(db, caches),
		Posts:        services.NewPostService(db, caches),
		Experience:   services.NewExperienceService(db, caches),
		Users:        services.NewUserService(db, caches),
	}
	svc.Homepage = services.NewHomepageService(caches, svc.Projects, svc.Posts, svc.Experience, svc.Technologies)

	if cfg.AdminPassword != "" {
		created, err := svc.Users.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			logger.Info("seeded admin account", zap.String("username", cfg.AdminUsername))
		}
	} else {
		logger.Warn("ADMIN_PASSWORD not set, no admin account seeded")
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	hub := realtime.NewHub(logger.Named("realtime"))
	h := handlers.New(svc, caches, tokens, hub, logger)

	// Setup the routes (public and admin routes)
	ginRoutes := routes.SetupRoutes(h, tokens, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           ginRoutes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
