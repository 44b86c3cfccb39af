package main

import (
	"io"
	"log"
	"net/http"
	"os"

	_ "github.com/akumarujon/imf-gadget-api/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"github.com/akumarujon/imf-gadget-api/internal/auth"
	"github.com/akumarujon/imf-gadget-api/internal/cache"
	"github.com/akumarujon/imf-gadget-api/internal/config"
	"github.com/akumarujon/imf-gadget-api/internal/db"
	"github.com/akumarujon/imf-gadget-api/internal/handler"
	"github.com/akumarujon/imf-gadget-api/internal/model"
	"github.com/akumarujon/imf-gadget-api/internal/repository"
	"github.com/akumarujon/imf-gadget-api/internal/router"
	"github.com/akumarujon/imf-gadget-api/internal/service"
)

// @title IMF Gadget API
// @version 1.0
// @description Gadget armory management with lifecycle transitions and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Gadget{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Request/response log on disk
	var accessLog io.Writer = os.Stdout
	if cfg.AccessLog != "" {
		f, err := os.OpenFile(cfg.AccessLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("open access log: %v", err)
		}
		defer f.Close()
		accessLog = f
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	gadgetRepo := repository.NewGadgetRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	gadgetService := service.NewGadgetService(gadgetRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	gadgetHandler := handler.NewGadgetHandler(gadgetService)

	// Register routes
	router.Register(
		e,
		cfg,
		accessLog,
		authService,
		authHandler,
		gadgetHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
