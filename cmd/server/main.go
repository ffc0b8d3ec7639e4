package main

import (
	"log"
	"net/http"
	"strings"

	_ "secaware/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"secaware/internal/auth"
	"secaware/internal/cache"
	"secaware/internal/config"
	"secaware/internal/db"
	"secaware/internal/handler"
	"secaware/internal/model"
	"secaware/internal/repository"
	"secaware/internal/router"
	"secaware/internal/service"
	"secaware/internal/storage"
)

// @title Security Awareness Portal API
// @version 1.0
// @description Role-gated portal for vulnerability reports, awareness quizzes, and bilingual content.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Report{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizOption{},
		&model.QuizResult{},
		&model.Article{},
		&model.TipAlert{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	uploadStore, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("upload store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	reportRepo := repository.NewReportRepository(gormDB)
	quizRepo := repository.NewQuizRepository(gormDB)
	contentRepo := repository.NewContentRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService, sessionStore)
	reportService := service.NewReportService(reportRepo, uploadStore)
	quizService := service.NewQuizService(quizRepo)
	contentService := service.NewContentService(contentRepo)
	dashboardService := service.NewDashboardService(reportRepo, userRepo, contentRepo, quizRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	reportHandler := handler.NewReportHandler(reportService)
	quizHandler := handler.NewQuizHandler(quizService)
	contentHandler := handler.NewContentHandler(contentService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenService,
		sessionStore,
		userRepo,
		authHandler,
		reportHandler,
		quizHandler,
		contentHandler,
		dashboardHandler,
	)

	// Log swagger full path
	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(swaggerHost, "http://") && !strings.HasPrefix(swaggerHost, "https://") {
		swaggerHost = "http://" + swaggerHost
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
