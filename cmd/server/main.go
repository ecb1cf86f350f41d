package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"bersih-backend/internal/auth"
	"bersih-backend/internal/cache"
	"bersih-backend/internal/config"
	"bersih-backend/internal/database"
	"bersih-backend/internal/db"
	"bersih-backend/internal/handlers"
	"bersih-backend/internal/health"
	apphttp "bersih-backend/internal/http"
	"bersih-backend/internal/middleware"
	"bersih-backend/internal/repositories"
	"bersih-backend/internal/services"
	"bersih-backend/internal/storage"
	"bersih-backend/internal/ws"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer pool.Close()

	// Redis is optional, login falls back to bcrypt only.
	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (login will use bcrypt only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool)
	migCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(migCtx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	uploader, err := storage.NewS3Storage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)
	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	reportRepo := repositories.NewReportRepository(pool)
	resetRepo := repositories.NewPasswordResetRepository(pool)
	announcementRepo := repositories.NewAnnouncementRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)

	// Live report feed for admin dashboards
	hub := ws.NewHub()
	go hub.Run()

	// Services
	userService := services.NewUserService(userRepo, resetRepo, jwtManager)
	reportService := services.NewReportService(reportRepo, uploader, hub)
	recapService := services.NewRecapService(reportRepo)
	announcementService := services.NewAnnouncementService(announcementRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, loginLogRepo)
	userHandler := handlers.NewUserHandler(userService)
	reportHandler := handlers.NewReportHandler(reportService)
	recapHandler := handlers.NewRecapHandler(recapService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	loginLogHandler := handlers.NewLoginLogHandler(loginLogRepo)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := apphttp.NewRouter(
		authHandler,
		userHandler,
		reportHandler,
		recapHandler,
		announcementHandler,
		loginLogHandler,
		healthHandler,
		hub,
		authMiddleware,
	)

	handler := middleware.Recover(corsMiddleware(router))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
