package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/ecodrive/ecodrive-api/api"
	"github.com/ecodrive/ecodrive-api/internal/config"
	"github.com/ecodrive/ecodrive-api/internal/dashboard"
	"github.com/ecodrive/ecodrive-api/internal/gateway"
	"github.com/ecodrive/ecodrive-api/internal/handlers"
	"github.com/ecodrive/ecodrive-api/internal/middleware"
	"github.com/ecodrive/ecodrive-api/internal/services"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// 1. Load configuration
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// 2. Connect to the database
	pool, err := gateway.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer pool.Close()

	gw := gateway.New(pool)

	// 3. Initialize the dashboard aggregator
	aggregator := dashboard.New(gw, log, dashboard.Options{
		EcoTrendDays:  cfg.EcoTrendDays,
		ServiceLimit:  cfg.ServiceListLimit,
		FillTrendGaps: cfg.TrendFillGaps,
	})

	// 4. Initialize services
	authService := services.NewAuthService(gw, []byte(cfg.JWTSecret), log)
	fleetService := services.NewFleetService(gw, aggregator, log)
	userService := services.NewUserService(gw, log)
	analyticsService := services.NewAnalyticsService(gw, cfg.TrendFillGaps, log)
	uploadService, err := services.NewUploadService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatalf("Error initializing upload service: %v", err)
	}

	// 5. Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(aggregator, analyticsService)
	fleetHandler := handlers.NewFleetHandler(fleetService)
	userHandler := handlers.NewUserHandler(userService)
	uploadHandler := handlers.NewUploadHandler(uploadService)

	// 6. Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.JWTSecret), gw, log)

	// 7. Setup router
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(log))
	api.SetupRoutes(router, authMiddleware, authHandler, dashboardHandler, fleetHandler, userHandler, uploadHandler)

	// --- CORS: Allow All Origins ---
	c := cors.AllowAll()
	handlerWithCORS := c.Handler(router)

	// 8. Start HTTP server
	log.Infof("Server starting on port %s", cfg.Port)
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlerWithCORS,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v", cfg.Port, err)
	}
}
