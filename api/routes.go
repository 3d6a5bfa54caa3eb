package api

import (
	"github.com/gorilla/mux"

	"github.com/ecodrive/ecodrive-api/internal/handlers"
	"github.com/ecodrive/ecodrive-api/internal/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(
	router *mux.Router,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
	fleetHandler *handlers.FleetHandler,
	userHandler *handlers.UserHandler,
	uploadHandler *handlers.UploadHandler,
) {
	v1 := router.PathPrefix("/api/v1").Subrouter()

	// Authentication routes (public)
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Car search and recommendations (public browse surface)
	v1.HandleFunc("/cars/search", fleetHandler.SearchCars).Methods("GET")
	v1.HandleFunc("/cars/nearby", fleetHandler.SearchCarsNearby).Methods("GET")
	v1.HandleFunc("/cars/eco-match", fleetHandler.EcoMatch).Methods("GET")
	v1.HandleFunc("/eco-savings", userHandler.GetEcoSavings).Methods("GET")

	// Fleet routes (admin only)
	v1.HandleFunc("/cars", authMiddleware.AdminOnly(fleetHandler.CreateCar)).Methods("POST")
	v1.HandleFunc("/cars", authMiddleware.JWTAuth(fleetHandler.GetCars)).Methods("GET")
	v1.HandleFunc("/cars/{id}", authMiddleware.JWTAuth(fleetHandler.GetCar)).Methods("GET")
	v1.HandleFunc("/cars/{id}", authMiddleware.AdminOnly(fleetHandler.UpdateCar)).Methods("PUT")
	v1.HandleFunc("/cars/{id}", authMiddleware.AdminOnly(fleetHandler.DeleteCar)).Methods("DELETE")
	v1.HandleFunc("/cars/{id}/service-history", authMiddleware.AdminOnly(fleetHandler.GetServiceHistory)).Methods("GET")
	v1.HandleFunc("/cars/{id}/service-prediction", authMiddleware.AdminOnly(fleetHandler.PredictServiceNeeds)).Methods("GET")

	// Service appointment routes (admin only)
	v1.HandleFunc("/services", authMiddleware.AdminOnly(fleetHandler.CreateService)).Methods("POST")
	v1.HandleFunc("/services", authMiddleware.AdminOnly(fleetHandler.GetServices)).Methods("GET")
	v1.HandleFunc("/services/{id}", authMiddleware.AdminOnly(fleetHandler.GetService)).Methods("GET")
	v1.HandleFunc("/services/{id}", authMiddleware.AdminOnly(fleetHandler.UpdateService)).Methods("PUT")
	v1.HandleFunc("/services/{id}", authMiddleware.AdminOnly(fleetHandler.DeleteService)).Methods("DELETE")

	// Dashboard routes. The admin overview enforces its own access gate
	// inside the aggregator, so JWTAuth is enough here.
	v1.HandleFunc("/dashboard", authMiddleware.JWTAuth(dashboardHandler.GetAdminDashboard)).Methods("GET")
	v1.HandleFunc("/dashboard/trends", authMiddleware.AdminOnly(dashboardHandler.GetTrends)).Methods("GET")
	v1.HandleFunc("/dashboard/me", authMiddleware.JWTAuth(dashboardHandler.GetUserDashboard)).Methods("GET")
	v1.HandleFunc("/leaderboard", authMiddleware.JWTAuth(dashboardHandler.GetLeaderboard)).Methods("GET")

	// Per-user routes (protected)
	v1.HandleFunc("/me/stats", authMiddleware.JWTAuth(userHandler.GetStats)).Methods("GET")
	v1.HandleFunc("/me/bookings/summary", authMiddleware.JWTAuth(userHandler.GetBookingSummary)).Methods("GET")
	v1.HandleFunc("/me/bookings/history", authMiddleware.JWTAuth(userHandler.GetBookingHistory)).Methods("GET")
	v1.HandleFunc("/me/notifications", authMiddleware.JWTAuth(userHandler.GetNotifications)).Methods("GET")
	v1.HandleFunc("/me/credits/redeem", authMiddleware.JWTAuth(userHandler.RedeemCredits)).Methods("POST")

	// Gamification administration (admin only)
	v1.HandleFunc("/users/{id}/credits/award", authMiddleware.AdminOnly(userHandler.AwardCredits)).Methods("POST")
	v1.HandleFunc("/users/{id}/eco-score", authMiddleware.AdminOnly(userHandler.UpdateEcoScore)).Methods("POST")

	// File uploads (admin only, car images)
	v1.HandleFunc("/upload", authMiddleware.AdminOnly(uploadHandler.UploadImage)).Methods("POST")
}
