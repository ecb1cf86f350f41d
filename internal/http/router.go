package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bersih-backend/internal/handlers"
	"bersih-backend/internal/middleware"
	"bersih-backend/internal/ws"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	reportHandler *handlers.ReportHandler,
	recapHandler *handlers.RecapHandler,
	announcementHandler *handlers.AnnouncementHandler,
	loginLogHandler *handlers.LoginLogHandler,
	healthHandler *handlers.HealthHandler,
	hub *ws.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)

	// Public API routes - Authentication
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/auth/forgot-password", authHandler.ForgotPassword).Methods("POST")
	r.HandleFunc("/auth/verify-reset-code", authHandler.VerifyResetCode).Methods("POST")
	r.HandleFunc("/auth/reset-password", authHandler.ResetPassword).Methods("POST")

	// Protected API routes - Reports
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.Authenticate)
	reportsAPI.HandleFunc("", reportHandler.SubmitReport).Methods("POST")
	reportsAPI.HandleFunc("", reportHandler.ListReports).Methods("GET")
	reportsAPI.HandleFunc("/bulk", authMiddleware.RequireAdmin(http.HandlerFunc(reportHandler.DeleteReports)).ServeHTTP).Methods("DELETE")
	reportsAPI.HandleFunc("/{id:[0-9]+}", reportHandler.GetReport).Methods("GET")
	reportsAPI.HandleFunc("/{id:[0-9]+}/resolve", authMiddleware.RequireAdmin(http.HandlerFunc(reportHandler.ResolveReport)).ServeHTTP).Methods("POST")

	// Protected API routes - Yearly recap (admin only)
	recapAPI := r.PathPrefix("/api/recap").Subrouter()
	recapAPI.Use(authMiddleware.RequireAdmin)
	recapAPI.HandleFunc("", recapHandler.GetRecap).Methods("GET")
	recapAPI.HandleFunc("/pdf", recapHandler.DownloadPDF).Methods("GET")
	recapAPI.HandleFunc("/csv", recapHandler.DownloadCSV).Methods("GET")

	// Protected API routes - Users (admin only except change-password)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.ListUsers)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.CreateUser)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("/pending", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.ListPending)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("/change-password", userHandler.ChangePassword).Methods("POST")
	usersAPI.HandleFunc("/{id}/approve", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.ApproveUser)).ServeHTTP).Methods("PUT")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.DeleteUser)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Announcements
	announcementsAPI := r.PathPrefix("/api/announcements").Subrouter()
	announcementsAPI.Use(authMiddleware.Authenticate)
	announcementsAPI.HandleFunc("", announcementHandler.List).Methods("GET")
	announcementsAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(announcementHandler.Create)).ServeHTTP).Methods("POST")
	announcementsAPI.HandleFunc("/{id:[0-9]+}", authMiddleware.RequireAdmin(http.HandlerFunc(announcementHandler.Delete)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Login audit trail (admin only)
	r.Handle("/api/login-logs", authMiddleware.RequireAdmin(http.HandlerFunc(loginLogHandler.ListLoginLogs))).Methods("GET")

	// WebSocket - live feed of incoming reports for the admin dashboard
	r.Handle("/api/ws/reports", authMiddleware.RequireAdmin(http.HandlerFunc(hub.HandleConnection)))

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
