package server

import (
	"net/http"

	"github.com/quantlab/stockdash/internal/auth"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	requireAuth := auth.RequireAuth([]byte(s.app.Config.Auth.JWTSecret))
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	// Auth
	mux.HandleFunc("/api/auth/register", s.app.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", s.app.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", s.app.AuthHandler.HandleLogout)
	mux.Handle("/api/auth/me", protected(s.app.AuthHandler.HandleMe))

	// Stock data
	mux.Handle("/api/stocks/data", protected(s.app.StockHandler.HandleData))
	mux.Handle("/api/stocks/search", protected(s.app.StockHandler.HandleSearch))
	mux.Handle("/api/stocks/quote/{symbol}", protected(s.app.StockHandler.HandleQuote))

	// User preferences
	mux.Handle("/api/users/favorites", protected(s.app.UserHandler.HandleFavorites))
	mux.Handle("/api/users/dashboard-configs", protected(s.app.UserHandler.HandleDashboardConfigs))
	mux.Handle("/api/users/dashboard-configs/{configId}", protected(s.app.UserHandler.HandleDashboardConfigByID))
	mux.Handle("/api/users/profile", protected(s.app.UserHandler.HandleProfile))
	mux.Handle("/api/users/change-password", protected(s.app.UserHandler.HandleChangePassword))
	mux.Handle("/api/users/profile-photo", protected(s.app.UserHandler.HandleProfilePhoto))
	mux.Handle("/api/users/settings", protected(s.app.UserHandler.HandleSettings))

	// Infra
	mux.HandleFunc("/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"status":"fail","message":"The requested endpoint does not exist"}`))
}
