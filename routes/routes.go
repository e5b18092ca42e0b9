package routes

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"p9e.in/fleetops/handlers"
	"p9e.in/fleetops/middleware"
)

// RegisterRoutes sets up all application routes.
//
// Auth levels, per route:
//   - public: login
//   - identified (x-storm-userid present): submissions
//   - manager: break-request listing, resolving, profile lookups
//
// Breakdown listing and export are deliberately open; drivers follow the
// status of their own submissions there.
func RegisterRoutes(h *handlers.Handler, res middleware.Resolver) http.Handler {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/api/login", h.Login).Methods("POST")

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))),
	)

	// API routes carrying the edge-asserted identity
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.ExtractIdentity)

	api.HandleFunc("/break_requests",
		middleware.RequireManager(res, h.ListBreakRequests)).Methods("GET")
	api.HandleFunc("/break_requests",
		middleware.RequireIdentity(h.CreateBreakRequest)).Methods("POST")

	api.HandleFunc("/breakdown_reports", h.ListBreakdownReports).Methods("GET")
	api.HandleFunc("/breakdown_reports",
		middleware.RequireIdentity(h.CreateBreakdownReport)).Methods("POST")
	api.HandleFunc("/breakdown_reports/{breakdown_report_id}",
		middleware.RequireManager(res, h.ResolveBreakdownReport)).Methods("PUT")

	api.HandleFunc("/download_reports", h.DownloadReports).Methods("GET")

	api.HandleFunc("/storm/auth_user",
		middleware.RequireManager(res, h.GetStormUserByID)).Methods("GET")
	api.HandleFunc("/storm/me",
		middleware.RequireManager(res, h.GetCurrentStormUser)).Methods("GET")

	return r
}
