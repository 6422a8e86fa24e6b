// Package api provides HTTP routing and handlers for the REST API.
package api

import (
	"github.com/gorilla/mux"

	"github.com/cleanerboard/backend/internal/api/handlers"
	"github.com/cleanerboard/backend/internal/api/middleware"
	"github.com/cleanerboard/backend/internal/notify"
	"github.com/cleanerboard/backend/internal/schedule"
	"github.com/cleanerboard/backend/internal/storage"
	"github.com/cleanerboard/backend/internal/websocket"
)

// NewRouter creates and configures the HTTP router with all routes.
func NewRouter(
	db *storage.DB,
	hub *websocket.Hub,
	svc *schedule.Service,
	digest *schedule.DigestScheduler,
	notifier *notify.Notifier,
) *mux.Router {
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	fetchLog := storage.NewFetchLogRepository(db)
	reports := storage.NewReportRepository(db)
	broadcaster := websocket.NewEventBroadcaster(hub)

	// API subrouter
	api := r.PathPrefix("/api").Subrouter()

	// Health and status endpoints
	api.HandleFunc("/health", handlers.HealthCheck(db)).Methods("GET")
	api.HandleFunc("/status", handlers.Status(svc, digest, reports, hub, notifier.Channels())).Methods("GET")

	// WebSocket endpoint
	api.HandleFunc("/ws", handlers.WebSocketUpgrade(hub)).Methods("GET")

	// Schedule endpoints
	api.HandleFunc("/schedule", handlers.GetSchedule(svc, broadcaster)).Methods("GET")
	api.HandleFunc("/schedule/text", handlers.GetScheduleText(svc)).Methods("GET")
	api.HandleFunc("/schedule/pdf", handlers.GetSchedulePDF(svc)).Methods("GET")

	// Flat endpoints
	api.HandleFunc("/flats", handlers.ListFlats(svc, fetchLog)).Methods("GET")

	// Completion report endpoints
	api.HandleFunc("/reports", handlers.ListReports(reports)).Methods("GET")
	api.HandleFunc("/reports", handlers.CreateReport(svc, reports, notifier, broadcaster)).Methods("POST")
	api.HandleFunc("/reports/{id}", handlers.GetReport(reports)).Methods("GET")

	// Digest endpoints
	api.HandleFunc("/digest/run", handlers.RunDigest(svc, digest)).Methods("POST")

	// Cleaner's web view
	r.HandleFunc("/", handlers.SchedulePage(svc)).Methods("GET")

	return r
}
