// Package handlers provides HTTP request handlers for the API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cleanerboard/backend/internal/schedule"
	"github.com/cleanerboard/backend/internal/storage"
	"github.com/cleanerboard/backend/internal/websocket"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	DBConnected bool   `json:"db_connected"`
}

// HealthCheck returns a handler that performs a health check.
func HealthCheck(db *storage.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dbConnected := db.Ping() == nil

		status := "healthy"
		if !dbConnected {
			status = "degraded"
		}

		response := HealthResponse{
			Status:      status,
			DBConnected: dbConnected,
		}

		w.Header().Set("Content-Type", "application/json")
		if status != "healthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(response)
	}
}

// StatusResponse represents the system status response.
type StatusResponse struct {
	Flats            int      `json:"flats"`
	Timezone         string   `json:"timezone"`
	DefaultDays      int      `json:"default_days"`
	MaxDays          int      `json:"max_days"`
	ReportsLast30d   int      `json:"reports_last_30d"`
	ConnectedClients int      `json:"connected_clients"`
	DigestChannels   []string `json:"digest_channels"`
	NextDigestAt     string   `json:"next_digest_at,omitempty"`
}

// Status returns a handler that provides system status information.
func Status(svc *schedule.Service, digest *schedule.DigestScheduler, reports *storage.ReportRepository, hub *websocket.Hub, channels []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		recentReports, err := reports.CountSince(ctx, 30)
		if err != nil {
			recentReports = 0
		}

		response := StatusResponse{
			Flats:            len(svc.Flats()),
			Timezone:         svc.Location().String(),
			DefaultDays:      svc.DefaultDays(),
			MaxDays:          svc.MaxDays(),
			ReportsLast30d:   recentReports,
			ConnectedClients: hub.ClientCount(),
			DigestChannels:   channels,
		}
		if next := digest.NextRun(); next != nil {
			response.NextDigestAt = next.Format("2006-01-02T15:04:05Z07:00")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}
}
