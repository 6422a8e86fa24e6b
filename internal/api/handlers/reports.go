package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cleanerboard/backend/internal/api/middleware"
	"github.com/cleanerboard/backend/internal/booking"
	"github.com/cleanerboard/backend/internal/config"
	"github.com/cleanerboard/backend/internal/notify"
	"github.com/cleanerboard/backend/internal/schedule"
	"github.com/cleanerboard/backend/internal/storage"
	"github.com/cleanerboard/backend/internal/storage/models"
	"github.com/cleanerboard/backend/internal/websocket"
)

// CreateReportRequest is the body for submitting a completion report.
type CreateReportRequest struct {
	FlatID string `json:"flat_id"`
	Date   string `json:"date"`   // YYYY-MM-DD, defaults to today
	Status string `json:"status"` // done, skipped, issue; defaults to done
	Notes  string `json:"notes"`
}

// CreateReport returns a handler that records a cleaner's completion
// report, announces it to connected clients, and relays it to the
// manager's WhatsApp. notifier and broadcaster may be nil.
func CreateReport(svc *schedule.Service, repo *storage.ReportRepository, notifier *notify.Notifier, broadcaster *websocket.EventBroadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		details := map[string]string{}
		var flat *config.FlatConfig
		if req.FlatID == "" {
			details["flat_id"] = "flat_id is required"
		} else if flat = flatByID(svc.Flats(), req.FlatID); flat == nil {
			details["flat_id"] = fmt.Sprintf("unknown flat %q", req.FlatID)
		}

		if req.Date == "" {
			req.Date = booking.Today(svc.Location()).String()
		} else if _, err := booking.ParseDate(req.Date); err != nil {
			details["date"] = "date must be YYYY-MM-DD"
		}

		if req.Status == "" {
			req.Status = models.ReportStatusDone
		} else if !models.ValidReportStatus(req.Status) {
			details["status"] = fmt.Sprintf("status must be one of done, skipped, issue; got %q", req.Status)
		}

		if len(details) > 0 {
			middleware.WriteErrorWithDetails(w, http.StatusBadRequest, middleware.ErrValidation, "Invalid report", details)
			return
		}

		report := &models.CompletionReport{
			FlatID:     req.FlatID,
			ReportDate: req.Date,
			Status:     req.Status,
			Notes:      req.Notes,
		}
		if err := repo.Create(r.Context(), report); err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to store report")
			return
		}

		if broadcaster != nil {
			broadcaster.BroadcastReportSubmitted(report.ID, report.FlatID, flat.Name, report.ReportDate, report.Status)
		}
		if notifier != nil {
			notifier.RelayReport(reportLine(flat.Name, report))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(report)
	}
}

// GetReport returns a handler that retrieves a single report.
func GetReport(repo *storage.ReportRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		report, err := repo.GetByID(r.Context(), id)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query report")
			return
		}
		if report == nil {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Report not found")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	}
}

// ListReports returns a handler that lists reports, optionally filtered
// by flat and date range (flat, from, to query parameters).
func ListReports(repo *storage.ReportRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		flatID := q.Get("flat")
		from := q.Get("from")
		to := q.Get("to")

		for name, value := range map[string]string{"from": from, "to": to} {
			if value == "" {
				continue
			}
			if _, err := booking.ParseDate(value); err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation,
					fmt.Sprintf("%s must be YYYY-MM-DD, got %q", name, value))
				return
			}
		}

		reports, err := repo.List(r.Context(), flatID, from, to)
		if err != nil {
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to query reports")
			return
		}
		if reports == nil {
			reports = []models.CompletionReport{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reports)
	}
}

// flatByID finds a flat by ID in the configured list.
func flatByID(flats []config.FlatConfig, id string) *config.FlatConfig {
	for i := range flats {
		if flats[i].ID == id {
			return &flats[i]
		}
	}
	return nil
}

// reportLine formats a completion report for the WhatsApp relay.
func reportLine(flatName string, report *models.CompletionReport) string {
	var line string
	switch report.Status {
	case models.ReportStatusSkipped:
		line = fmt.Sprintf("%s: cleaning skipped on %s", flatName, report.ReportDate)
	case models.ReportStatusIssue:
		line = fmt.Sprintf("%s: cleaned on %s, issue reported", flatName, report.ReportDate)
	default:
		line = fmt.Sprintf("%s: cleaned on %s", flatName, report.ReportDate)
	}
	if report.Notes != "" {
		line += " - " + report.Notes
	}
	return line
}
