package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"p9e.in/fleetops/middleware"
	"p9e.in/fleetops/models"
)

type breakRequestOut struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	BreakType      string `json:"break_type"`
	BreakDuration  int    `json:"break_duration"`
	SubmissionDate int64  `json:"submission_date"`
	Notes          string `json:"notes"`
}

func shapeBreakRequest(b models.BreakRequest) breakRequestOut {
	return breakRequestOut{
		ID:             b.ID.String(),
		UserID:         b.UserID,
		BreakType:      b.BreakType,
		BreakDuration:  b.BreakDuration,
		SubmissionDate: b.SubmissionDate,
		Notes:          b.Notes,
	}
}

// CreateBreakRequest validates the JSON payload, stamps id and submission
// date server-side, persists, alerts management best-effort, then re-reads
// the stored row for the response.
func (h *Handler) CreateBreakRequest(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r)

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Request body is required")
		return
	}

	input, err := models.ValidateBreakRequestPayload(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item := models.BreakRequest{
		UserID:         ident.ID,
		BreakType:      input.BreakType,
		BreakDuration:  input.BreakDuration,
		SubmissionDate: time.Now().Unix(),
		Notes:          "",
		DriverName:     input.DriverName,
		CompanyName:    input.CompanyName,
		Location:       input.Location,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		h.serverError(w, "Failed to save break request", err)
		return
	}

	go h.Alerts.NotifyBreakRequest(item)

	var saved models.BreakRequest
	if err := h.DB.First(&saved, "id = ?", item.ID).Error; err != nil {
		h.serverError(w, "Failed to retrieve saved break request", err)
		return
	}

	respondJSON(w, http.StatusCreated, shapeBreakRequest(saved))
}

// ListBreakRequests returns all break requests, optionally bounded by an
// inclusive submission_date range, newest first. Manager-only (enforced in
// the route table).
func (h *Handler) ListBreakRequests(w http.ResponseWriter, r *http.Request) {
	dr, err := models.ParseDateRange(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var items []models.BreakRequest
	if err := dr.Apply(h.DB.Model(&models.BreakRequest{})).
		Order("submission_date DESC").
		Find(&items).Error; err != nil {
		h.serverError(w, "Internal Server Error", err)
		return
	}

	out := make([]breakRequestOut, len(items))
	for i, item := range items {
		out[i] = shapeBreakRequest(item)
	}
	respondJSON(w, http.StatusOK, map[string]any{"break_requests": out})
}
