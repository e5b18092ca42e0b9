package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"p9e.in/fleetops/middleware"
	"p9e.in/fleetops/models"
	"p9e.in/fleetops/storage"
)

// pictureFields are the multipart file fields on a breakdown submission.
var pictureFields = []string{"slip_picture", "seal_1_picture", "seal_2_picture"}

type breakdownOut struct {
	ID                        string `json:"id"`
	UserID                    string `json:"user_id"`
	TruckRegistrationNumber   string `json:"truck_registration_number"`
	FleetNumber               string `json:"fleet_number"`
	DriverFullNames           string `json:"driver_full_names"`
	CellphoneNumber           string `json:"cellphone_number"`
	SupervisorName            string `json:"supervisor_name"`
	SupervisorCellphoneNumber string `json:"supervisor_cellphone_number"`
	CompanyName               string `json:"company_name"`
	BreakdownLocation         string `json:"breakdown_location"`
	IssueDescription          string `json:"issue_description"`
	SubmissionDate            int64  `json:"submission_date"`
	Status                    string `json:"status"`
	Notes                     string `json:"notes"`
	ResolutionNotes           string `json:"resolution_notes"`
	SlipPicture               string `json:"slip_picture"`
	Seal1Picture              string `json:"seal_1_picture"`
	Seal2Picture              string `json:"seal_2_picture"`
}

func shapeBreakdown(b models.BreakdownReport) breakdownOut {
	return breakdownOut{
		ID:                        b.ID.String(),
		UserID:                    b.UserID,
		TruckRegistrationNumber:   b.TruckRegistrationNumber,
		FleetNumber:               b.FleetNumber,
		DriverFullNames:           b.DriverFullNames,
		CellphoneNumber:           b.CellphoneNumber,
		SupervisorName:            b.SupervisorName,
		SupervisorCellphoneNumber: b.SupervisorCellphoneNumber,
		CompanyName:               b.CompanyName,
		BreakdownLocation:         b.BreakdownLocation,
		IssueDescription:          b.IssueDescription,
		SubmissionDate:            b.SubmissionDate,
		Status:                    b.Status,
		Notes:                     b.Notes,
		ResolutionNotes:           b.ResolutionNotes,
		SlipPicture:               b.SlipPicture,
		Seal1Picture:              b.Seal1Picture,
		Seal2Picture:              b.Seal2Picture,
	}
}

// CreateBreakdownReport accepts the multipart breakdown form: eleven
// required string fields plus three picture files. The submitter's profile
// is resolved (get-or-create) before anything else, matching the original
// submission flow.
func (h *Handler) CreateBreakdownReport(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r)

	name := ident.Name
	if name == "" {
		name = "Unknown"
	}
	profile, err := models.GetOrCreateStormUser(h.DB, ident.ID, name)
	if err != nil {
		h.Log.WithError(err).Warn("failed to resolve submitter profile")
		respondError(w, http.StatusBadRequest, "Unable to retrieve user details")
		return
	}

	if err := r.ParseMultipartForm(storage.MaxPictureSize * 4); err != nil {
		respondError(w, http.StatusBadRequest, "A multipart form is required")
		return
	}

	values, err := models.ValidateBreakdownFields(r.FormValue)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	pictures := make(map[string]string, len(pictureFields))
	for _, field := range pictureFields {
		file, header, err := r.FormFile(field)
		if err != nil {
			respondError(w, http.StatusBadRequest, field+" is required")
			return
		}
		if header.Size > storage.MaxPictureSize {
			file.Close()
			respondError(w, http.StatusBadRequest, field+" exceeds the 10MB limit")
			return
		}
		url, err := h.Pictures.Save(r.Context(), field, file, header)
		file.Close()
		if err != nil {
			h.serverError(w, "Failed to store uploaded picture", err)
			return
		}
		pictures[field] = url
	}

	rep := models.BreakdownReport{
		UserID:                    profile.ID,
		TruckRegistrationNumber:   values["truck_registration_number"],
		FleetNumber:               values["fleet_number"],
		DriverFullNames:           values["driver_full_names"],
		CellphoneNumber:           values["cellphone_number"],
		SupervisorName:            values["supervisor_name"],
		SupervisorCellphoneNumber: values["supervisor_cellphone_number"],
		CompanyName:               values["company_name"],
		BreakdownLocation:         values["breakdown_location"],
		IssueDescription:          values["issue_description"],
		SubmissionDate:            time.Now().Unix(),
		Status:                    models.StatusPending,
		Notes:                     "",
		ResolutionNotes:           "",
		SlipPicture:               pictures["slip_picture"],
		Seal1Picture:              pictures["seal_1_picture"],
		Seal2Picture:              pictures["seal_2_picture"],
	}
	if err := h.DB.Create(&rep).Error; err != nil {
		h.serverError(w, "Failed to save breakdown report", err)
		return
	}

	go h.Alerts.NotifyBreakdown(rep)

	respondJSON(w, http.StatusCreated, shapeBreakdown(rep))
}

// ListBreakdownReports returns all breakdown reports, optionally bounded by
// an inclusive submission_date range, newest first. Open to any caller so
// drivers can follow the status of their own submissions.
func (h *Handler) ListBreakdownReports(w http.ResponseWriter, r *http.Request) {
	dr, err := models.ParseDateRange(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var items []models.BreakdownReport
	if err := dr.Apply(h.DB.Model(&models.BreakdownReport{})).
		Order("submission_date DESC").
		Find(&items).Error; err != nil {
		h.serverError(w, "Internal Server Error", err)
		return
	}

	out := make([]breakdownOut, len(items))
	for i, item := range items {
		out[i] = shapeBreakdown(item)
	}
	respondJSON(w, http.StatusOK, map[string]any{"breakdown_reports": out})
}

type resolveReq struct {
	Status          string `json:"status"`
	ResolutionNotes string `json:"resolution_notes"`
}

// ResolveBreakdownReport transitions a report's status and attaches
// resolution notes. Status and notes are the only fields that ever change
// after creation. Manager-only (enforced in the route table).
func (h *Handler) ResolveBreakdownReport(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["breakdown_report_id"]

	var req resolveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Request body is required")
		return
	}

	if req.Status == "" {
		respondError(w, http.StatusBadRequest, "Status is required")
		return
	}
	if err := models.ValidateStatus(req.Status); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ResolutionNotes == "" {
		respondError(w, http.StatusBadRequest, "Resolution notes are required")
		return
	}

	id, err := uuid.Parse(reportID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Breakdown report not found")
		return
	}

	var rep models.BreakdownReport
	if err := h.DB.First(&rep, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(w, http.StatusNotFound, "Breakdown report not found")
			return
		}
		h.serverError(w, "Internal Server Error", err)
		return
	}

	updates := map[string]any{
		"status":           req.Status,
		"resolution_notes": req.ResolutionNotes,
	}
	if err := h.DB.Model(&rep).Updates(updates).Error; err != nil {
		h.serverError(w, "Failed to update breakdown report", err)
		return
	}

	var updated models.BreakdownReport
	if err := h.DB.First(&updated, "id = ?", id).Error; err != nil {
		h.serverError(w, "Failed to retrieve updated breakdown report", err)
		return
	}

	ident := middleware.GetIdentity(r)
	h.Log.WithField("report_id", reportID).
		Info(fmt.Sprintf("breakdown report resolved by manager %s", ident.ID))
	respondJSON(w, http.StatusOK, shapeBreakdown(updated))
}
