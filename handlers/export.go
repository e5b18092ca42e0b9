package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"p9e.in/fleetops/models"
)

const (
	reportTypeBreakdown    = "breakdown"
	reportTypeBreakRequest = "break_request"

	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

var breakdownColumns = []string{
	"report_details",
	"user_id",
	"truck_registration_number",
	"breakdown_location",
	"issue_description",
	"submission_date",
	"status",
	"notes",
	"resolution_notes",
}

var breakRequestColumns = []string{
	"request_details",
	"user_id",
	"break_type",
	"break_duration",
	"submission_date",
	"notes",
}

func breakdownRows(reports []models.BreakdownReport) [][]string {
	rows := make([][]string, len(reports))
	for i, rep := range reports {
		rows[i] = []string{
			rep.ID.String(),
			rep.UserID,
			rep.TruckRegistrationNumber,
			rep.BreakdownLocation,
			rep.IssueDescription,
			strconv.FormatInt(rep.SubmissionDate, 10),
			rep.Status,
			rep.Notes,
			rep.ResolutionNotes,
		}
	}
	return rows
}

func breakRequestRows(requests []models.BreakRequest) [][]string {
	rows := make([][]string, len(requests))
	for i, req := range requests {
		rows[i] = []string{
			req.ID.String(),
			req.UserID,
			req.BreakType,
			strconv.Itoa(req.BreakDuration),
			strconv.FormatInt(req.SubmissionDate, 10),
			req.Notes,
		}
	}
	return rows
}

func buildCSV(columns []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(columns); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

func buildXLSX(columns []string, rows [][]string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &columns); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f.WriteToBuffer()
}

// DownloadReports exports either collection, filtered by the same inclusive
// date range as the list endpoints. The default CSV form is returned
// base64-encoded as a JSON string body; format=xlsx streams a spreadsheet
// attachment instead.
func (h *Handler) DownloadReports(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	reportType := query.Get("report_type")
	if reportType == "" {
		respondError(w, http.StatusBadRequest, "report_type is required")
		return
	}
	if reportType != reportTypeBreakdown && reportType != reportTypeBreakRequest {
		respondError(w, http.StatusBadRequest, `report_type must be either "breakdown" or "break_request"`)
		return
	}

	format := query.Get("format")
	if format == "" {
		format = formatCSV
	}
	if format != formatCSV && format != formatXLSX {
		respondError(w, http.StatusBadRequest, `format must be either "csv" or "xlsx"`)
		return
	}

	dr, err := models.ParseDateRange(query)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var columns []string
	var rows [][]string
	switch reportType {
	case reportTypeBreakdown:
		var reports []models.BreakdownReport
		if err := dr.Apply(h.DB.Model(&models.BreakdownReport{})).
			Order("submission_date DESC").Find(&reports).Error; err != nil {
			h.serverError(w, "Internal Server Error", err)
			return
		}
		columns, rows = breakdownColumns, breakdownRows(reports)
	case reportTypeBreakRequest:
		var requests []models.BreakRequest
		if err := dr.Apply(h.DB.Model(&models.BreakRequest{})).
			Order("submission_date DESC").Find(&requests).Error; err != nil {
			h.serverError(w, "Internal Server Error", err)
			return
		}
		columns, rows = breakRequestColumns, breakRequestRows(requests)
	}

	if format == formatXLSX {
		buf, err := buildXLSX(columns, rows)
		if err != nil {
			h.serverError(w, "Failed to generate export", err)
			return
		}
		filename := fmt.Sprintf("%s_reports_%s.xlsx", reportType, time.Now().Format("20060102_150405"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
		return
	}

	data, err := buildCSV(columns, rows)
	if err != nil {
		h.serverError(w, "Failed to generate export", err)
		return
	}

	h.Log.WithField("report_type", reportType).
		Info(fmt.Sprintf("exported %d records", len(rows)))
	respondJSON(w, http.StatusOK, base64.StdEncoding.EncodeToString(data))
}
