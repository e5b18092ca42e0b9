package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"p9e.in/fleetops/mailer"
	"p9e.in/fleetops/storage"
)

// Handler holds the dependencies every route needs. Everything is injected
// at construction; there is no package-level state.
type Handler struct {
	DB       *gorm.DB
	Log      *logrus.Logger
	Pictures storage.PictureStore
	Alerts   *mailer.Alerts
}

func New(db *gorm.DB, log *logrus.Logger, pictures storage.PictureStore, alerts *mailer.Alerts) *Handler {
	return &Handler{DB: db, Log: log, Pictures: pictures, Alerts: alerts}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// serverError logs the real failure and sends a generic body; internal
// detail never reaches the client.
func (h *Handler) serverError(w http.ResponseWriter, msg string, err error) {
	h.Log.WithError(err).Error(msg)
	respondError(w, http.StatusInternalServerError, msg)
}
