package handlers

import (
	"net/http"

	"p9e.in/fleetops/middleware"
	"p9e.in/fleetops/models"
)

type stormUserOut struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
	Email  string `json:"email"`
}

func shapeStormUser(u *models.StormUser) stormUserOut {
	return stormUserOut{ID: u.ID, Name: u.Name, Handle: u.Handle, Email: u.Email}
}

// GetCurrentStormUser returns (creating on first sight) the caller's own
// profile record.
func (h *Handler) GetCurrentStormUser(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	profile, err := models.GetOrCreateStormUser(h.DB, user.ExternalID, user.Name)
	if err != nil {
		h.serverError(w, "Failed to retrieve user information", err)
		return
	}

	respondJSON(w, http.StatusOK, shapeStormUser(profile))
}

// GetStormUserByID returns (creating on first sight) the profile for the
// user_id query parameter, defaulting to the caller.
func (h *Handler) GetStormUserByID(w http.ResponseWriter, r *http.Request) {
	targetID := r.URL.Query().Get("user_id")
	if targetID == "" {
		targetID = middleware.GetIdentity(r).ID
	}

	profile, err := models.GetOrCreateStormUser(h.DB, targetID, "Unknown")
	if err != nil {
		h.serverError(w, "Failed to retrieve user information", err)
		return
	}

	respondJSON(w, http.StatusOK, shapeStormUser(profile))
}
