package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"p9e.in/fleetops/middleware"
	"p9e.in/fleetops/models"
)

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string `json:"token"`
}

// Login checks the legacy manager credentials and issues a signed session
// token. Unknown username and wrong password are deliberately
// indistinguishable in the response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	var user models.User
	err := h.DB.First(&user, "username = ?", req.Username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		h.Log.WithField("username", req.Username).Warn("login failed: user not found")
		respondError(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}
	if err != nil {
		h.serverError(w, "Internal Server Error", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.Log.WithField("username", req.Username).Warn("login failed: invalid password")
		respondError(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	if !user.IsManager() {
		respondError(w, http.StatusForbidden, "Access denied. Only managers can log in.")
		return
	}

	token, err := middleware.GenerateToken(user.ExternalID, user.Name, user.Role)
	if err != nil {
		h.serverError(w, "Internal Server Error", err)
		return
	}

	h.Log.WithField("username", user.Username).Info("manager logged in")
	respondJSON(w, http.StatusOK, loginResp{Token: token})
}
