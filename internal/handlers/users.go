package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quantlab/stockdash/internal/auth"
	"github.com/quantlab/stockdash/internal/common"
	"github.com/quantlab/stockdash/internal/interfaces"
	"github.com/quantlab/stockdash/internal/models"
)

// UserHandler handles favorites, dashboard configurations, profile, and
// settings for the authenticated user.
type UserHandler struct {
	logger *common.Logger
	users  interfaces.UserStorage
}

// NewUserHandler creates a user handler.
func NewUserHandler(logger *common.Logger, users interfaces.UserStorage) *UserHandler {
	return &UserHandler{
		logger: logger,
		users:  users,
	}
}

// currentUser loads the user record for the request's session claims.
func (h *UserHandler) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		WriteFail(w, http.StatusUnauthorized, "You are not logged in. Please log in to get access.")
		return nil, false
	}

	user, err := h.users.GetByID(r.Context(), claims.Sub)
	if err != nil {
		WriteFail(w, http.StatusUnauthorized, "The user belonging to this session no longer exists")
		return nil, false
	}
	return user, true
}

// HandleFavorites handles PATCH /api/users/favorites.
func (h *UserHandler) HandleFavorites(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPatch) {
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	// Pointer field distinguishes "absent" from "empty list".
	var req struct {
		FavoriteStocks *[]string `json:"favoriteStocks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FavoriteStocks == nil {
		WriteFail(w, http.StatusBadRequest, "Invalid favorite stocks data")
		return
	}

	user.FavoriteStocks = *req.FavoriteStocks
	if err := h.users.Update(r.Context(), user); err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update favorites")
		WriteFail(w, http.StatusBadRequest, "Failed to update favorite stocks")
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"user": user})
}

// HandleDashboardConfigs dispatches POST (create) and GET (list) on
// /api/users/dashboard-configs.
func (h *UserHandler) HandleDashboardConfigs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createDashboardConfig(w, r)
	case http.MethodGet, http.MethodHead:
		h.listDashboardConfigs(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *UserHandler) createDashboardConfig(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Name      string    `json:"name"`
		Stocks    *[]string `json:"stocks"`
		Timeframe string    `json:"timeframe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Name == "" || req.Stocks == nil || req.Timeframe == "" {
		WriteFail(w, http.StatusBadRequest, "Invalid dashboard configuration data")
		return
	}

	config := models.DashboardConfig{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Stocks:    *req.Stocks,
		Timeframe: req.Timeframe,
		CreatedAt: time.Now().UTC(),
	}

	user.DashboardConfigurations = append(user.DashboardConfigurations, config)
	if err := h.users.Update(r.Context(), user); err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to save dashboard config")
		WriteFail(w, http.StatusBadRequest, "Failed to save dashboard configuration")
		return
	}

	WriteSuccess(w, http.StatusCreated, map[string]interface{}{"config": config})
}

func (h *UserHandler) listDashboardConfigs(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	configs := user.DashboardConfigurations
	if configs == nil {
		configs = []models.DashboardConfig{}
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"configs": configs})
}

// HandleDashboardConfigByID handles DELETE /api/users/dashboard-configs/{configId}.
func (h *UserHandler) HandleDashboardConfigByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	configID := r.PathValue("configId")

	idx := -1
	for i, config := range user.DashboardConfigurations {
		if config.ID == configID {
			idx = i
			break
		}
	}
	if idx == -1 {
		WriteFail(w, http.StatusNotFound, "Dashboard configuration not found")
		return
	}

	user.DashboardConfigurations = append(
		user.DashboardConfigurations[:idx],
		user.DashboardConfigurations[idx+1:]...,
	)
	if err := h.users.Update(r.Context(), user); err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to delete dashboard config")
		WriteFail(w, http.StatusBadRequest, "Failed to delete dashboard configuration")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Dashboard configuration deleted successfully",
	})
}

// HandleProfile handles PATCH /api/users/profile.
func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPatch) {
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" && req.Email == "" {
		WriteFail(w, http.StatusBadRequest, "No data provided for update")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email != user.Email {
			existing, err := h.users.GetByEmail(r.Context(), email)
			if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
				h.logger.Error().Err(err).Msg("email lookup failed")
				WriteFail(w, http.StatusBadRequest, "Failed to update profile")
				return
			}
			if existing != nil {
				WriteFail(w, http.StatusBadRequest, "Email is already in use")
				return
			}
			user.Email = email
		}
	}

	if err := h.users.Update(r.Context(), user); err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update profile")
		WriteFail(w, http.StatusBadRequest, "Failed to update profile")
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"user": user})
}

// HandleChangePassword handles PATCH /api/users/change-password.
func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPatch) {
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		WriteFail(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		WriteFail(w, http.StatusBadRequest, "New passwords do not match")
		return
	}
	if len(req.NewPassword) < auth.MinPasswordLength {
		WriteFail(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		WriteFail(w, http.StatusUnauthorized, "Your current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.Error().Err(err).Msg("password hashing failed")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user.Password = hash
	user.Settings.Security.LastPasswordChange = time.Now().UTC()

	if err := h.users.Update(r.Context(), user); err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to change password")
		WriteFail(w, http.StatusBadRequest, "Failed to change password")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Password changed successfully",
	})
}

// HandleProfilePhoto handles PATCH /api/users/profile-photo.
func (h *UserHandler) HandleProfilePhoto(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPatch) {
		return
	}

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	// Accept either field name; older clients send profilePhoto.
	var req struct {
		PhotoData    *string `json:"photoData"`
		ProfilePhoto *string `json:"profilePhoto"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	photo := ""
	switch {
	case req.PhotoData != nil:
		photo = *req.PhotoData
	case req.ProfilePhoto != nil:
		photo = *req.ProfilePhoto
	}

	user.ProfilePhoto = photo
	if err := h.users.Update(r.Context(), user); err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update profile photo")
		WriteError(w, http.StatusBadRequest, "Failed to update profile photo")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Profile photo updated successfully",
		"data":    map[string]string{"profilePhoto": user.ProfilePhoto},
	})
}

// HandleSettings dispatches GET (fetch) and PATCH (update) on
// /api/users/settings.
func (h *UserHandler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.getSettings(w, r)
	case http.MethodPatch:
		h.updateSettings(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *UserHandler) getSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"settings": user.Settings})
}

func (h *UserHandler) updateSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Settings *models.Settings `json:"settings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Settings == nil {
		WriteFail(w, http.StatusBadRequest, "No settings data provided")
		return
	}

	user.Settings = *req.Settings
	if err := h.users.Update(r.Context(), user); err != nil {
		h.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update settings")
		WriteFail(w, http.StatusBadRequest, "Failed to update settings")
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"settings": user.Settings})
}
