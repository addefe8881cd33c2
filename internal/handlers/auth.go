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

// AuthHandler handles account registration, login, and session lifecycle.
type AuthHandler struct {
	logger     *common.Logger
	users      interfaces.UserStorage
	jwtSecret  []byte
	sessionTTL time.Duration
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(logger *common.Logger, users interfaces.UserStorage, jwtSecret []byte, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		logger:     logger,
		users:      users,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// HandleRegister handles POST /api/auth/register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		WriteFail(w, http.StatusBadRequest, "Please provide email and password")
		return
	}
	if len(req.Password) < auth.MinPasswordLength {
		WriteFail(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error().Err(err).Msg("password hashing failed")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Email:          req.Email,
		Password:       hash,
		Name:           req.Name,
		FavoriteStocks: []string{},
		Settings:       models.DefaultSettings(),
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, interfaces.ErrDuplicateEmail) {
			WriteFail(w, http.StatusBadRequest, "Email is already in use")
			return
		}
		h.logger.Error().Err(err).Msg("failed to create user")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.issueSession(w, http.StatusCreated, user)
}

// HandleLogin handles POST /api/auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteFail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		WriteFail(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.Password, req.Password) {
		WriteFail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	h.issueSession(w, http.StatusOK, user)
}

// HandleLogout handles POST /api/auth/logout.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	auth.ClearSessionCookie(w)
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Logged out successfully",
	})
}

// HandleMe handles GET /api/auth/me (auth required).
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		WriteFail(w, http.StatusUnauthorized, "You are not logged in. Please log in to get access.")
		return
	}

	user, err := h.users.GetByID(r.Context(), claims.Sub)
	if err != nil {
		WriteFail(w, http.StatusUnauthorized, "The user belonging to this session no longer exists")
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{"user": user})
}

// issueSession mints a session token, sets the cookie, and writes the user
// envelope.
func (h *AuthHandler) issueSession(w http.ResponseWriter, statusCode int, user *models.User) {
	token, err := auth.MintToken(h.jwtSecret, user.ID, user.Email, user.Name, h.sessionTTL)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to mint session token")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	auth.SetSessionCookie(w, token, h.sessionTTL)
	WriteJSON(w, statusCode, map[string]interface{}{
		"status": "success",
		"token":  token,
		"data":   map[string]interface{}{"user": user},
	})
}
