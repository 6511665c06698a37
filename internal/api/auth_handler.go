package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taskdeck/api/internal/api/shared"
	"github.com/taskdeck/api/internal/platform/logger"
	"github.com/taskdeck/api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	tokens  auth.TokenService
	enabled bool
	logger  *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// tokens may be nil when enabled is false.
func NewAuthHandler(tokens auth.TokenService, enabled bool, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		tokens:  tokens,
		enabled: enabled,
		logger:  logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles the POST /api/login endpoint.
//
// Any non-empty username/password pair is accepted: no user store exists and
// this check is a placeholder authentication policy, not a security boundary.
// The issued token is what gates subsequent requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if !h.enabled {
		HandleAPIError(w, r, auth.ErrAuthDisabled, "")
		return
	}

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Password) == "" {
		log.Debug("login rejected: empty credentials")
		HandleAPIError(w, r, auth.ErrEmptyCredentials, "")
		return
	}

	token, err := h.tokens.GenerateToken(r.Context(), req.Username)
	if err != nil {
		log.Error("failed to generate token", "error", err, "username", req.Username)
		HandleAPIError(w, r, err, "Failed to sign token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Token:          token,
		ExpiresInHours: int(auth.TokenLifetime / time.Hour),
	})
}
