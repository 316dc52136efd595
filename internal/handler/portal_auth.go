package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ownitpro/omgsystems/internal/service"
)

type PortalAuthHandler struct {
	authService *service.PortalAuthService
}

func NewPortalAuthHandler(authService *service.PortalAuthService) *PortalAuthHandler {
	return &PortalAuthHandler{authService: authService}
}

// Authenticate exchanges a portal access code for a session token.
func (h *PortalAuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	portalID := r.PathValue("portalId")

	var req struct {
		AccessCode string `json:"accessCode"`
	}
	err := decodeJSON(r, &req)
	if err != nil || req.AccessCode == "" {
		writeError(w, http.StatusBadRequest, "Access code is required")
		return
	}

	token, err := h.authService.Authenticate(portalID, req.AccessCode)
	if errors.Is(err, service.ErrInvalidAccessCode) {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if err != nil {
		slog.Error("portal authentication failed", "portal_id", portalID, "error", err)
		writeError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}
