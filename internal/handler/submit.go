package handler

import (
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/ownitpro/omgsystems/internal/repository"
	"github.com/ownitpro/omgsystems/internal/service"
)

type SubmitHandler struct {
	submitService *service.SubmitService
	submissions   repository.SubmissionStore
}

func NewSubmitHandler(submitService *service.SubmitService, submissions repository.SubmissionStore) *SubmitHandler {
	return &SubmitHandler{
		submitService: submitService,
		submissions:   submissions,
	}
}

// Submit records one uploaded file for the authenticated portal. Validation
// and authorization failures surface verbatim; anything unexpected becomes a
// generic 500 so internals never leak to portal clients.
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	portalID := r.PathValue("portalId")

	var req service.SubmitRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := h.submitService.Submit(portalID, req)
	if err != nil {
		h.writeSubmitError(w, portalID, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"submission": sub})
}

func (h *SubmitHandler) writeSubmitError(w http.ResponseWriter, portalID string, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		writeError(w, http.StatusBadRequest, verrs.Error())
	case errors.Is(err, service.ErrRoutingRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRequestPortalMismatch):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrStorageQuotaExceeded):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, repository.ErrPortalNotFound):
		writeError(w, http.StatusNotFound, "Portal not found")
	default:
		slog.Error("submission failed", "portal_id", portalID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to submit file")
	}
}

// ListSubmissions returns the authenticated portal's submission history,
// newest first.
func (h *SubmitHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	portalID := r.PathValue("portalId")

	subs, err := h.submissions.ByPortal(portalID)
	if err != nil {
		slog.Error("failed to list submissions", "portal_id", portalID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list submissions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}
