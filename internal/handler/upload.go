package handler

import (
	"log/slog"
	"net/http"

	"github.com/ownitpro/omgsystems/internal/service"
	"github.com/ownitpro/omgsystems/internal/storage"
	"github.com/ownitpro/omgsystems/internal/validation"
)

type UploadHandler struct {
	storage        storage.Storage
	maxUploadBytes int64
}

func NewUploadHandler(store storage.Storage, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		storage:        store,
		maxUploadBytes: maxUploadBytes,
	}
}

// Presign hands the client a pre-authorized PUT URL so file bytes go
// straight to object storage. The submit endpoint later receives only
// metadata plus the returned key.
func (h *UploadHandler) Presign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName    string `json:"fileName"`
		ContentType string `json:"contentType"`
		Bytes       int64  `json:"bytes"`
	}
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = validation.ValidateFileName(req.FileName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Bytes > 0 {
		err = validation.ValidateFileSize(req.Bytes, h.maxUploadBytes)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = service.DetectMimeType(req.FileName)
	}

	url, key, err := h.storage.PresignUpload(req.FileName, contentType)
	if err != nil {
		slog.Error("failed to presign upload", "file_name", req.FileName, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to prepare upload")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"url":    url,
		"key":    key,
		"bucket": h.storage.Bucket(),
	})
}
