package handler

import (
	"net/http"
	"strconv"

	"github.com/ownitpro/omgsystems/internal/service"
)

const defaultSearchResults = 5

type AssistantHandler struct {
	knowledge *service.KnowledgeService
}

func NewAssistantHandler(knowledge *service.KnowledgeService) *AssistantHandler {
	return &AssistantHandler{knowledge: knowledge}
}

// Search returns the most relevant knowledge chunks for a question from the
// site chatbot.
func (h *AssistantHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	k := defaultSearchResults
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 && parsed <= 20 {
			k = parsed
		}
	}

	results := h.knowledge.Search(query, k)
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
