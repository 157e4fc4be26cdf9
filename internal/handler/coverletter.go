package handler

import (
	"net/http"
	"strings"

	"github.com/careerai/careerai-go/internal/genai"
	"github.com/careerai/careerai-go/internal/model"
)

// CoverLetterHandler handles AI cover-letter requests.
type CoverLetterHandler struct {
	generator *genai.Generator
}

// NewCoverLetterHandler creates a CoverLetterHandler.
func NewCoverLetterHandler(generator *genai.Generator) *CoverLetterHandler {
	return &CoverLetterHandler{generator: generator}
}

// HandleGenerate handles POST /api/ai/cover-letter.
func (h *CoverLetterHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req genai.CoverLetterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.JobDescription) == "" {
		writeError(w, http.StatusBadRequest, "job description is required")
		return
	}

	result := h.generator.GenerateCoverLetter(r.Context(), req)
	writeJSON(w, http.StatusOK, model.OK(result, "Cover letter generated"))
}
