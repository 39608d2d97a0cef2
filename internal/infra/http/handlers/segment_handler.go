package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rusingacademy/ecosystem-crm/internal/infra/http/middleware"
	"github.com/rusingacademy/ecosystem-crm/internal/usecase"
)

type SegmentHandler struct {
	Segments *usecase.SegmentUseCase
}

func NewSegmentHandler(segments *usecase.SegmentUseCase) *SegmentHandler {
	return &SegmentHandler{Segments: segments}
}

func (h *SegmentHandler) List(w http.ResponseWriter, r *http.Request) {
	segments, err := h.Segments.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"segments": segments})
}

// Preview runs the rules against a fresh lead snapshot without persisting
// anything. The editor calls this on every rule change.
func (h *SegmentHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var input usecase.PreviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	output, err := h.Segments.Preview(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	middleware.RecordSegmentPreview()
	writeJSON(w, http.StatusOK, output)
}

func (h *SegmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.SegmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	seg, err := h.Segments.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, seg)
}

func (h *SegmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch usecase.SegmentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	seg, err := h.Segments.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seg)
}

func (h *SegmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Segments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SegmentHandler) Recount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	count, err := h.Segments.Recount(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "lead_count": count})
}

func (h *SegmentHandler) Count(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	count, err := h.Segments.CachedCount(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "lead_count": count})
}
