package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rusingacademy/ecosystem-crm/internal/usecase"
)

type FunnelHandler struct {
	Funnels *usecase.FunnelUseCase
}

func NewFunnelHandler(funnels *usecase.FunnelUseCase) *FunnelHandler {
	return &FunnelHandler{Funnels: funnels}
}

func (h *FunnelHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "all" {
		status = ""
	}
	funnels, err := h.Funnels.List(r.Context(), status, r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"funnels": funnels})
}

func (h *FunnelHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Funnels.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *FunnelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.FunnelInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	funnel, err := h.Funnels.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, funnel)
}

func (h *FunnelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch usecase.FunnelPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	funnel, err := h.Funnels.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, funnel)
}

func (h *FunnelHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	funnel, err := h.Funnels.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, funnel)
}

func (h *FunnelHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	funnel, err := h.Funnels.Duplicate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, funnel)
}

func (h *FunnelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Funnels.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
