package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rusingacademy/ecosystem-crm/internal/infra/http/middleware"
	"github.com/rusingacademy/ecosystem-crm/internal/usecase"
)

type AutomationHandler struct {
	Automations *usecase.AutomationUseCase
	Producer    usecase.TriggerProducerInterface
}

func NewAutomationHandler(automations *usecase.AutomationUseCase, producer usecase.TriggerProducerInterface) *AutomationHandler {
	return &AutomationHandler{Automations: automations, Producer: producer}
}

func (h *AutomationHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "all" {
		status = ""
	}
	automations, err := h.Automations.List(r.Context(), status, r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"automations": automations})
}

func (h *AutomationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Automations.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AutomationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.AutomationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	automation, err := h.Automations.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, automation)
}

func (h *AutomationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch usecase.AutomationPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	automation, err := h.Automations.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, automation)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *AutomationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	automation, err := h.Automations.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, automation)
}

func (h *AutomationHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	automation, err := h.Automations.Duplicate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, automation)
}

func (h *AutomationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Automations.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Trigger publishes a trigger event for the run consumer. Used by the other
// platform services and by the manual "run now" button.
func (h *AutomationHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	var event usecase.TriggerEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}
	if event.TriggerType == "" || event.LeadID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "trigger_type and lead_id are required"})
		return
	}

	if err := h.Producer.PublishTrigger(r.Context(), event); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to publish trigger"})
		return
	}
	middleware.RecordAutomationTrigger(event.TriggerType)
	writeJSON(w, http.StatusAccepted, map[string]any{"queued": true})
}
