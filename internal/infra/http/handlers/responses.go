package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rusingacademy/ecosystem-crm/internal/usecase"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps the usecase error taxonomy onto status codes: field
// validation 400, not-found 404, illegal status transition 409, everything
// else 500.
func writeError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case usecase.ValidationErrors:
		details := make(map[string]string, len(e))
		for _, ve := range e {
			details[ve.Field] = ve.Message
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: details})
	case *usecase.DomainError:
		status := http.StatusInternalServerError
		switch e.Code {
		case usecase.CodeNotFound:
			status = http.StatusNotFound
		case usecase.CodeInvalidTransition:
			status = http.StatusConflict
		case usecase.CodeValidation:
			status = http.StatusBadRequest
		}
		writeJSON(w, status, errorResponse{Error: e.Message})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
