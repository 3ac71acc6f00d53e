package rest

import (
	"encoding/json"
	"net/http"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

// Error codes carried in the "code" field of error responses.
const (
	CodeValidation  = "VALIDATION"
	CodeNotFound    = "NOT_FOUND"
	CodeFormat      = "FORMAT"
	CodePersistence = "PERSISTENCE"
	CodeInternal    = "INTERNAL"
)

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}
