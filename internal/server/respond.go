package server

import (
	"encoding/json"
	"net/http"

	"github.com/nexisdev/mcp-cryptowallet-evm/internal/domain"
)

// errorBody is the JSON envelope written for every failed request.
type errorBody struct {
	Error struct {
		Type    domain.ErrorType `json:"type"`
		Message string           `json:"message"`
	} `json:"error"`
}

// WriteError maps err to its HTTP status and writes the structured error
// body. The error is also recorded in the request log fields.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	AddError(r.Context(), err)

	apiErr := domain.AsAPIError(err)

	var body errorBody
	body.Error.Type = apiErr.Type
	body.Error.Message = apiErr.Message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatusCode())
	json.NewEncoder(w).Encode(body)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}
