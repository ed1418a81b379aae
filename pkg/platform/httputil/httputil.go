// Package httputil centralizes domain error translation to HTTP responses
// for the validation API.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"rodeovalidate/pkg/domainerr"
)

// WriteJSON writes response as a JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Errors after WriteHeader cannot change the status code, so we ignore encoding errors.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError translates a domainerr.Error into an HTTP status and JSON
// error body. Non-domain errors are reported as internal errors without
// leaking their message.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *domainerr.Error
	if errors.As(err, &domainErr) {
		status := DomainCodeToHTTPStatus(domainErr.Code)
		code := DomainCodeToHTTPCode(domainErr.Code)
		response := map[string]string{"error": code}
		if code != "internal_error" && domainErr.Message != "" {
			response["error_description"] = domainErr.Message
		}
		WriteJSON(w, status, response)
		return
	}

	WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error": DomainCodeToHTTPCode(domainerr.CodeInternal),
	})
}

// DomainCodeToHTTPStatus translates a domain error code to an HTTP status.
func DomainCodeToHTTPStatus(code domainerr.Code) int {
	switch code {
	case domainerr.CodeNotFound:
		return http.StatusNotFound
	case domainerr.CodeInvalidInput:
		return http.StatusBadRequest
	case domainerr.CodeMalformedDBF, domainerr.CodeSchemaMismatch:
		return http.StatusUnprocessableEntity
	case domainerr.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// DomainCodeToHTTPCode translates a domain error code to the JSON "error"
// field value returned to callers.
func DomainCodeToHTTPCode(code domainerr.Code) string {
	switch code {
	case domainerr.CodeNotFound:
		return "not_found"
	case domainerr.CodeInvalidInput:
		return "invalid_input"
	case domainerr.CodeMalformedDBF:
		return "malformed_dbf"
	case domainerr.CodeSchemaMismatch:
		return "schema_mismatch"
	case domainerr.CodeInternal:
		return "internal_error"
	default:
		return "internal_error"
	}
}
