package api

import (
	"strings"

	"rodeovalidate/pkg/domainerr"
)

// SearchRequest is the HTTP request body for POST /search.
type SearchRequest struct {
	PerformanceName string `json:"performance_name"`
}

// Validate implements httputil.Validatable.
func (r *SearchRequest) Validate() error {
	if r == nil {
		return domainerr.New(domainerr.CodeInvalidInput, "request body is required")
	}
	r.PerformanceName = strings.TrimSpace(r.PerformanceName)
	if r.PerformanceName == "" {
		return domainerr.New(domainerr.CodeInvalidInput, "performance_name is required")
	}
	return nil
}
