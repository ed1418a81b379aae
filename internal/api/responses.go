package api

import (
	"rodeovalidate/internal/personnel"
	"rodeovalidate/internal/regdb"
)

// SearchResponse is the HTTP response body for POST /search.
type SearchResponse struct {
	BestMatches []personnel.Record `json:"best_matches"`
}

// FromCandidates converts ranked candidates to a SearchResponse, dropping
// the internal score and reasons the wire contract doesn't expose.
func FromCandidates(candidates []regdb.Candidate) SearchResponse {
	matches := make([]personnel.Record, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, c.Record)
	}
	return SearchResponse{BestMatches: matches}
}
