// Package namematch scores candidate personnel records against a query
// name, blending BK-tree edit-distance hits with heuristics that favor
// real-world match quality (initialisms, substrings, an IGRA# embedded in
// the query) over raw edit distance alone.
package namematch

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Reason names one signal that contributed to a candidate's score, kept
// for auditing why a match was proposed.
type Reason string

const (
	ReasonEditDistance Reason = "edit_distance"
	ReasonInitialism   Reason = "initialism"
	ReasonSubstring    Reason = "substring"
	ReasonIDMatch      Reason = "id_match"
)

// DefaultMaxScore is T_max: candidates scoring above this are discarded.
const DefaultMaxScore = 8.0

// Normalize lowercases and collapses runs of whitespace, the canonical
// form every query and indexed name is compared in.
func Normalize(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	return strings.Join(fields, " ")
}

// Score computes the composite match score of a candidate record's name
// against a normalized query, lower is better. igraNumber is the
// candidate's IGRA# (may be empty); it contributes id_bonus when it
// appears verbatim in the query.
func Score(query, name, igraNumber string) (score float64, reasons []Reason) {
	base := float64(levenshtein.ComputeDistance(query, name))
	reasons = append(reasons, ReasonEditDistance)

	tokens := tokenJaccardPenalty(query, name)

	score = base + 3*tokens

	if isInitialism(query, name) {
		score -= 2
		reasons = append(reasons, ReasonInitialism)
	}

	if isSubstring(query, name) {
		score -= 1
		reasons = append(reasons, ReasonSubstring)
	}

	if igraNumber != "" && strings.Contains(query, igraNumber) {
		score -= 5
		reasons = append(reasons, ReasonIDMatch)
	}

	return score, reasons
}

// IsPerfectMatch reports whether a candidate scoring `score` against query
// is a perfect match: score at or below zero, and either name equals the
// query exactly or the candidate's IGRA# is present in the query.
func IsPerfectMatch(score float64, query, name, igraNumber string) bool {
	if score > 0 {
		return false
	}
	if name == query {
		return true
	}
	if igraNumber != "" && strings.Contains(query, igraNumber) {
		return true
	}
	return false
}

func tokenJaccardPenalty(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 0
	}

	union := make(map[string]bool, len(ta)+len(tb))
	for t := range ta {
		union[t] = true
	}
	for t := range tb {
		union[t] = true
	}

	symDiff := 0
	for t := range union {
		_, inA := ta[t]
		_, inB := tb[t]
		if inA != inB {
			symDiff++
		}
	}
	if len(union) == 0 {
		return 0
	}
	return float64(symDiff) / float64(len(union))
}

func tokenSet(s string) map[string]bool {
	out := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		out[tok] = true
	}
	return out
}

// isInitialism reports whether query, with whitespace removed, equals the
// concatenation of the first letters of name's tokens (e.g. "pg" against
// "pat garrett").
func isInitialism(query, name string) bool {
	compact := strings.ReplaceAll(query, " ", "")
	if compact == "" {
		return false
	}

	tokens := strings.Fields(name)
	if len(tokens) == 0 || len(compact) != len(tokens) {
		return false
	}

	for i, tok := range tokens {
		if tok == "" || rune(compact[i]) != rune(tok[0]) {
			return false
		}
	}
	return true
}

func isSubstring(a, b string) bool {
	if a == "" || b == "" || a == b {
		return false
	}
	return strings.Contains(b, a) || strings.Contains(a, b)
}
