package namematch

import "strings"

// SplitPartner splits a partner field of the form "PARTNER NAME | IGRA #"
// (or "IGRA # | PARTNER NAME") into its id and name components. Either
// component may be missing: a partner might be listed by name only, by
// IGRA# only, or not at all.
//
// The id is recognized as a contiguous run of ASCII digits anchored to
// one end of the string; everything else is treated as the name.
func SplitPartner(s string) (id string, name string) {
	trimmed := trimIgnored(s)
	if trimmed == "" {
		return "", ""
	}

	nameStart := indexFunc(trimmed, isNotDigit)
	nameEnd := lastIndexFunc(trimmed, isNotDigit)

	switch {
	case nameStart >= 0 && nameStart > 0:
		num, rest := trimmed[:nameStart], trimmed[nameStart:]
		return strings.TrimSpace(num), trimIgnored(rest)
	case nameEnd >= 0 && nameEnd < len(trimmed)-1:
		rest, num := trimmed[:nameEnd+1], trimmed[nameEnd+1:]
		return strings.TrimSpace(num), trimIgnored(rest)
	case nameStart < 0 && nameEnd < 0:
		return trimmed, ""
	default:
		return "", trimIgnored(trimmed)
	}
}

func isNotDigit(r rune) bool {
	return r < '0' || r > '9'
}

func isIgnored(r rune) bool {
	return r == '|' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func trimIgnored(s string) string {
	return strings.TrimFunc(s, isIgnored)
}

func indexFunc(s string, f func(rune) bool) int {
	for i, r := range s {
		if f(r) {
			return i
		}
	}
	return -1
}

func lastIndexFunc(s string, f func(rune) bool) int {
	idx := -1
	for i, r := range s {
		if f(r) {
			idx = i
		}
	}
	return idx
}
