package core

// columns.go resolves logical field names against the actual column headers
// of an uploaded spreadsheet. Real uploads drift: "Correo cliente" becomes
// "CorreoCliente" or "CORREO  CLIENTE " depending on who exported the file,
// so matching runs in three tiers of decreasing strictness. Every candidate
// is tried at the stricter tier before any candidate is tried at a looser
// one, which keeps a sloppy substring hit from shadowing an exact match on
// a later candidate.

import "strings"

// NormalizeName canonicalizes a person or company name for identity
// matching across the two spreadsheets: trim + casefold.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeHeader canonicalizes a column header: trim, casefold, and
// collapse runs of double spaces to single spaces.
func NormalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// ResolveColumn returns the index of the first header matching any of the
// candidate logical names, most-preferred candidate first. Matching tiers:
//
//  1. exact match after normalization
//  2. match ignoring all whitespace
//  3. substring match in either direction (loosest; first hit wins)
//
// The second return is false when no tier produced a match.
func ResolveColumn(headers []string, candidates ...string) (int, bool) {
	norm := make([]string, len(headers))
	for i, h := range headers {
		norm[i] = NormalizeHeader(h)
	}

	// Tier 1: exact
	for _, cand := range candidates {
		c := NormalizeHeader(cand)
		for i, h := range norm {
			if h == c {
				return i, true
			}
		}
	}

	// Tier 2: whitespace-insensitive
	for _, cand := range candidates {
		c := stripSpaces(NormalizeHeader(cand))
		for i, h := range norm {
			if stripSpaces(h) == c {
				return i, true
			}
		}
	}

	// Tier 3: substring either direction. Empty headers would match any
	// candidate via Contains, so they are skipped outright.
	for _, cand := range candidates {
		c := NormalizeHeader(cand)
		if c == "" {
			continue
		}
		for i, h := range norm {
			if h == "" {
				continue
			}
			if strings.Contains(h, c) || strings.Contains(c, h) {
				return i, true
			}
		}
	}

	return 0, false
}
