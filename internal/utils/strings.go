package utils

import "strings"

// NormalizeSeats trims, uppercases and de-blanks a requested seat list.
// Duplicates are kept so the validator can reject them explicitly.
func NormalizeSeats(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SplitSeatList splits comma/semicolon separated seat strings into cleaned slices.
func SplitSeatList(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	return NormalizeSeats(parts)
}
