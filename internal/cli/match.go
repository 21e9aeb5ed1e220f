// Package cli provides CLI infrastructure for barkly.
package cli

import (
	"fmt"
	"strings"
)

// MatchChoice resolves input to one of choices. An exact match wins;
// otherwise input must be a prefix of exactly one choice. Matching ignores
// case. kind names the value in error messages, e.g. "mock mode".
func MatchChoice(kind, input string, choices []string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", fmt.Errorf("empty %s (choose from %s)", kind, strings.Join(choices, ", "))
	}

	var matches []string
	for _, c := range choices {
		lc := strings.ToLower(c)
		if lc == input {
			return c, nil
		}
		if strings.HasPrefix(lc, input) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown %s %q (choose from %s)", kind, input, strings.Join(choices, ", "))
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous %s %q matches: %s", kind, input, strings.Join(matches, ", "))
	}
}
