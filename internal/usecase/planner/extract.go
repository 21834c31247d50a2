package planner

import (
	"strings"
	"unicode"
)

// TaskHeadings returns the heading-like lines of raw model text: every
// trimmed non-empty line that contains a "##" marker or begins with a digit.
// The result is a secondary signal for fallback synthesis, never primary plan
// data.
func TaskHeadings(text string) []string {
	var headings []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, "##") || unicode.IsDigit(rune(line[0])) {
			headings = append(headings, line)
		}
	}
	return headings
}
