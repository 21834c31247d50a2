package planner

import (
	"fmt"
	"strings"
	"unicode"
)

// normalizeLiteral rewrites a Python-style literal expression into JSON so it
// can go through the standard decoder: single-quoted strings become
// double-quoted, True/False/None become true/false/null, and trailing commas
// before a closing bracket are dropped. Structure is otherwise preserved.
func normalizeLiteral(text string) (string, error) {
	var out strings.Builder
	out.Grow(len(text))

	runes := []rune(text)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '"':
			end, err := copyString(&out, runes, i, '"')
			if err != nil {
				return "", err
			}
			i = end
		case r == '\'':
			end, err := copyString(&out, runes, i, '\'')
			if err != nil {
				return "", err
			}
			i = end
		case r == ',':
			// Drop the comma when the next significant rune closes a
			// container.
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			if j < len(runes) && (runes[j] == '}' || runes[j] == ']') {
				i++
				continue
			}
			out.WriteRune(r)
			i++
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			word := string(runes[start:i])
			switch word {
			case "True":
				out.WriteString("true")
			case "False":
				out.WriteString("false")
			case "None":
				out.WriteString("null")
			default:
				out.WriteString(word)
			}
		default:
			out.WriteRune(r)
			i++
		}
	}
	return out.String(), nil
}

// copyString writes the quoted string starting at start (whose delimiter is
// quote) as a JSON double-quoted string and returns the index just past the
// closing delimiter.
func copyString(out *strings.Builder, runes []rune, start int, quote rune) (int, error) {
	out.WriteByte('"')
	i := start + 1
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes):
			next := runes[i+1]
			if next == '\'' {
				// JSON has no \' escape.
				out.WriteRune('\'')
			} else {
				out.WriteRune('\\')
				out.WriteRune(next)
			}
			i += 2
		case r == quote:
			out.WriteByte('"')
			return i + 1, nil
		case r == '"':
			out.WriteString(`\"`)
			i++
		case r == '\n':
			out.WriteString(`\n`)
			i++
		case r == '\t':
			out.WriteString(`\t`)
			i++
		default:
			out.WriteRune(r)
			i++
		}
	}
	return 0, fmt.Errorf("unterminated string literal")
}
