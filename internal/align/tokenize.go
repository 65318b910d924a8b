package align

import "strings"

const nbsp = ' '

// Tokenize splits s into a token stream: runs of regular whitespace
// collapse to a single space token, newlines and non-breaking spaces are
// preserved as their own individual tokens (never merged with neighboring
// whitespace), and everything else is split on word boundaries against
// those delimiters plus '='.
func Tokenize(s string) []string {
	runes := []rune(s)
	tokens := make([]string, 0, len(runes)/4+1)
	i := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c == '\n':
			tokens = append(tokens, "\n")
			i++
		case c == nbsp:
			tokens = append(tokens, string(nbsp))
			i++
		case c == '=':
			tokens = append(tokens, "=")
			i++
		case c == ' ' || c == '\t' || c == '\r':
			j := i
			for j < len(runes) && isPlainSpace(runes[j]) {
				j++
			}
			tokens = append(tokens, " ")
			i = j
		default:
			j := i
			for j < len(runes) && !isBoundary(runes[j]) {
				j++
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j
		}
	}
	return tokens
}

func isPlainSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\r' }

func isBoundary(r rune) bool {
	return r == '\n' || r == nbsp || r == '=' || isPlainSpace(r)
}

// Join reassembles a token slice back into text, which the renderer uses
// to produce the left/right strings shown for a diff span.
func Join(tokens []string) string {
	return strings.Join(tokens, "")
}
