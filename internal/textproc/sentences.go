// Package textproc provides deterministic text shaping for slide content:
// sentence-aware truncation, bullet cleanup, and extractive summarization.
package textproc

import "strings"

// SplitSentences does basic sentence splitting, keeping terminal punctuation
// attached. A run of '.', '!' or '?' followed by whitespace (or end of text)
// closes a sentence.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if !isTerminal(r) {
			continue
		}
		// Consume the whole punctuation run before deciding.
		if i+1 < len(runes) && isTerminal(runes[i+1]) {
			continue
		}
		if i+1 == len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
			s := strings.TrimSpace(current.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// endsTerminal reports whether s ends with terminal punctuation.
func endsTerminal(s string) bool {
	if s == "" {
		return false
	}
	return isTerminal(rune(s[len(s)-1]))
}

// lastTerminal returns the byte index of the last terminal punctuation in s,
// or -1.
func lastTerminal(s string) int {
	return strings.LastIndexAny(s, ".!?")
}
