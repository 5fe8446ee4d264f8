package textproc

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis marks truncated text.
const Ellipsis = "..."

// Truncate shortens text to at most maxLength characters, preferring sentence
// boundaries. The returned string, including the ellipsis marker, never
// exceeds maxLength. Text already within the limit is returned unchanged.
func Truncate(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	if maxLength <= len(Ellipsis) {
		return hardSlice(text, maxLength)
	}
	budget := maxLength - len(Ellipsis)

	var b strings.Builder
	for _, sent := range SplitSentences(text) {
		add := len(sent)
		if b.Len() > 0 {
			add++
		}
		if b.Len()+add > budget {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sent)
	}

	result := strings.TrimSpace(b.String())
	if result != "" && !endsTerminal(result) {
		if i := lastTerminal(result); i > 0 {
			result = result[:i+1]
		} else {
			result = ""
		}
	}
	if result == "" {
		// No sentence fits. Cut mid-sentence.
		result = strings.TrimSpace(hardSlice(text, budget))
	}
	return result + Ellipsis
}

// hardSlice cuts text to at most n bytes without splitting a rune.
func hardSlice(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}

var spaceRun = regexp.MustCompile(`\s+`)

// CleanBullet normalizes a bullet for display: trims and collapses
// whitespace, capitalizes the first letter, and ensures terminal punctuation.
// Empty input stays empty.
func CleanBullet(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = spaceRun.ReplaceAllString(text, " ")

	r, size := utf8.DecodeRuneInString(text)
	if unicode.IsLower(r) {
		text = string(unicode.ToUpper(r)) + text[size:]
	}
	if !endsTerminal(text) {
		text += "."
	}
	return text
}
