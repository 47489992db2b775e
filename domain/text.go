// domain/text.go
package domain

import "strings"

const (
	excerptRunes = 160

	// Average silent reading speed, words per minute.
	readingWPM = 200
)

// Excerpt returns a short plain-text preview of the content.
func Excerpt(content string) string {
	s := strings.Join(strings.Fields(content), " ")
	runes := []rune(s)
	if len(runes) <= excerptRunes {
		return s
	}
	return strings.TrimSpace(string(runes[:excerptRunes])) + "…"
}

// WordCount counts whitespace-separated words in the plain content.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// ReadingTime estimates minutes needed to read the content, minimum 1 for
// any non-empty text.
func ReadingTime(wordCount int) int {
	if wordCount == 0 {
		return 0
	}
	minutes := (wordCount + readingWPM - 1) / readingWPM
	return minutes
}
