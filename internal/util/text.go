package util

import "strings"

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Truncate bounds content to maxLen characters, always keeping the prefix.
func Truncate(content string, maxLen int) string {
	if len(content) <= maxLen {
		return content
	}
	return content[:maxLen]
}

// Grade maps a score percentage to a letter grade.
func Grade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}
