package util

import (
	"strings"
	"unicode"
)

// SplitLines splits newline-delimited text into trimmed, non-empty lines.
// Both LF and CRLF line endings are accepted.
func SplitLines(s string) []string {
	var result []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}

// StripDigits removes every decimal digit from s.
// "Lobby-AP12" -> "Lobby-AP"
func StripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, s)
}

// DedupAdjacent collapses runs of consecutive equal elements.
// Non-adjacent duplicates are kept: [X X Y X] -> [X Y X].
func DedupAdjacent[T comparable](items []T) []T {
	if len(items) == 0 {
		return items
	}
	result := []T{items[0]}
	for i := 1; i < len(items); i++ {
		if items[i] != items[i-1] {
			result = append(result, items[i])
		}
	}
	return result
}

// SanitizeName replaces characters that are unsafe in file names with hyphens.
func SanitizeName(name string) string {
	result := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_' || c == '.' {
			result = append(result, c)
		} else {
			result = append(result, '-')
		}
	}
	return string(result)
}
