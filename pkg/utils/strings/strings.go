package strings

import (
	"strings"
)

// `TrimPrefixAll` returns string `s` without provided `prefix`es.
// If `prefix`es are repeated, all of them are removed.
//
// example:
//
//	TrimPrefixAll("aaabbbccc", "aaab")  // -> "bbccc"
//	TrimPrefixAll("aaabbbccc", "a")     // -> "bbbccc"
//	TrimPrefixAll("aaabbccc", "x")      // -> "aaabbbccc"
func TrimPrefixAll(s, prefix string) string {
	if prefix == "" {
		return s
	}
	for strings.HasPrefix(s, prefix) {
		s = s[len(prefix):]
	}
	return s
}

// supply suffix if text has not.
func SupplySuffix(text, suffix string) string {
	if strings.HasSuffix(text, suffix) {
		return text
	}
	return text + suffix
}

var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// ReplaceLineBreaks replaces each of '\n' and '\r' in s with a space.
//
// "\r\n" becomes two spaces.
func ReplaceLineBreaks(s string) string {
	return lineBreaks.Replace(s)
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Ellipsis shortens s to at most max runes, replacing the middle with "...".
func Ellipsis(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 5 {
		return s
	}
	head := (max - 3) / 2
	tail := max - 3 - head
	return string(r[:head]) + "..." + string(r[len(r)-tail:])
}
