// Package textutil provides text cleanup helpers shared by the extraction
// and matching components. All functions are pure and total.
package textutil

import "strings"

// Normalize cleans raw extracted text: CRLF/CR are collapsed to LF,
// non-printable characters (except newline) are stripped and runs of two or
// more spaces become a single space. Normalize is idempotent.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || (r >= 0x20 && r <= 0x7e) {
			b.WriteRune(r)
		}
	}
	s = b.String()

	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}

	return strings.TrimSpace(s)
}

// Lines splits normalized text into trimmed, non-empty lines.
func Lines(s string) []string {
	var lines []string
	for _, line := range strings.Split(Normalize(s), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Truncate bounds s to at most n bytes. Inputs here are ASCII after
// Normalize, so byte truncation is safe.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	return s[:n]
}
