package useradmin

import (
	"net/mail"
	"strings"
	"unicode"
)

// Sanitizer normalizes raw request strings into constrained forms. All
// methods are pure; they never touch the value they are given.
type Sanitizer struct{}

// NewSanitizer creates a Sanitizer
func NewSanitizer() Sanitizer {
	return Sanitizer{}
}

// PageName reduces s to a page-name-safe identifier: lower-cased ASCII
// letters, digits, '-' and '_'. Spaces collapse to single dashes, anything
// else is dropped. The result is truncated to maxLen runes, maxLen <= 0
// means unbounded.
func (Sanitizer) PageName(s string, maxLen int) string {
	s = strings.TrimSpace(strings.ToLower(s))

	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastDash = false
		case r == '-', unicode.IsSpace(r):
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	out := strings.TrimRight(b.String(), "-")
	if maxLen > 0 && len(out) > maxLen {
		out = out[:maxLen]
	}
	return out
}

// Email returns s trimmed if it parses as an RFC 5322 address, or the
// empty string otherwise.
func (Sanitizer) Email(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return ""
	}
	return addr.Address
}

// Text strips control characters from s, collapses surrounding whitespace
// and truncates to maxLen runes. maxLen <= 0 means unbounded.
func (Sanitizer) Text(s string, maxLen int) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}

	out := strings.TrimSpace(b.String())
	if maxLen > 0 {
		runes := []rune(out)
		if len(runes) > maxLen {
			out = string(runes[:maxLen])
		}
	}
	return out
}
