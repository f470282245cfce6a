package booking

import "strings"

// NoteMaxLen caps the free-text note stored on a booking or donation.
const NoteMaxLen = 500

// SanitizeNote trims the input, truncates it to NoteMaxLen runes and
// strips angle brackets and control characters, so the stored note is
// safe to render as plain text.
func SanitizeNote(s string) string {
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > NoteMaxLen {
		runes = runes[:NoteMaxLen]
	}

	var sb strings.Builder
	sb.Grow(len(runes))
	for _, r := range runes {
		if r == '<' || r == '>' {
			continue
		}
		if r < 0x20 || r == 0x7F {
			continue
		}
		sb.WriteRune(r)
	}

	return sb.String()
}
