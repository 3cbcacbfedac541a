// Package phone formats Brazilian phone numbers as the user types them.
package phone

import (
	"strings"
	"unicode"
)

const (
	// MaxDigits is the number of digits the mask accepts; extras are dropped.
	MaxDigits = 11
	// MaxLength is the display length of a fully masked number, "(DD) DDDDD-DDDD".
	MaxLength = 15
)

// Digits strips every non-digit character from raw.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Format maps raw input to the masked display string:
//
//	0-2 digits   "DD"
//	3-7 digits   "(DD) DDDDD"
//	8-11 digits  "(DD) DDDDD-DDDD"
//
// Digits past the eleventh are ignored. Format never fails and is idempotent
// on its own output.
func Format(raw string) string {
	d := Digits(raw)
	if len(d) > MaxDigits {
		d = d[:MaxDigits]
	}

	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 7:
		return "(" + d[:2] + ") " + d[2:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}
