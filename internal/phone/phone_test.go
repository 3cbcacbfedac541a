package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"two digits", "11", "11"},
		{"one digit", "1", "1"},
		{"three digits", "112", "(11) 2"},
		{"seven digits", "1122233", "(11) 22233"},
		{"eight digits", "11222334", "(11) 22233-4"},
		{"eleven digits", "11222334455", "(11) 22233-4455"},
		{"thirteen digits drops extras", "1122233445566", "(11) 22233-4455"},
		{"pasted with punctuation", "+55 (11) 9 8765-4321", "(55) 11987-6543"},
		{"letters only", "abc", ""},
		{"non-ascii digits ignored", "١٢٣11", "11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}

func TestFormat_IdempotentOnMaskedInput(t *testing.T) {
	for _, raw := range []string{"", "1", "11", "112", "1122233", "11222334", "1122233445", "11222334455"} {
		once := Format(raw)
		assert.Equal(t, once, Format(once), "re-formatting %q should not change it", once)
		assert.Equal(t, Digits(raw), Digits(once), "digits must survive formatting")
	}
}

func TestFormat_FullMaskLength(t *testing.T) {
	assert.Len(t, Format("11222334455"), MaxLength)
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "11222334455", Digits("(11) 22233-4455"))
	assert.Equal(t, "", Digits("() -"))
}
