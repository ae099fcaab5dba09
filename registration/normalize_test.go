package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"digits only", "1234567890", "1234567890"},
		{"formatted document", "12.345.678-9", "123456789"},
		{"spaces and dashes", "12 3456-78 90", "1234567890"},
		{"letters mixed in", "RG 12a34b56c7", "1234567"},
		{"no digits at all", "abc-def", ""},
		{"unicode noise", "１２12.34", "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDigits(tt.input))
		})
	}
}

func TestFormatDocument(t *testing.T) {
	t.Run("nine digits get formatted", func(t *testing.T) {
		assert.Equal(t, "12.345.678-9", FormatDocument("123456789"))
	})

	t.Run("other lengths pass through", func(t *testing.T) {
		for _, digits := range []string{"", "1234567", "12345678", "1234567890", "123456789012"} {
			assert.Equal(t, digits, FormatDocument(digits))
		}
	})
}

func TestFormatPhone(t *testing.T) {
	t.Run("landline", func(t *testing.T) {
		assert.Equal(t, "(11) 3456-7890", FormatPhone("1134567890"))
	})

	t.Run("mobile", func(t *testing.T) {
		assert.Equal(t, "(11) 98765-4321", FormatPhone("11987654321"))
	})

	t.Run("other lengths pass through", func(t *testing.T) {
		for _, digits := range []string{"", "123", "123456789", "123456789012"} {
			assert.Equal(t, digits, FormatPhone(digits))
		}
	})
}

func TestNormalizationIdempotence(t *testing.T) {
	inputs := []string{
		"",
		"123456789",
		"12.345.678-9",
		"12345678 90",
		"abc123",
		"RG: 1.2.3.4.5.6.7",
	}

	for _, input := range inputs {
		digits := NormalizeDigits(input)
		assert.Equal(t, digits, NormalizeDigits(FormatDocument(digits)), "input %q", input)
	}
}
