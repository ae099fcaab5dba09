package registration

import "strings"

// NormalizeDigits strips every non-digit character from raw. An empty or
// missing value normalizes to the empty string.
func NormalizeDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatDocument renders a 9 digit identity document as NN.NNN.NNN-N.
// Any other length is returned unchanged. Formatting is cosmetic only;
// identity comparison always happens on the raw digit string.
func FormatDocument(digits string) string {
	if len(digits) != 9 {
		return digits
	}
	return digits[:2] + "." + digits[2:5] + "." + digits[5:8] + "-" + digits[8:]
}

// FormatPhone renders a 10 digit landline as (DD) DDDD-DDDD and an 11
// digit mobile as (DD) DDDDD-DDDD. Any other length is returned unchanged.
func FormatPhone(digits string) string {
	switch len(digits) {
	case 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	case 11:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	default:
		return digits
	}
}
