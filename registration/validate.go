package registration

import (
	"strconv"
	"strings"

	"github.com/thiagobazzo/formulario-inscricao/ptr"
)

const (
	MinAge   = 5
	MaxAge   = 100
	AdultAge = 18

	minDocumentDigits = 7
	maxDocumentDigits = 12
)

// Validate applies the eligibility rules in order and returns a
// registration ready to persist. The first failing rule wins, and every
// failure is a typed rejection; malformed input never panics.
func Validate(in Input) (Registration, error) {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return Registration{}, NewNameRequiredError()
	}

	age, err := strconv.Atoi(strings.TrimSpace(in.Age))
	if err != nil || age < MinAge || age > MaxAge {
		return Registration{}, NewInvalidAgeError()
	}

	phoneDigits := NormalizeDigits(in.Phone)
	if len(phoneDigits) != 10 && len(phoneDigits) != 11 {
		return Registration{}, NewInvalidPhoneError()
	}

	docDigits := NormalizeDigits(in.IdentityDocument)
	if len(docDigits) < minDocumentDigits || len(docDigits) > maxDocumentDigits {
		return Registration{}, NewInvalidDocumentError()
	}

	reg := Registration{
		FullName:       name,
		Age:            age,
		Phone:          FormatPhone(phoneDigits),
		Document:       FormatDocument(docDigits),
		DocumentDigits: docDigits,
		IsMinor:        age < AdultAge,
		Status:         StatusPending,
	}

	if !reg.IsMinor {
		// Guardian data never leaks onto adult registrations, no matter
		// what the caller supplied.
		return reg, nil
	}

	guardianName := strings.TrimSpace(in.GuardianName)
	if guardianName == "" {
		return Registration{}, NewGuardianNameRequiredError()
	}
	guardianDigits := NormalizeDigits(in.GuardianDocument)
	if len(guardianDigits) < minDocumentDigits || len(guardianDigits) > maxDocumentDigits {
		return Registration{}, NewInvalidGuardianDocumentError()
	}

	reg.GuardianName = ptr.String(guardianName)
	reg.GuardianDocument = ptr.String(FormatDocument(guardianDigits))

	return reg, nil
}
