package registration

import (
	"context"
	"time"
)

// StatusPending is the status every registration is created with. Nothing
// in the intake pipeline transitions it; triage happens outside the system.
const StatusPending = "pending"

type Repository interface {
	CreateRegistration(ctx context.Context, reg Registration) (Registration, error)
	GetRegistration(ctx context.Context, id int64) (Registration, error)
	GetAllRegistrations(ctx context.Context) ([]Registration, error)
	CountRegistrations(ctx context.Context) (Stats, error)
}

// Registration is a persisted competitor signup. Phone and Document hold
// the display-formatted forms; DocumentDigits is the digit-only canonical
// form and is the only valid key for identity comparison.
type Registration struct {
	ID               int64
	FullName         string
	Age              int
	Phone            string
	Document         string
	DocumentDigits   string
	IsMinor          bool
	GuardianName     *string
	GuardianDocument *string
	RegisteredAt     time.Time
	Status           string
}

// Input is a raw signup submission as it arrives from the caller, before
// any normalization. Age stays a string so that a non-numeric value is a
// rejection, not a decode failure.
type Input struct {
	FullName         string
	Age              string
	Phone            string
	IdentityDocument string
	GuardianName     string
	GuardianDocument string
}

type Stats struct {
	Total  int
	Minors int
	Adults int
}
