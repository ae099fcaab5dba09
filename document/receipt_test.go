package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiagobazzo/formulario-inscricao/ptr"
	"github.com/thiagobazzo/formulario-inscricao/registration"
)

func sampleRegistration() registration.Registration {
	return registration.Registration{
		ID:             1,
		FullName:       "Ana Silva",
		Age:            25,
		Phone:          "(11) 98765-4321",
		Document:       "12.345.678-9",
		DocumentDigits: "123456789",
		RegisteredAt:   time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
		Status:         registration.StatusPending,
	}
}

func TestReceipt(t *testing.T) {
	t.Run("renders a pdf for an adult", func(t *testing.T) {
		out, err := Receipt(sampleRegistration())
		require.NoError(t, err)
		require.NotEmpty(t, out)
		assert.Equal(t, "%PDF", string(out[:4]))
	})

	t.Run("minor gets the guardian block", func(t *testing.T) {
		adult, err := Receipt(sampleRegistration())
		require.NoError(t, err)

		reg := sampleRegistration()
		reg.Age = 16
		reg.IsMinor = true
		reg.GuardianName = ptr.String("Clara Silva")
		reg.GuardianDocument = ptr.String("98.765.432-1")

		minor, err := Receipt(reg)
		require.NoError(t, err)
		assert.Greater(t, len(minor), len(adult))
	})

	t.Run("missing optional fields render empty, not as an error", func(t *testing.T) {
		reg := sampleRegistration()
		reg.Age = 16
		reg.IsMinor = true
		reg.GuardianName = nil
		reg.GuardianDocument = nil

		out, err := Receipt(reg)
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	})
}
