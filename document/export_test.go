package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thiagobazzo/formulario-inscricao/ptr"
	"github.com/thiagobazzo/formulario-inscricao/registration"
)

func TestExport(t *testing.T) {
	t.Run("one row per registration in the order given", func(t *testing.T) {
		first := sampleRegistration()

		second := sampleRegistration()
		second.ID = 2
		second.FullName = "Pedro Lima"
		second.Age = 16
		second.IsMinor = true
		second.Document = "98.765.432-1"
		second.GuardianName = ptr.String("Clara Lima")
		second.GuardianDocument = ptr.String("11.222.333-4")

		out := string(Export([]registration.Registration{first, second}))

		assert.Contains(t, out, "Full Name")
		assert.Contains(t, out, "Ana Silva")
		assert.Contains(t, out, "Pedro Lima")
		assert.Contains(t, out, "Clara Lima")
		assert.Contains(t, out, "12.345.678-9")

		require.Less(t, strings.Index(out, "Ana Silva"), strings.Index(out, "Pedro Lima"))
	})

	t.Run("minor column reads yes or no", func(t *testing.T) {
		minor := sampleRegistration()
		minor.IsMinor = true
		minor.GuardianName = ptr.String("Clara Silva")
		minor.GuardianDocument = ptr.String("98.765.432-1")

		out := string(Export([]registration.Registration{minor}))
		assert.Contains(t, out, "yes")
	})

	t.Run("empty listing still renders the header", func(t *testing.T) {
		out := string(Export(nil))
		assert.Contains(t, out, "Full Name")
	})
}
