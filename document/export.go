package document

import (
	"bytes"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/thiagobazzo/formulario-inscricao/registration"
)

// Export renders the registrations as a text table, one row per record,
// in the order given (callers pass the store's listing order). Column
// widths are sized to content by the table writer.
func Export(regs []registration.Registration) []byte {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"ID", "Full Name", "Age", "Phone", "Document", "Minor", "Guardian Name", "Guardian Document", "Registered At", "Status"})
	table.SetAutoWrapText(false)

	for _, reg := range regs {
		minor := "no"
		if reg.IsMinor {
			minor = "yes"
		}
		table.Append([]string{
			strconv.FormatInt(reg.ID, 10),
			reg.FullName,
			strconv.Itoa(reg.Age),
			reg.Phone,
			reg.Document,
			minor,
			deref(reg.GuardianName),
			deref(reg.GuardianDocument),
			reg.RegisteredAt.UTC().Format(time.RFC3339),
			reg.Status,
		})
	}

	table.Render()
	return buf.Bytes()
}
