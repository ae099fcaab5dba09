// Package document renders persisted registrations into the printable
// proof-of-registration receipt and the tabular export. Everything here
// is read-only over the records it is handed.
package document

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/thiagobazzo/formulario-inscricao/registration"
)

const (
	pageLeft  = 10.0
	pageRight = 200.0
)

// Receipt renders one registration as a single-page PDF with a fixed
// vertical field layout. Missing optional fields render empty, never as
// an error.
func Receipt(reg registration.Registration) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Tournament Registration Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Proof of registration - keep this document", "", 1, "C", false, 0, "")

	pdf.Ln(3)
	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(pageLeft, pdf.GetY(), pageRight, pdf.GetY())
	pdf.Ln(6)

	writeField(pdf, "Registration number", fmt.Sprintf("%06d", reg.ID))
	writeField(pdf, "Full name", reg.FullName)
	writeField(pdf, "Age", strconv.Itoa(reg.Age))
	writeField(pdf, "Identity document", reg.Document)
	writeField(pdf, "Phone", reg.Phone)
	writeField(pdf, "Registered at", reg.RegisteredAt.UTC().Format(time.RFC1123))
	writeField(pdf, "Status", reg.Status)

	if reg.IsMinor {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Guardian", "", 1, "L", false, 0, "")
		writeField(pdf, "Guardian name", deref(reg.GuardianName))
		writeField(pdf, "Guardian document", deref(reg.GuardianDocument))
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Present this receipt together with a photo ID at the event check-in.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt for registration %d: %w", reg.ID, err)
	}
	return buf.Bytes(), nil
}

func writeField(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(55, 8, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
