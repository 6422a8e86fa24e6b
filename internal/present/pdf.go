package present

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/cleanerboard/backend/internal/booking"
	"github.com/cleanerboard/backend/internal/config"
)

// PDF renders the schedule as an A4 document for printing or the email
// attachment.
func PDF(s booking.Schedule, flats []config.FlatConfig, title string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if s.IsEmpty() {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, EmptyWindowMessage, "", 1, "L", false, 0, "")
	} else {
		for _, d := range s.Days() {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 7, d.Time(time.UTC).Format("Monday 02 January 2006"), "", 1, "L", false, 0, "")

			pdf.SetFont("Helvetica", "", 11)
			for _, e := range DayEntries(s, d, flats) {
				line := fmt.Sprintf("- %s: %s", e.Name, pdfAction(e.Status))
				pdf.SetX(pdf.GetX() + 8)
				pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
			}
			pdf.Ln(3)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering schedule PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfAction maps a status to the printed action text. Core fonts are
// cp1252, so plain ASCII separators only.
func pdfAction(st booking.Status) string {
	switch st {
	case booking.StatusTurnover:
		return "Check-out -> Clean -> Check-in"
	case booking.StatusCheckOut:
		return "Check-out -> Clean"
	case booking.StatusCheckIn:
		return "Check-in"
	default:
		return ""
	}
}
