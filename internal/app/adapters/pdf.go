package adapters

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// RenderItineraryPDF lays the itinerary text out one line per cell on an A4
// page and returns the document bytes. Pure transform, no external calls.
func RenderItineraryPDF(text string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)

	for _, line := range strings.Split(text, "\n") {
		pdf.CellFormat(200, 10, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering itinerary pdf: %w", err)
	}
	return buf.Bytes(), nil
}
