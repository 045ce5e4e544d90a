package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"geofacts/models"

	"github.com/jung-kurt/gofpdf"
)

// GenerateReportPDF renders the current search and the history as a PDF and
// returns the raw bytes. view may be empty.
func GenerateReportPDF(view models.ViewModel, history models.SearchHistory, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "GeoFacts", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Country profile, fun fact and today's flights", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(45, 7, tr(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(125, 7, tr(value), "", 1, "L", false, 0, "")
	}

	// ── Current Country ──────────────────────────────────────
	if c := view.Country; c != nil {
		sectionHeader("Country")
		row("Name", c.Name)
		row("Landmass", fmt.Sprintf("%.0f sq km", c.Landmass))
		row("Population", fmt.Sprintf("%d", c.Population))
		row("Languages", strings.Join(c.Languages, ", "))
		row("Flag", c.Flag)
		pdf.Ln(4)

		if view.FunFact != nil {
			sectionHeader("Fun Fact")
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(40, 40, 40)
			pdf.MultiCell(170, 5, tr(*view.FunFact), "", "L", false)
			pdf.Ln(4)
		}

		if view.Flights != nil {
			sectionHeader("Arrival Flights")
			flightRows(pdf, tr, view.Flights.ArrivalFlights, true)
			pdf.Ln(2)
			sectionHeader("Departure Flights")
			flightRows(pdf, tr, view.Flights.DepartureFlights, false)
			pdf.Ln(4)
		}
	}

	// ── History ──────────────────────────────────────────────
	sectionHeader(fmt.Sprintf("Search History (%d)", len(history)))
	if len(history) == 0 {
		row("", "No searches yet")
	}
	for i, p := range history {
		row(fmt.Sprintf("%d.", i+1), fmt.Sprintf("%s  (pop. %d)", p.Name, p.Population))
	}

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		tr("Generated by GeoFacts on "+generatedAt.UTC().Format("02 Jan 2006, 15:04 UTC")+" · Fun facts are machine generated"),
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func flightRows(pdf *gofpdf.Fpdf, tr func(string) string, flights []models.FlightRecord, arriving bool) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(40, 40, 40)
	if len(flights) == 0 {
		pdf.CellFormat(170, 6, "No flight data available", "", 1, "L", false, 0, "")
		return
	}
	for _, f := range flights {
		other, when := f.Arrival.Airport, f.Departure.Time
		prep := "to"
		if arriving {
			other, when, prep = f.Departure.Airport, f.Arrival.Time, "from"
		}
		line := fmt.Sprintf("%s %s %s %s (%s)", f.Airline, f.FlightNumber, prep, other, formatFlightTime(when))
		if t := terminalOf(f, arriving); t != "" {
			line += ", terminal " + t
		}
		pdf.CellFormat(170, 6, tr(line), "", 1, "L", false, 0, "")
	}
}

func terminalOf(f models.FlightRecord, arriving bool) string {
	t := f.Departure.Terminal
	if arriving {
		t = f.Arrival.Terminal
	}
	if t == nil {
		return ""
	}
	return *t
}

func formatFlightTime(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if s == "" {
			return "N/A"
		}
		return s
	}
	return t.Format("02 Jan 15:04")
}
