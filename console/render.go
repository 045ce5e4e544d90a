// Package console renders search results for the terminal.
package console

import (
	"fmt"
	"strings"
	"time"

	"geofacts/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	primary = lipgloss.Color("#0D1825")
	accent  = lipgloss.Color("#D4A843")
	muted   = lipgloss.Color("#6C7086")
	danger  = lipgloss.Color("#F38BA8")
)

type Styles struct {
	Header  lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Fact    lipgloss.Style
	Error   lipgloss.Style
	Divider lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(muted).
			Width(12),

		Value: lipgloss.NewStyle().
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(muted),

		Fact: lipgloss.NewStyle().
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(accent),

		Error: lipgloss.NewStyle().
			Foreground(danger).
			Bold(true),

		Divider: lipgloss.NewStyle().
			Foreground(muted),
	}
}

// Renderer turns models into terminal text.
type Renderer struct {
	styles Styles
}

func NewRenderer() *Renderer {
	return &Renderer{styles: DefaultStyles()}
}

func (r *Renderer) row(label, value string) string {
	return r.styles.Label.Render(label) + " " + r.styles.Value.Render(value)
}

// View renders a country, its fun fact and its flights.
func (r *Renderer) View(v models.ViewModel) string {
	s := r.styles
	if v.Country == nil {
		return s.Muted.Render("No country selected.")
	}
	c := v.Country

	var b strings.Builder
	b.WriteString(s.Header.Render(c.Name))
	b.WriteString("\n\n")
	b.WriteString(r.row("Landmass", fmt.Sprintf("%.0f sq km", c.Landmass)) + "\n")
	b.WriteString(r.row("Population", fmt.Sprintf("%d", c.Population)) + "\n")
	b.WriteString(r.row("Languages", strings.Join(c.Languages, ", ")) + "\n")
	b.WriteString(r.row("Flag", c.Flag) + "\n")

	if v.FunFact != nil {
		b.WriteString("\n" + s.Title.Render("Fun Fact") + "\n")
		b.WriteString(s.Fact.Render(*v.FunFact) + "\n")
	}

	if v.Flights != nil {
		b.WriteString("\n" + s.Title.Render("Arrival Flights") + "\n")
		b.WriteString(r.flights(v.Flights.ArrivalFlights, true))
		b.WriteString("\n" + s.Title.Render("Departure Flights") + "\n")
		b.WriteString(r.flights(v.Flights.DepartureFlights, false))
	}
	return b.String()
}

func (r *Renderer) flights(list []models.FlightRecord, arriving bool) string {
	if len(list) == 0 {
		return r.styles.Muted.Render("No flight data available") + "\n"
	}
	var b strings.Builder
	for _, f := range list {
		other, when, prep := f.Arrival.Airport, f.Departure.Time, "to"
		terminal := f.Departure.Terminal
		if arriving {
			other, when, prep = f.Departure.Airport, f.Arrival.Time, "from"
			terminal = f.Arrival.Terminal
		}
		line := fmt.Sprintf("%s %s %s %s at %s", f.Airline, f.FlightNumber, prep, other, clock(when))
		if terminal != nil {
			line += " (terminal " + *terminal + ")"
		}
		b.WriteString("  " + line + "  " + r.styles.Muted.Render(f.FlightStatus) + "\n")
	}
	return b.String()
}

func clock(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		if s == "" {
			return "N/A"
		}
		return s
	}
	return t.Format("15:04")
}

// History renders the search history as a numbered list.
func (r *Renderer) History(h models.SearchHistory) string {
	s := r.styles
	var b strings.Builder
	b.WriteString(s.Title.Render(fmt.Sprintf("Search History (%d)", len(h))) + "\n")
	if len(h) == 0 {
		b.WriteString(s.Muted.Render("No searches yet.") + "\n")
		return b.String()
	}
	for i, p := range h {
		b.WriteString(fmt.Sprintf("%2d. %s %s\n", i+1, s.Value.Render(p.Name), s.Muted.Render(fmt.Sprintf("pop. %d", p.Population))))
	}
	return b.String()
}

// News renders a news digest for one country.
func (r *Renderer) News(country string, n models.NewsSummary) string {
	return r.styles.Header.Render("News: "+country) + "\n\n" + r.styles.Fact.Render(n.Summary) + "\n"
}

func (r *Renderer) Error(msg string) string {
	return r.styles.Error.Render("Error: " + msg)
}
