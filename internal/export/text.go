// Package export renders a validated itinerary as plain text or iCalendar.
// Both renderers are pure: identical input yields byte-identical output.
package export

import (
	"fmt"
	"strings"

	"github.com/viajero-ai/travel-planner/internal/model"
)

// PlainText renders an itinerary as a plain-text document.
func PlainText(it *model.Itinerary) string {
	lines := []string{
		fmt.Sprintf("Itinerario: %s", it.Location),
		it.WeatherOverview,
		"",
	}
	for _, d := range it.Days {
		lines = append(lines,
			fmt.Sprintf("Fecha: %s — %s", d.Date, d.Title),
			fmt.Sprintf("Mañana: %s", d.Morning),
			fmt.Sprintf("Tarde: %s", d.Afternoon),
			fmt.Sprintf("Noche: %s", d.Evening),
		)
		if d.Notes != "" {
			lines = append(lines, fmt.Sprintf("Notas: %s", d.Notes))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// Filename derives the download filename for an itinerary export.
func Filename(it *model.Itinerary, ext string) string {
	return fmt.Sprintf("itinerario_%s.%s", strings.ReplaceAll(it.Location, " ", "_"), ext)
}
