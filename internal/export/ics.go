package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/viajero-ai/travel-planner/internal/model"
)

// Events span a fixed local window; the calendar uses floating time on
// purpose so the day plan stays 09:00–21:00 wherever it is opened.
const (
	eventStartSuffix = "T090000"
	eventEndSuffix   = "T210000"
)

// Calendar renders an itinerary as an iCalendar document with one event per
// day. Days whose date does not parse are skipped. The output carries no
// generation timestamp, keeping the renderer deterministic.
func Calendar(it *model.Itinerary) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Viajero//TravelPlanner//ES",
	}
	for _, d := range it.Days {
		day, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			continue
		}
		stamp := day.Format("20060102")
		summary := escapeText(fmt.Sprintf("%s: %s", it.Location, d.Title))
		description := escapeText(fmt.Sprintf("Mañana: %s\nTarde: %s\nNoche: %s\n%s",
			d.Morning, d.Afternoon, d.Evening, it.WeatherOverview))
		lines = append(lines,
			"BEGIN:VEVENT",
			"DTSTART:"+stamp+eventStartSuffix,
			"DTEND:"+stamp+eventEndSuffix,
			"SUMMARY:"+summary,
			"DESCRIPTION:"+description,
			"END:VEVENT",
		)
	}
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\n")
}

// escapeText applies the iCalendar TEXT escaping rule (RFC 5545 §3.3.11) for
// commas, semicolons and newlines.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
