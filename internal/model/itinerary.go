package model

import "fmt"

// ItineraryDay is one plan-of-the-day produced by the model.
type ItineraryDay struct {
	Date      string `json:"date"`
	Title     string `json:"title"`
	Morning   string `json:"morning"`
	Afternoon string `json:"afternoon"`
	Evening   string `json:"evening"`
	Notes     string `json:"notes,omitempty"`
}

// Itinerary is the canonical output artifact. Provider records which model
// backend produced it; it is server-filled and ignored on input.
type Itinerary struct {
	Location        string         `json:"location"`
	Days            []ItineraryDay `json:"days"`
	WeatherOverview string         `json:"weather_overview"`
	Provider        string         `json:"provider,omitempty"`
}

// Validate checks the structural contract enforced on model output: every day
// must carry its required fields. Day count and date ordering are accepted
// model drift and not checked here.
func (it *Itinerary) Validate() error {
	if it.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidItinerary)
	}
	if len(it.Days) == 0 {
		return fmt.Errorf("%w: at least one day is required", ErrInvalidItinerary)
	}
	for i, d := range it.Days {
		switch {
		case d.Date == "":
			return fmt.Errorf("%w: day %d is missing date", ErrInvalidItinerary, i)
		case d.Title == "":
			return fmt.Errorf("%w: day %d is missing title", ErrInvalidItinerary, i)
		case d.Morning == "" || d.Afternoon == "" || d.Evening == "":
			return fmt.Errorf("%w: day %d is missing a time-of-day plan", ErrInvalidItinerary, i)
		}
	}
	return nil
}

// PlaceSuggestion is a bounded search-enrichment result.
type PlaceSuggestion struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// DownloadResponse wraps a rendered export document.
type DownloadResponse struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}
