// Package model defines the request-scoped data structures for the travel
// planner. No entity here outlives the HTTP call that created it.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Role represents the role of a chat message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is one turn of caller-supplied conversation history, replayed
// verbatim into the model conversation context.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// UserKeys carries the per-request provider credentials. Any missing key
// falls back to the server-configured one; a model call with no key at all
// fails with ErrMissingCredential.
type UserKeys struct {
	OpenAIAPIKey    string `json:"openai_api_key,omitempty"`
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty"`
	GeminiAPIKey    string `json:"gemini_api_key,omitempty"`
	SerperAPIKey    string `json:"serper_api_key,omitempty"`
}

// TripPrefs are explicit trip preferences attached to a chat request. Their
// presence forces the full weather → itinerary pipeline.
type TripPrefs struct {
	Location  string `json:"location"`
	Days      int    `json:"days"`
	StartDate string `json:"start_date,omitempty"`
	Language  string `json:"language,omitempty"`
}

// MinTripDays and MaxTripDays bound the requested day count. Requests outside
// the range are clamped, not rejected.
const (
	MinTripDays = 1
	MaxTripDays = 14
)

// ClampDays forces a day count into [MinTripDays, MaxTripDays].
func ClampDays(days int) int {
	if days < MinTripDays {
		return MinTripDays
	}
	if days > MaxTripDays {
		return MaxTripDays
	}
	return days
}

// Validate checks the preferences at the boundary. A present start date must
// parse as an ISO calendar date.
func (p *TripPrefs) Validate() error {
	if strings.TrimSpace(p.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidRequest)
	}
	if _, err := p.ParseStartDate(); err != nil {
		return err
	}
	return nil
}

// ParseStartDate returns the start date, or nil when unset. The aliases the
// original UI sends for "default" are treated as unset.
func (p *TripPrefs) ParseStartDate() (*time.Time, error) {
	return ParseISODate(p.StartDate)
}

// ParseISODate parses an optional ISO YYYY-MM-DD date. Empty and the
// tomorrow-aliases yield nil; anything else malformed is an ErrInvalidRequest.
func ParseISODate(s string) (*time.Time, error) {
	switch strings.TrimSpace(s) {
	case "", "today", "tomorrow", "mañana":
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date must be ISO YYYY-MM-DD", ErrInvalidRequest)
	}
	return &t, nil
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Keys    UserKeys      `json:"keys"`
	Message string        `json:"message"`
	History []ChatMessage `json:"history,omitempty"`
	Prefs   *TripPrefs    `json:"prefs,omitempty"`
}

// ResponseType discriminates the orchestrator result variants.
type ResponseType string

const (
	ResponseChat      ResponseType = "chat"
	ResponseNeedCity  ResponseType = "need_city"
	ResponseNeedPrefs ResponseType = "need_prefs"
	ResponseItinerary ResponseType = "itinerary"
)

// ChatResponse is the orchestrator result returned from POST /chat.
type ChatResponse struct {
	Type      ResponseType   `json:"type"`
	Message   string         `json:"message"`
	Itinerary *Itinerary     `json:"itinerary,omitempty"`
	Weather   *WeatherReport `json:"weather,omitempty"`
}

// ItineraryRequest is the body of POST /itinerary. Days is a pointer so an
// explicit 0 (clamped to the minimum) is distinguishable from absent (the
// default day count).
type ItineraryRequest struct {
	Keys      UserKeys `json:"keys"`
	City      string   `json:"city"`
	Days      *int     `json:"days,omitempty"`
	Language  string   `json:"language,omitempty"`
	StartDate string   `json:"start_date,omitempty"`
}
