package model

import "errors"

// Domain error taxonomy. Handlers map these to HTTP statuses with errors.Is;
// everything else surfaces as a 500.
var (
	// ErrInvalidRequest covers empty messages, malformed dates and malformed
	// itinerary bodies. Never retried.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound is returned when a place name cannot be geocoded.
	ErrNotFound = errors.New("place not found")

	// ErrMissingCredential is returned when no model API key is available for
	// the selected provider. Absence of a search key degrades instead.
	ErrMissingCredential = errors.New("missing credential")

	// ErrUpstreamUnavailable is returned when the selected provider client
	// cannot be constructed.
	ErrUpstreamUnavailable = errors.New("model provider unavailable")

	// ErrGenerationFailed is returned when no parseable JSON object can be
	// extracted from the model reply.
	ErrGenerationFailed = errors.New("itinerary generation failed")

	// ErrInvalidItinerary is returned when the extracted object does not
	// conform to the itinerary shape.
	ErrInvalidItinerary = errors.New("invalid itinerary structure")
)
