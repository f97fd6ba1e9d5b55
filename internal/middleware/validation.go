package middleware

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ValidateChatMessage validates an incoming chat message. Length clamping
// happens later in the orchestrator; only emptiness and encoding are hard
// rejections here.
func ValidateChatMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.New("message cannot be empty")
	}
	if !utf8.ValidString(message) {
		return errors.New("message must be valid UTF-8")
	}
	return nil
}

// ValidateCity validates a city query parameter.
func ValidateCity(city string) error {
	if strings.TrimSpace(city) == "" {
		return errors.New("city is required")
	}
	if len(city) > 128 {
		return errors.New("city exceeds maximum length")
	}
	return nil
}
