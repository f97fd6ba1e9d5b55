package planner

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject recovers a JSON object from a possibly noisy model reply.
// Tier one is a strict parse of the whole text; tier two salvages the
// substring between the first '{' and the last '}'. Returns false when
// neither tier yields a JSON object.
func ExtractJSONObject(text string) (json.RawMessage, bool) {
	trimmed := strings.TrimSpace(text)
	if isJSONObject(trimmed) {
		return json.RawMessage(trimmed), true
	}

	open := strings.Index(trimmed, "{")
	close := strings.LastIndex(trimmed, "}")
	if open == -1 || close <= open {
		return nil, false
	}

	candidate := trimmed[open : close+1]
	if isJSONObject(candidate) {
		return json.RawMessage(candidate), true
	}
	return nil, false
}

func isJSONObject(s string) bool {
	if !strings.HasPrefix(s, "{") {
		return false
	}
	var probe map[string]json.RawMessage
	return json.Unmarshal([]byte(s), &probe) == nil
}
