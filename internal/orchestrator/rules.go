package orchestrator

import "strings"

// intent is the outcome of the keyword decision table.
type intent int

const (
	intentChat intent = iota
	intentPlan
	intentWeather
)

// The classifier is a fixed, language-specific keyword heuristic, not NLP.
// Rules are evaluated top to bottom; first match wins.
var rules = []struct {
	keywords []string
	outcome  intent
}{
	{keywords: []string{"itinerario", "plan", "viaje"}, outcome: intentPlan},
	{keywords: []string{"clima", "tiempo", "lluvia", "soleado"}, outcome: intentWeather},
}

// classify runs the decision table over the lowercased message.
func classify(message string) intent {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.outcome
			}
		}
	}
	return intentChat
}
