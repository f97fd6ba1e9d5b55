// Package planner builds the itinerary prompt, invokes the model provider
// and parses the reply into a validated itinerary.
package planner

import (
	"fmt"
	"strings"

	"github.com/viajero-ai/travel-planner/internal/model"
	"github.com/viajero-ai/travel-planner/internal/weather"
)

// indoorHintThresholdMM is the daily precipitation above which the prompt
// steers the model toward covered activities.
const indoorHintThresholdMM = 2.0

// systemInstruction constrains the model: realistic plans, grouped zones,
// local food, transport, rain alternatives, no invented prices.
const systemInstruction = "Eres un agente de viajes detallista y práctico. Devuelve respuestas claras en el idioma solicitado. " +
	"Cumple estrictamente el esquema JSON indicado. Limita a planes realistas, con tiempos y zonas agrupadas " +
	"para minimizar traslados. Incluye comida local, transporte sugerido y alternativas si llueve. No inventes precios ni reservas."

// schemaContract is the literal output-shape contract embedded in the user
// prompt. The provider offers no server-side schema enforcement, so the
// contract is stated explicitly and repeated in the closing instruction.
const schemaContract = `{
  "location": string (requerido),
  "days": [
    {
      "date": string ISO YYYY-MM-DD (requerido),
      "title": string (requerido),
      "morning": string (requerido),
      "afternoon": string (requerido),
      "evening": string (requerido),
      "notes": string (opcional)
    }
  ] (requerido),
  "weather_overview": string (requerido)
}`

// BuildItineraryPrompt assembles the deterministic system instruction and
// user prompt for itinerary generation.
func BuildItineraryPrompt(city string, days int, language string, report *model.WeatherReport, pois, food []model.PlaceSuggestion) (system, user string) {
	var guide strings.Builder
	for _, d := range report.Days {
		hint := ""
		switch {
		case d.PrecipitationSum >= indoorHintThresholdMM:
			hint = " (día lluvioso: prioriza planes bajo techo)"
		case weather.IsClear(d.Code):
			hint = " (día soleado: actividades al aire libre recomendadas)"
		}
		fmt.Fprintf(&guide, "%s: %s%s\n", d.Date, weather.Describe(d.Code), hint)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Genera un itinerario para %d día(s) en %s.\n", days, city)
	fmt.Fprintf(&b, "Idioma: %s.\n", language)
	fmt.Fprintf(&b, "Resumen del clima: %s.\n", report.Overview)
	fmt.Fprintf(&b, "Guía por día:\n%s", guide.String())

	if len(pois) > 0 {
		b.WriteString("Atracciones sugeridas (resultados de búsqueda):\n")
		writeSuggestions(&b, pois)
	}
	if len(food) > 0 {
		b.WriteString("Restaurantes y comida local (resultados de búsqueda):\n")
		writeSuggestions(&b, food)
	}

	fmt.Fprintf(&b, "Estructura exacta del objeto JSON:\n%s\n", schemaContract)
	b.WriteString("Devuelve sólo un objeto JSON que cumpla el esquema, sin texto adicional.")

	return systemInstruction, b.String()
}

func writeSuggestions(b *strings.Builder, suggestions []model.PlaceSuggestion) {
	for _, s := range suggestions {
		fmt.Fprintf(b, "- %s: %s\n", s.Title, s.Snippet)
	}
}
