package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viajero-ai/travel-planner/internal/model"
)

func sampleReport() *model.WeatherReport {
	return &model.WeatherReport{
		Geo:      model.GeoPoint{Name: "Sevilla", Country: "España"},
		Overview: "Panorama general: soleado. Temperaturas entre 15°C y 32°C. Lluvia acumulada aprox. 0.0 mm.",
		Days: []model.DailyWeather{
			{Date: "2026-09-01", Code: 0, PrecipitationSum: 0},
			{Date: "2026-09-02", Code: 61, PrecipitationSum: 6.5},
			{Date: "2026-09-03", Code: 3, PrecipitationSum: 0.5},
		},
	}
}

func TestBuildItineraryPromptDeterministic(t *testing.T) {
	report := sampleReport()
	pois := []model.PlaceSuggestion{{Title: "Real Alcázar", Snippet: "Palacio y jardines"}}

	sys1, usr1 := BuildItineraryPrompt("Sevilla", 3, "es", report, pois, nil)
	sys2, usr2 := BuildItineraryPrompt("Sevilla", 3, "es", report, pois, nil)

	assert.Equal(t, sys1, sys2)
	assert.Equal(t, usr1, usr2)
}

func TestBuildItineraryPromptWeatherHints(t *testing.T) {
	_, usr := BuildItineraryPrompt("Sevilla", 3, "es", sampleReport(), nil, nil)

	assert.Contains(t, usr, "2026-09-01")
	assert.Contains(t, usr, "actividades al aire libre recomendadas")
	assert.Contains(t, usr, "2026-09-02")
	assert.Contains(t, usr, "prioriza planes bajo techo")

	// A mildly damp, cloudy day gets neither hint.
	for _, line := range strings.Split(usr, "\n") {
		if strings.HasPrefix(line, "2026-09-03") {
			assert.NotContains(t, line, "bajo techo")
			assert.NotContains(t, line, "aire libre")
		}
	}
}

func TestBuildItineraryPromptIncludesContract(t *testing.T) {
	sys, usr := BuildItineraryPrompt("Sevilla", 2, "en", sampleReport(), nil, nil)

	assert.Contains(t, sys, "esquema JSON")
	assert.Contains(t, usr, "Genera un itinerario para 2 día(s) en Sevilla.")
	assert.Contains(t, usr, "Idioma: en.")
	assert.Contains(t, usr, `"weather_overview": string (requerido)`)
	assert.Contains(t, usr, "Devuelve sólo un objeto JSON")
}

func TestBuildItineraryPromptSuggestionSections(t *testing.T) {
	pois := []model.PlaceSuggestion{{Title: "Catedral", Snippet: "Gótica"}}
	food := []model.PlaceSuggestion{{Title: "El Rinconcillo", Snippet: "Tapas desde 1670"}}

	_, usr := BuildItineraryPrompt("Sevilla", 1, "es", sampleReport(), pois, food)
	assert.Contains(t, usr, "Atracciones sugeridas")
	assert.Contains(t, usr, "- Catedral: Gótica")
	assert.Contains(t, usr, "Restaurantes y comida local")
	assert.Contains(t, usr, "- El Rinconcillo: Tapas desde 1670")

	_, usr = BuildItineraryPrompt("Sevilla", 1, "es", sampleReport(), nil, nil)
	assert.NotContains(t, usr, "Atracciones sugeridas")
	assert.NotContains(t, usr, "Restaurantes y comida local")
}
