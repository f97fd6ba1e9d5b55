package weather

import (
	"fmt"

	"github.com/viajero-ai/travel-planner/internal/model"
)

// rainyThresholdMM is the total precipitation above which the whole period
// classifies as rainy.
const rainyThresholdMM = 5.0

// Summarize classifies the forecast period and composes the one-sentence
// overview. The classification reads only aggregates, so it is independent of
// day order.
func Summarize(days []model.DailyWeather) string {
	if len(days) == 0 {
		return "Sin datos meteorológicos."
	}

	var totalRain float64
	anyCloudy := false
	minTemp := days[0].TempMin
	maxTemp := days[0].TempMax
	for _, d := range days {
		totalRain += d.PrecipitationSum
		if cloudyCodes[d.Code] {
			anyCloudy = true
		}
		if d.TempMin < minTemp {
			minTemp = d.TempMin
		}
		if d.TempMax > maxTemp {
			maxTemp = d.TempMax
		}
	}

	overall := "soleado"
	switch {
	case totalRain >= rainyThresholdMM:
		overall = "lluvioso"
	case anyCloudy:
		overall = "nublado"
	}

	return fmt.Sprintf("Panorama general: %s. Temperaturas entre %.0f°C y %.0f°C. Lluvia acumulada aprox. %.1f mm.",
		overall, minTemp, maxTemp, totalRain)
}
