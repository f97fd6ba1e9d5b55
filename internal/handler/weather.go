package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/viajero-ai/travel-planner/internal/middleware"
	"github.com/viajero-ai/travel-planner/internal/model"
	"github.com/viajero-ai/travel-planner/pkg/logger"
)

const defaultForecastDays = 3

// WeatherService is the weather dependency of the weather handler.
type WeatherService interface {
	GetWeather(ctx context.Context, city string, start *time.Time, days int) (*model.WeatherReport, error)
}

// WeatherHandler handles the weather endpoint.
type WeatherHandler struct {
	weather WeatherService
	logger  *logger.Logger
}

// NewWeatherHandler creates a new weather handler.
func NewWeatherHandler(weather WeatherService, log *logger.Logger) *WeatherHandler {
	return &WeatherHandler{weather: weather, logger: log}
}

// Get handles GET /api/v1/weather?city=&days=&start_date=
func (h *WeatherHandler) Get(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if err := middleware.ValidateCity(city); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	days := defaultForecastDays
	if d := r.URL.Query().Get("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil {
			writeError(w, http.StatusBadRequest, "days must be an integer")
			return
		}
		days = parsed
	}

	start, err := model.ParseISODate(r.URL.Query().Get("start_date"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	report, err := h.weather.GetWeather(r.Context(), city, start, model.ClampDays(days))
	if err != nil {
		h.logger.Warn("weather request failed", zap.String("city", city), zap.Error(err))
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
