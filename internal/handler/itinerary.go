package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/viajero-ai/travel-planner/internal/events"
	"github.com/viajero-ai/travel-planner/internal/middleware"
	"github.com/viajero-ai/travel-planner/internal/model"
	"github.com/viajero-ai/travel-planner/pkg/logger"
)

// ItineraryPlanner is the synthesizer dependency of the itinerary handler.
type ItineraryPlanner interface {
	Synthesize(ctx context.Context, keys model.UserKeys, city string, report *model.WeatherReport, days int, language string) (*model.Itinerary, error)
}

// ItineraryHandler handles direct itinerary generation.
type ItineraryHandler struct {
	weather   WeatherService
	planner   ItineraryPlanner
	publisher *events.Publisher
	logger    *logger.Logger
}

// NewItineraryHandler creates a new itinerary handler.
func NewItineraryHandler(weather WeatherService, planner ItineraryPlanner, pub *events.Publisher, log *logger.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		weather:   weather,
		planner:   planner,
		publisher: pub,
		logger:    log,
	}
}

// Create handles POST /api/v1/itinerary
func (h *ItineraryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateCity(req.City); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	start, err := model.ParseISODate(req.StartDate)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	days := defaultForecastDays
	if req.Days != nil {
		days = *req.Days
	}
	days = model.ClampDays(days)

	language := req.Language
	if language == "" {
		language = "es"
	}

	report, err := h.weather.GetWeather(r.Context(), req.City, start, days)
	if err != nil {
		h.logger.Warn("weather lookup failed", zap.String("city", req.City), zap.Error(err))
		writeDomainError(w, err)
		return
	}

	itinerary, err := h.planner.Synthesize(r.Context(), req.Keys, req.City, report, days, language)
	if err != nil {
		h.logger.Warn("itinerary synthesis failed", zap.String("city", req.City), zap.Error(err))
		writeDomainError(w, err)
		return
	}

	h.publisher.Publish(events.SubjectItineraryGenerated, events.ItineraryGenerated{
		Location:    itinerary.Location,
		Days:        len(itinerary.Days),
		Provider:    itinerary.Provider,
		GeneratedAt: time.Now().UTC(),
	})

	writeJSON(w, http.StatusOK, itinerary)
}
