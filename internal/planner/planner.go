package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/viajero-ai/travel-planner/internal/llm"
	"github.com/viajero-ai/travel-planner/internal/model"
	"github.com/viajero-ai/travel-planner/pkg/logger"
	"github.com/viajero-ai/travel-planner/pkg/metrics"
)

// PlaceFinder is the enrichment dependency. Both lookups are best-effort and
// never fail the pipeline.
type PlaceFinder interface {
	Find(ctx context.Context, apiKey, query, location string, limit int) []model.PlaceSuggestion
}

// Planner synthesizes a structured itinerary from weather data and a single
// model call.
type Planner struct {
	places     PlaceFinder
	newClient  llm.Factory
	modelTemp  float64
	suggestion int
	logger     *logger.Logger
}

// NewPlanner creates a Planner.
func NewPlanner(places PlaceFinder, factory llm.Factory, log *logger.Logger) *Planner {
	return &Planner{
		places:     places,
		newClient:  factory,
		modelTemp:  0.4,
		suggestion: 5,
		logger:     log,
	}
}

// Synthesize runs enrichment, builds the prompt and parses the model reply
// into a validated itinerary.
func (p *Planner) Synthesize(ctx context.Context, keys model.UserKeys, city string, report *model.WeatherReport, days int, language string) (*model.Itinerary, error) {
	client, err := p.newClient(ctx, llm.Credentials{
		OpenAI:    keys.OpenAIAPIKey,
		Anthropic: keys.AnthropicAPIKey,
		Gemini:    keys.GeminiAPIKey,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNoCredentials) {
			return nil, fmt.Errorf("%w: no model API key", model.ErrMissingCredential)
		}
		return nil, fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}
	defer client.Close()

	pois := p.places.Find(ctx, keys.SerperAPIKey, "atracciones y lugares imperdibles", city, p.suggestion)
	food := p.places.Find(ctx, keys.SerperAPIKey, "restaurantes y comida local", city, p.suggestion)

	system, user := BuildItineraryPrompt(city, days, language, report, pois, food)

	resp, err := client.Complete(ctx, &llm.CompletionRequest{
		Messages: []llm.ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: p.modelTemp,
		JSONOnly:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrGenerationFailed, err)
	}
	metrics.RecordLLMUsage(resp.Model, resp.TokensIn, resp.TokensOut)

	raw, ok := ExtractJSONObject(resp.Content)
	if !ok {
		p.logger.Warn("no JSON object in model reply",
			zap.String("provider", client.Name()),
			zap.Int("reply_len", len(resp.Content)),
		)
		return nil, fmt.Errorf("%w: reply contains no JSON object", model.ErrGenerationFailed)
	}

	var itinerary model.Itinerary
	if err := json.Unmarshal(raw, &itinerary); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidItinerary, err)
	}
	if itinerary.Location == "" {
		itinerary.Location = city
	}
	itinerary.Provider = client.Name()
	if itinerary.WeatherOverview == "" {
		itinerary.WeatherOverview = report.Overview
	}
	if err := itinerary.Validate(); err != nil {
		return nil, err
	}

	// Accepted model drift: extra days are cut back to the request, fewer
	// days pass through.
	if len(itinerary.Days) > days {
		itinerary.Days = itinerary.Days[:days]
	} else if len(itinerary.Days) < days {
		p.logger.Warn("model returned fewer days than requested",
			zap.Int("requested", days),
			zap.Int("returned", len(itinerary.Days)),
		)
	}

	metrics.ItinerariesTotal.WithLabelValues(client.Name()).Inc()
	return &itinerary, nil
}
