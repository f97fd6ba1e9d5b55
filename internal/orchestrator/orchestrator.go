// Package orchestrator classifies incoming chat messages and sequences the
// weather → enrichment → synthesis pipeline. It is state-free: every
// invocation depends only on the incoming request.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/viajero-ai/travel-planner/internal/llm"
	"github.com/viajero-ai/travel-planner/internal/model"
	"github.com/viajero-ai/travel-planner/pkg/logger"
	"github.com/viajero-ai/travel-planner/pkg/metrics"
)

// maxMessageLen is the clamp applied to the incoming message before any
// further processing.
const maxMessageLen = 4000

// defaultLanguage is used when preferences omit one.
const defaultLanguage = "es"

// chatSystemPrompt constrains the open-ended chat fallback to short, plain
// travel-assistant replies.
const chatSystemPrompt = "Eres un asistente de viajes amable y útil. Responde de forma breve y clara."

// WeatherService resolves a city and returns a normalized forecast.
type WeatherService interface {
	GetWeather(ctx context.Context, city string, start *time.Time, days int) (*model.WeatherReport, error)
}

// ItineraryPlanner synthesizes a structured itinerary.
type ItineraryPlanner interface {
	Synthesize(ctx context.Context, keys model.UserKeys, city string, report *model.WeatherReport, days int, language string) (*model.Itinerary, error)
}

// Orchestrator routes chat requests to clarification, the itinerary pipeline
// or an open chat turn.
type Orchestrator struct {
	weather      WeatherService
	planner      ItineraryPlanner
	newClient    llm.Factory
	historyLimit int
	logger       *logger.Logger
}

// New creates an Orchestrator.
func New(weather WeatherService, planner ItineraryPlanner, factory llm.Factory, historyLimit int, log *logger.Logger) *Orchestrator {
	if historyLimit <= 0 {
		historyLimit = 20
	}
	return &Orchestrator{
		weather:      weather,
		planner:      planner,
		newClient:    factory,
		historyLimit: historyLimit,
		logger:       log,
	}
}

// Handle processes one chat request.
func (o *Orchestrator) Handle(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	text := trimAndClamp(req.Message)
	if text == "" {
		return nil, fmt.Errorf("%w: mensaje vacío", model.ErrInvalidRequest)
	}

	// Explicit preferences force the full pipeline regardless of message
	// content.
	if req.Prefs != nil {
		return o.runPipeline(ctx, req)
	}

	switch classify(text) {
	case intentPlan:
		metrics.IntentTotal.WithLabelValues(string(model.ResponseNeedPrefs)).Inc()
		return &model.ChatResponse{
			Type:    model.ResponseNeedPrefs,
			Message: "¿Para qué ciudad y cuántos días?",
		}, nil
	case intentWeather:
		metrics.IntentTotal.WithLabelValues(string(model.ResponseNeedCity)).Inc()
		return &model.ChatResponse{
			Type:    model.ResponseNeedCity,
			Message: "¿De qué ciudad necesitas el clima?",
		}, nil
	}

	return o.openChat(ctx, req, text)
}

func (o *Orchestrator) runPipeline(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error) {
	prefs := req.Prefs
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	start, err := prefs.ParseStartDate()
	if err != nil {
		return nil, err
	}
	days := model.ClampDays(prefs.Days)
	language := prefs.Language
	if language == "" {
		language = defaultLanguage
	}

	report, err := o.weather.GetWeather(ctx, prefs.Location, start, days)
	if err != nil {
		return nil, err
	}

	itinerary, err := o.planner.Synthesize(ctx, req.Keys, prefs.Location, report, days, language)
	if err != nil {
		return nil, err
	}

	metrics.IntentTotal.WithLabelValues(string(model.ResponseItinerary)).Inc()
	return &model.ChatResponse{
		Type:      model.ResponseItinerary,
		Message:   fmt.Sprintf("Listo. Te propongo un itinerario para %s con base en el clima previsto.", prefs.Location),
		Itinerary: itinerary,
		Weather:   report,
	}, nil
}

func (o *Orchestrator) openChat(ctx context.Context, req *model.ChatRequest, text string) (*model.ChatResponse, error) {
	client, err := o.newClient(ctx, llm.Credentials{
		OpenAI:    req.Keys.OpenAIAPIKey,
		Anthropic: req.Keys.AnthropicAPIKey,
		Gemini:    req.Keys.GeminiAPIKey,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNoCredentials) {
			return nil, fmt.Errorf("%w: no model API key", model.ErrMissingCredential)
		}
		return nil, fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}
	defer client.Close()

	messages := make([]llm.ChatMessage, 0, o.historyLimit+2)
	messages = append(messages, llm.ChatMessage{Role: "system", Content: chatSystemPrompt})
	for _, m := range capHistory(req.History, o.historyLimit) {
		messages = append(messages, llm.ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	messages = append(messages, llm.ChatMessage{Role: "user", Content: text})

	resp, err := client.Complete(ctx, &llm.CompletionRequest{Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}
	metrics.RecordLLMUsage(resp.Model, resp.TokensIn, resp.TokensOut)

	answer := resp.Content
	if answer == "" {
		answer = "Puedo ayudarte con destinos, clima e itinerarios. ¿A dónde te gustaría viajar?"
	}

	metrics.IntentTotal.WithLabelValues(string(model.ResponseChat)).Inc()
	o.logger.Debug("open chat turn completed", zap.String("provider", client.Name()))
	return &model.ChatResponse{Type: model.ResponseChat, Message: answer}, nil
}

func trimAndClamp(message string) string {
	text := strings.TrimSpace(message)
	if len(text) <= maxMessageLen {
		return text
	}
	// Back up to a rune boundary so the cut never splits UTF-8.
	cut := maxMessageLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// capHistory keeps the most recent entries to bound outbound request size.
func capHistory(history []model.ChatMessage, limit int) []model.ChatMessage {
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
