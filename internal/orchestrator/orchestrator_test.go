package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viajero-ai/travel-planner/internal/llm"
	"github.com/viajero-ai/travel-planner/internal/model"
	"github.com/viajero-ai/travel-planner/pkg/logger"
)

type fakeWeather struct {
	calls  int
	report *model.WeatherReport
	err    error
}

func (f *fakeWeather) GetWeather(_ context.Context, city string, _ *time.Time, days int) (*model.WeatherReport, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.report != nil {
		return f.report, nil
	}
	return &model.WeatherReport{
		Geo:      model.GeoPoint{Name: city},
		Overview: "Panorama general: soleado.",
		Days:     make([]model.DailyWeather, days),
	}, nil
}

type fakePlanner struct {
	calls     int
	itinerary *model.Itinerary
	err       error
	gotDays   int
	gotLang   string
}

func (f *fakePlanner) Synthesize(_ context.Context, _ model.UserKeys, city string, _ *model.WeatherReport, days int, language string) (*model.Itinerary, error) {
	f.calls++
	f.gotDays = days
	f.gotLang = language
	if f.err != nil {
		return nil, f.err
	}
	if f.itinerary != nil {
		return f.itinerary, nil
	}
	return &model.Itinerary{
		Location:        city,
		WeatherOverview: "soleado",
		Days: []model.ItineraryDay{
			{Date: "2026-09-01", Title: "Día 1", Morning: "m", Afternoon: "a", Evening: "e"},
		},
	}, nil
}

type fakeChatClient struct {
	reply    string
	requests []*llm.CompletionRequest
	closed   bool
}

func (f *fakeChatClient) Complete(_ context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.requests = append(f.requests, req)
	return &llm.CompletionResponse{Content: f.reply, Model: "fake-model"}, nil
}

func (f *fakeChatClient) Name() string { return "fake" }

func (f *fakeChatClient) Close() error {
	f.closed = true
	return nil
}

func newTestOrchestrator(weather *fakeWeather, planner *fakePlanner, client llm.Client) *Orchestrator {
	factory := func(context.Context, llm.Credentials) (llm.Client, error) {
		if client == nil {
			return nil, llm.ErrNoCredentials
		}
		return client, nil
	}
	return New(weather, planner, factory, 20, logger.NewNop())
}

func TestHandleEmptyMessage(t *testing.T) {
	o := newTestOrchestrator(&fakeWeather{}, &fakePlanner{}, nil)

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := o.Handle(context.Background(), &model.ChatRequest{Message: msg})
		assert.ErrorIs(t, err, model.ErrInvalidRequest)
	}
}

func TestHandleOpenChat(t *testing.T) {
	weather := &fakeWeather{}
	planner := &fakePlanner{}
	client := &fakeChatClient{reply: "¡Hola! ¿En qué puedo ayudarte?"}
	o := newTestOrchestrator(weather, planner, client)

	resp, err := o.Handle(context.Background(), &model.ChatRequest{
		Keys:    model.UserKeys{OpenAIAPIKey: "k"},
		Message: "hola",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ResponseChat, resp.Type)
	assert.Equal(t, "¡Hola! ¿En qué puedo ayudarte?", resp.Message)
	assert.Nil(t, resp.Itinerary)

	// Exactly one model call, no weather or planner activity, and the
	// client released afterwards.
	assert.Len(t, client.requests, 1)
	assert.True(t, client.closed)
	assert.Zero(t, weather.calls)
	assert.Zero(t, planner.calls)
}

func TestHandlePlanKeywordAsksForPrefs(t *testing.T) {
	weather := &fakeWeather{}
	planner := &fakePlanner{}
	client := &fakeChatClient{}
	o := newTestOrchestrator(weather, planner, client)

	for _, msg := range []string{"quiero un itinerario", "arma un PLAN", "me voy de viaje"} {
		resp, err := o.Handle(context.Background(), &model.ChatRequest{Message: msg})
		require.NoError(t, err)
		assert.Equal(t, model.ResponseNeedPrefs, resp.Type)
		assert.Equal(t, "¿Para qué ciudad y cuántos días?", resp.Message)
	}

	// Clarification never touches any upstream.
	assert.Empty(t, client.requests)
	assert.Zero(t, weather.calls)
	assert.Zero(t, planner.calls)
}

func TestHandleWeatherKeywordAsksForCity(t *testing.T) {
	weather := &fakeWeather{}
	o := newTestOrchestrator(weather, &fakePlanner{}, &fakeChatClient{})

	for _, msg := range []string{"¿cómo está el clima?", "va a haber lluvia?", "qué Tiempo hace"} {
		resp, err := o.Handle(context.Background(), &model.ChatRequest{Message: msg})
		require.NoError(t, err)
		assert.Equal(t, model.ResponseNeedCity, resp.Type)
		assert.Equal(t, "¿De qué ciudad necesitas el clima?", resp.Message)
	}
	assert.Zero(t, weather.calls)
}

func TestHandlePlanKeywordWinsOverWeather(t *testing.T) {
	o := newTestOrchestrator(&fakeWeather{}, &fakePlanner{}, &fakeChatClient{})

	resp, err := o.Handle(context.Background(), &model.ChatRequest{Message: "itinerario según el clima"})
	require.NoError(t, err)
	assert.Equal(t, model.ResponseNeedPrefs, resp.Type)
}

func TestHandlePrefsRunPipeline(t *testing.T) {
	weather := &fakeWeather{}
	planner := &fakePlanner{}
	client := &fakeChatClient{}
	o := newTestOrchestrator(weather, planner, client)

	resp, err := o.Handle(context.Background(), &model.ChatRequest{
		Keys:    model.UserKeys{OpenAIAPIKey: "k"},
		Message: "hola", // content is ignored when prefs are present
		Prefs:   &model.TripPrefs{Location: "Cusco", Days: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, model.ResponseItinerary, resp.Type)
	assert.Equal(t, "Listo. Te propongo un itinerario para Cusco con base en el clima previsto.", resp.Message)
	require.NotNil(t, resp.Itinerary)
	assert.Equal(t, "Cusco", resp.Itinerary.Location)
	require.NotNil(t, resp.Weather)

	assert.Equal(t, 1, weather.calls)
	assert.Equal(t, 1, planner.calls)
	assert.Equal(t, 3, planner.gotDays)
	assert.Equal(t, "es", planner.gotLang)
	assert.Empty(t, client.requests)
}

func TestHandlePrefsClampDaysAndLanguage(t *testing.T) {
	planner := &fakePlanner{}
	o := newTestOrchestrator(&fakeWeather{}, planner, &fakeChatClient{})

	_, err := o.Handle(context.Background(), &model.ChatRequest{
		Message: "x",
		Prefs:   &model.TripPrefs{Location: "Cusco", Days: 99, Language: "en"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.MaxTripDays, planner.gotDays)
	assert.Equal(t, "en", planner.gotLang)
}

func TestHandlePrefsValidation(t *testing.T) {
	o := newTestOrchestrator(&fakeWeather{}, &fakePlanner{}, &fakeChatClient{})

	_, err := o.Handle(context.Background(), &model.ChatRequest{
		Message: "x",
		Prefs:   &model.TripPrefs{Location: "  "},
	})
	assert.ErrorIs(t, err, model.ErrInvalidRequest)

	_, err = o.Handle(context.Background(), &model.ChatRequest{
		Message: "x",
		Prefs:   &model.TripPrefs{Location: "Cusco", StartDate: "01/09/2026"},
	})
	assert.ErrorIs(t, err, model.ErrInvalidRequest)
}

func TestHandlePipelineErrorsPropagate(t *testing.T) {
	weather := &fakeWeather{err: model.ErrNotFound}
	o := newTestOrchestrator(weather, &fakePlanner{}, &fakeChatClient{})

	_, err := o.Handle(context.Background(), &model.ChatRequest{
		Message: "x",
		Prefs:   &model.TripPrefs{Location: "Xyzzy", Days: 2},
	})
	assert.ErrorIs(t, err, model.ErrNotFound)

	planner := &fakePlanner{err: fmt.Errorf("%w: boom", model.ErrGenerationFailed)}
	o = newTestOrchestrator(&fakeWeather{}, planner, &fakeChatClient{})
	_, err = o.Handle(context.Background(), &model.ChatRequest{
		Message: "x",
		Prefs:   &model.TripPrefs{Location: "Cusco", Days: 2},
	})
	assert.ErrorIs(t, err, model.ErrGenerationFailed)
}

func TestHandleOpenChatNoCredentials(t *testing.T) {
	o := newTestOrchestrator(&fakeWeather{}, &fakePlanner{}, nil)

	_, err := o.Handle(context.Background(), &model.ChatRequest{Message: "hola"})
	assert.ErrorIs(t, err, model.ErrMissingCredential)
}

func TestHandleOpenChatHistoryCap(t *testing.T) {
	client := &fakeChatClient{reply: "ok"}
	o := newTestOrchestrator(&fakeWeather{}, &fakePlanner{}, client)

	history := make([]model.ChatMessage, 30)
	for i := range history {
		history[i] = model.ChatMessage{Role: model.RoleUser, Content: "turno"}
	}
	history[29].Content = "el más reciente"

	_, err := o.Handle(context.Background(), &model.ChatRequest{
		Keys:    model.UserKeys{OpenAIAPIKey: "k"},
		Message: "hola",
		History: history,
	})
	require.NoError(t, err)
	require.Len(t, client.requests, 1)

	// system + capped history + current message.
	msgs := client.requests[0].Messages
	assert.Len(t, msgs, 22)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "el más reciente", msgs[len(msgs)-2].Content)
	assert.Equal(t, "hola", msgs[len(msgs)-1].Content)
}

func TestHandleOpenChatEmptyReplyFallback(t *testing.T) {
	client := &fakeChatClient{reply: ""}
	o := newTestOrchestrator(&fakeWeather{}, &fakePlanner{}, client)

	resp, err := o.Handle(context.Background(), &model.ChatRequest{
		Keys:    model.UserKeys{OpenAIAPIKey: "k"},
		Message: "hola",
	})
	require.NoError(t, err)
	assert.Equal(t, "Puedo ayudarte con destinos, clima e itinerarios. ¿A dónde te gustaría viajar?", resp.Message)
}

func TestHandleClampsVeryLongMessage(t *testing.T) {
	client := &fakeChatClient{reply: "ok"}
	o := newTestOrchestrator(&fakeWeather{}, &fakePlanner{}, client)

	_, err := o.Handle(context.Background(), &model.ChatRequest{
		Keys:    model.UserKeys{OpenAIAPIKey: "k"},
		Message: strings.Repeat("a", 10000),
	})
	require.NoError(t, err)
	require.Len(t, client.requests, 1)
	sent := client.requests[0].Messages
	assert.Len(t, sent[len(sent)-1].Content, 4000)
}

func TestHandleClampNeverSplitsRunes(t *testing.T) {
	client := &fakeChatClient{reply: "ok"}
	o := newTestOrchestrator(&fakeWeather{}, &fakePlanner{}, client)

	// 3-byte runes that do not divide the clamp evenly.
	_, err := o.Handle(context.Background(), &model.ChatRequest{
		Keys:    model.UserKeys{OpenAIAPIKey: "k"},
		Message: strings.Repeat("诶", 2000),
	})
	require.NoError(t, err)
	require.Len(t, client.requests, 1)
	sent := client.requests[0].Messages
	got := sent[len(sent)-1].Content
	assert.LessOrEqual(t, len(got), 4000)
	assert.True(t, utf8.ValidString(got))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		message string
		want    intent
	}{
		{"quiero un itinerario por Roma", intentPlan},
		{"tengo un PLAN", intentPlan},
		{"¿cómo está el clima?", intentWeather},
		{"mañana habrá un día soleado?", intentWeather},
		{"hola, ¿qué tal?", intentChat},
		{"recomiéndame museos", intentChat},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classify(tc.message), tc.message)
	}
}
