package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/viajero-ai/travel-planner/internal/config"
	"github.com/viajero-ai/travel-planner/internal/model"
	"github.com/viajero-ai/travel-planner/pkg/logger"
	"github.com/viajero-ai/travel-planner/pkg/metrics"
)

// Service fetches and normalizes weather data. Each call is a single
// best-effort request pair (geocode, then forecast) with no retries.
type Service struct {
	geocodeClient  *http.Client
	forecastClient *http.Client
	geocodingURL   string
	forecastURL    string
	logger         *logger.Logger
}

// NewService creates a weather service from configuration.
func NewService(cfg *config.Config, log *logger.Logger) *Service {
	return &Service{
		geocodeClient:  &http.Client{Timeout: cfg.GeocodeTimeout},
		forecastClient: &http.Client{Timeout: cfg.ForecastTimeout},
		geocodingURL:   cfg.GeocodingURL,
		forecastURL:    cfg.ForecastURL,
		logger:         log,
	}
}

// GetWeather resolves a city name and fetches a daily forecast for
// [start, start+days-1]. A nil start defaults to tomorrow in local time.
// Days are clamped into [1,14] before any upstream call.
func (s *Service) GetWeather(ctx context.Context, city string, start *time.Time, days int) (*model.WeatherReport, error) {
	days = model.ClampDays(days)

	geo, err := s.geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	startDate := time.Now().AddDate(0, 0, 1)
	if start != nil {
		startDate = *start
	}

	daily, err := s.fetchForecast(ctx, geo, startDate, days)
	if err != nil {
		return nil, err
	}

	return &model.WeatherReport{
		Geo:      *geo,
		Days:     daily,
		Overview: Summarize(daily),
	}, nil
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

func (s *Service) geocode(ctx context.Context, city string) (*model.GeoPoint, error) {
	params := url.Values{}
	params.Set("name", city)
	params.Set("count", "1")
	params.Set("language", "es")
	params.Set("format", "json")

	var resp geocodeResponse
	if err := s.getJSON(ctx, s.geocodeClient, "geocode", s.geocodingURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrNotFound, city)
	}

	hit := resp.Results[0]
	tz := hit.Timezone
	if tz == "" {
		tz = "auto"
	}
	return &model.GeoPoint{
		Name:      hit.Name,
		Country:   hit.Country,
		Latitude:  hit.Latitude,
		Longitude: hit.Longitude,
		Timezone:  tz,
	}, nil
}

type forecastResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		WeatherCode      []int     `json:"weathercode"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		TempMax          []float64 `json:"temperature_2m_max"`
		TempMin          []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func (s *Service) fetchForecast(ctx context.Context, geo *model.GeoPoint, start time.Time, days int) ([]model.DailyWeather, error) {
	end := start.AddDate(0, 0, days-1)

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(geo.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(geo.Longitude, 'f', -1, 64))
	params.Set("daily", "weathercode,precipitation_sum,temperature_2m_max,temperature_2m_min")
	params.Set("timezone", geo.Timezone)
	params.Set("start_date", start.Format("2006-01-02"))
	params.Set("end_date", end.Format("2006-01-02"))

	var resp forecastResponse
	if err := s.getJSON(ctx, s.forecastClient, "forecast", s.forecastURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	daily := resp.Daily
	out := make([]model.DailyWeather, 0, len(daily.Time))
	for i, date := range daily.Time {
		d := model.DailyWeather{Date: date}
		if i < len(daily.WeatherCode) {
			d.Code = daily.WeatherCode[i]
			d.Summary = Describe(d.Code)
		}
		if i < len(daily.TempMax) {
			d.TempMax = daily.TempMax[i]
		}
		if i < len(daily.TempMin) {
			d.TempMin = daily.TempMin[i]
		}
		if i < len(daily.PrecipitationSum) {
			d.PrecipitationSum = daily.PrecipitationSum[i]
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Service) getJSON(ctx context.Context, client *http.Client, provider, rawURL string, v any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s request: %w", provider, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		metrics.RecordUpstream(provider, "error", time.Since(start).Seconds())
		return fmt.Errorf("%s call failed: %w", provider, err)
	}
	defer resp.Body.Close()

	metrics.RecordUpstream(provider, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("upstream returned non-OK status",
			zap.String("provider", provider),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%s returned status %d", provider, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%s decode: %w", provider, err)
	}
	return nil
}
