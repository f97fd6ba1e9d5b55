// Package places queries a web-search provider for points of interest and
// dining suggestions. The whole package is best-effort: any failure degrades
// to an empty result, never to an error.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/viajero-ai/travel-planner/internal/config"
	"github.com/viajero-ai/travel-planner/internal/model"
	"github.com/viajero-ai/travel-planner/pkg/logger"
	"github.com/viajero-ai/travel-planner/pkg/metrics"
)

const (
	maxTitleLen   = 120
	maxSnippetLen = 200

	minLimit = 3
	maxLimit = 10
)

// Service is a Serper-style search client.
type Service struct {
	httpClient *http.Client
	searchURL  string
	defaultKey string
	logger     *logger.Logger
}

// NewService creates a places service from configuration. A server-side
// SERPER_API_KEY acts as fallback when the request carries none.
func NewService(cfg *config.Config, log *logger.Logger) *Service {
	return &Service{
		httpClient: &http.Client{Timeout: cfg.SearchTimeout},
		searchURL:  cfg.SearchURL,
		defaultKey: cfg.SerperAPIKey,
		logger:     log,
	}
}

type searchRequest struct {
	Query    string `json:"q"`
	Location string `json:"location,omitempty"`
	Num      int    `json:"num"`
}

type searchResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Find returns up to limit suggestions for the query near the location.
// Without an API key it returns an empty list immediately, issuing no
// network call; upstream failures also degrade to an empty list.
func (s *Service) Find(ctx context.Context, apiKey, query, location string, limit int) []model.PlaceSuggestion {
	if apiKey == "" {
		apiKey = s.defaultKey
	}
	if apiKey == "" {
		return []model.PlaceSuggestion{}
	}
	limit = clampLimit(limit)

	body, err := json.Marshal(searchRequest{Query: query, Location: location, Num: limit})
	if err != nil {
		return []model.PlaceSuggestion{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.searchURL, bytes.NewReader(body))
	if err != nil {
		return []model.PlaceSuggestion{}
	}
	req.Header.Set("X-API-KEY", apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstream("search", "error", time.Since(start).Seconds())
		s.logger.Warn("place search failed", zap.Error(err))
		return []model.PlaceSuggestion{}
	}
	defer resp.Body.Close()
	metrics.RecordUpstream("search", strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("place search returned non-OK status", zap.Int("status", resp.StatusCode))
		return []model.PlaceSuggestion{}
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		s.logger.Warn("place search decode failed", zap.Error(err))
		return []model.PlaceSuggestion{}
	}

	out := make([]model.PlaceSuggestion, 0, limit)
	for _, r := range parsed.Organic {
		out = append(out, model.PlaceSuggestion{
			Title:   truncate(r.Title, maxTitleLen),
			Link:    r.Link,
			Snippet: truncate(r.Snippet, maxSnippetLen),
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}

func clampLimit(limit int) int {
	if limit < minLimit {
		return minLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Cut on a rune boundary so truncation never splits UTF-8.
	runes := []rune(s)
	for len(string(runes)) > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
