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

// ChatOrchestrator is the orchestrator dependency of the chat handler.
type ChatOrchestrator interface {
	Handle(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error)
}

// ChatHandler handles the chat endpoint.
type ChatHandler struct {
	orchestrator ChatOrchestrator
	publisher    *events.Publisher
	logger       *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(orch ChatOrchestrator, pub *events.Publisher, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		orchestrator: orch,
		publisher:    pub,
		logger:       log,
	}
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateChatMessage(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.orchestrator.Handle(r.Context(), &req)
	if err != nil {
		h.logger.Warn("chat request failed",
			zap.String("correlation_id", middleware.GetCorrelationID(r.Context())),
			zap.Error(err),
		)
		writeDomainError(w, err)
		return
	}

	h.publisher.Publish(events.SubjectChatHandled, events.ChatHandled{
		Outcome:   string(resp.Type),
		HandledAt: time.Now().UTC(),
	})
	if resp.Itinerary != nil {
		h.publisher.Publish(events.SubjectItineraryGenerated, events.ItineraryGenerated{
			Location:    resp.Itinerary.Location,
			Days:        len(resp.Itinerary.Days),
			Provider:    resp.Itinerary.Provider,
			GeneratedAt: time.Now().UTC(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
