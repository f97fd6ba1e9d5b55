package handler

import (
	"encoding/json"
	"net/http"

	"github.com/viajero-ai/travel-planner/internal/export"
	"github.com/viajero-ai/travel-planner/internal/model"
	"github.com/viajero-ai/travel-planner/pkg/logger"
)

// DownloadHandler renders itineraries into downloadable documents.
type DownloadHandler struct {
	logger *logger.Logger
}

// NewDownloadHandler creates a new download handler.
func NewDownloadHandler(log *logger.Logger) *DownloadHandler {
	return &DownloadHandler{logger: log}
}

// PlainText handles POST /api/v1/download/txt
func (h *DownloadHandler) PlainText(w http.ResponseWriter, r *http.Request) {
	itinerary, ok := h.decodeItinerary(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.DownloadResponse{
		Filename: export.Filename(itinerary, "txt"),
		Content:  export.PlainText(itinerary),
	})
}

// Calendar handles POST /api/v1/download/ics
func (h *DownloadHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	itinerary, ok := h.decodeItinerary(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.DownloadResponse{
		Filename: export.Filename(itinerary, "ics"),
		Content:  export.Calendar(itinerary),
	})
}

func (h *DownloadHandler) decodeItinerary(w http.ResponseWriter, r *http.Request) (*model.Itinerary, bool) {
	var itinerary model.Itinerary
	if err := json.NewDecoder(r.Body).Decode(&itinerary); err != nil {
		writeError(w, http.StatusBadRequest, "itinerario inválido")
		return nil, false
	}
	if err := itinerary.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "itinerario inválido")
		return nil, false
	}
	return &itinerary, true
}
