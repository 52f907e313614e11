package get_analytics

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/analytics"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/analytics/models"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца"
	msgInvalidLimit   = "некорректный limit, ожидается число от 1 до 100"
)

type Handler struct {
	service AnalyticsService
	logger  Logger
}

func NewHandler(service AnalyticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerId}/analytics
// Query params: limit (optional, по умолчанию 3)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, err := handlers.PathInt64(r, "ownerId")
	if err != nil {
		h.logger.Warn("GET /owners/{id}/analytics - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			h.logger.Warn("GET /owners/{id}/analytics - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
	}

	result, err := h.service.GetSummary(r.Context(), &models.GetAnalyticsRequest{OwnerID: ownerID, Limit: limit})
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidInput) {
			h.logger.Warn("GET /owners/{id}/analytics - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		h.logger.Error("GET /owners/{id}/analytics - Failed to get analytics: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /owners/{id}/analytics - Analytics retrieved successfully: owner_id=%d, top_bookers=%d",
		ownerID, len(result.TopBookers))
	handlers.RespondJSON(w, http.StatusOK, result)
}
