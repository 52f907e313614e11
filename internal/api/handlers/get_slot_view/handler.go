package get_slot_view

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	getSlotView "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_slot_view"
)

const (
	msgInvalidOwnerID   = "некорректный ID владельца"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgScheduleNotFound = "расписание на эту дату не найдено"
)

type Handler struct {
	useCase GetSlotViewUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotViewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerId}/schedule
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, err := handlers.PathInt64(r, "ownerId")
	if err != nil {
		h.logger.Warn("GET /owners/{id}/schedule - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /owners/{id}/schedule - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlotView.Request{OwnerID: ownerID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getSlotView.ErrScheduleNotFound):
			h.logger.Warn("GET /owners/{id}/schedule - Schedule not found: owner_id=%d, date=%s", ownerID, date.Format(domain.DateFormat))
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, getSlotView.ErrInvalidInput):
			h.logger.Warn("GET /owners/{id}/schedule - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /owners/{id}/schedule - Failed to get schedule: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owners/{id}/schedule - Schedule retrieved successfully: owner_id=%d, slots_count=%d",
		ownerID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
