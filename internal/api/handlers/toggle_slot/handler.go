package toggle_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
	toggleSlot "github.com/m04kA/SMC-SlotBookingService/internal/usecase/toggle_slot"
)

const (
	msgInvalidOwnerID     = "некорректный ID владельца"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgForbidden          = "менять доступность может только владелец расписания"
	msgSlotNotFound       = "слот не найден"
)

type Handler struct {
	useCase ToggleSlotUseCase
	logger  Logger
}

func NewHandler(useCase ToggleSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/owners/{ownerId}/slots/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserID(r.Context())

	ownerID, err := handlers.PathInt64(r, "ownerId")
	if err != nil {
		h.logger.Warn("PATCH /owners/{id}/slots/toggle - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	if userID != ownerID {
		h.logger.Warn("PATCH /owners/{id}/slots/toggle - Access denied: owner_id=%d, user_id=%d", ownerID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req ToggleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /owners/{id}/slots/toggle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerID)
	if err != nil {
		h.logger.Warn("PATCH /owners/{id}/slots/toggle - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, toggleSlot.ErrSlotNotFound):
			h.logger.Warn("PATCH /owners/{id}/slots/toggle - Slot not found: owner_id=%d, slot=%s %s", ownerID, req.Date, req.Time)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, toggleSlot.ErrInvalidInput):
			h.logger.Warn("PATCH /owners/{id}/slots/toggle - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("PATCH /owners/{id}/slots/toggle - Failed to toggle slot: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /owners/{id}/slots/toggle - Slot toggled: slot_id=%d, owner_id=%d, available=%t",
		result.SlotID, ownerID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
