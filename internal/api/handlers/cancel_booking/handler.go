package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/notifications"
	cancelBooking "github.com/m04kA/SMC-SlotBookingService/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-SlotBookingService/pkg/ptr"
)

const (
	msgInvalidOwnerID     = "некорректный ID владельца"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные отмены"
	msgSlotNotFound       = "слот не найден"
	msgNotBookedByUser    = "слот забронирован не вами"
)

type Handler struct {
	useCase  CancelBookingUseCase
	notifier Notifier
	logger   Logger
}

// NewHandler notifier может быть nil
func NewHandler(useCase CancelBookingUseCase, notifier Notifier, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		notifier: notifier,
		logger:   logger,
	}
}

// Handle POST /api/v1/owners/{ownerId}/slots/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookerID, _ := middleware.GetUserID(r.Context())

	ownerID, err := handlers.PathInt64(r, "ownerId")
	if err != nil {
		h.logger.Warn("POST /owners/{id}/slots/cancel - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /owners/{id}/slots/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerID, bookerID)
	if err != nil {
		h.logger.Warn("POST /owners/{id}/slots/cancel - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /owners/{id}/slots/cancel - Invalid input: owner_id=%d, booker_id=%d, error=%v", ownerID, bookerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, cancelBooking.ErrSlotNotFound):
			h.logger.Warn("POST /owners/{id}/slots/cancel - Slot not found: owner_id=%d, booker_id=%d, slot=%s %s",
				ownerID, bookerID, req.Date, req.Time)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, cancelBooking.ErrNotBookedByUser):
			h.logger.Warn("POST /owners/{id}/slots/cancel - Not booked by user: owner_id=%d, booker_id=%d", ownerID, bookerID)
			handlers.RespondForbidden(w, msgNotBookedByUser)

		default:
			h.logger.Error("POST /owners/{id}/slots/cancel - Failed to cancel booking: owner_id=%d, booker_id=%d, error=%v",
				ownerID, bookerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.notify(result)

	h.logger.Info("POST /owners/{id}/slots/cancel - Cancellation processed: status=%s, slot_id=%d, owner_id=%d, booker_id=%d",
		result.Status, result.SlotID, ownerID, bookerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// notify уведомляет получившего слот или владельца об освободившемся слоте,
// а также пропущенных в очереди пользователей
func (h *Handler) notify(result *cancelBooking.Response) {
	if h.notifier == nil {
		return
	}

	event := func(kind notifier.Kind, recipient int64) notifications.Event {
		return notifications.Event{
			Kind:      kind,
			Recipient: recipient,
			OwnerID:   result.OwnerID,
			Date:      result.Date,
			Time:      result.Time,
		}
	}

	for _, userID := range result.SkippedUserIDs {
		h.notifier.Dispatch(event(notifier.KindSkipped, userID))
	}

	switch result.Status {
	case domain.CancelPromoted:
		if promoted := ptr.Value(result.PromotedUserID); promoted != 0 {
			h.notifier.Dispatch(event(notifier.KindPromoted, promoted))
		}
	case domain.CancelFreed:
		h.notifier.Dispatch(event(notifier.KindCancelled, result.OwnerID))
	}
}
