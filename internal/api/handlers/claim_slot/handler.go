package claim_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/notifications"
	claimSlot "github.com/m04kA/SMC-SlotBookingService/internal/usecase/claim_slot"
)

const (
	msgInvalidOwnerID     = "некорректный ID владельца"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "слот закрыт владельцем"
	msgBookerUnavailable  = "у вас уже занято это время"
	msgAlreadyQueued      = "вы уже в листе ожидания этого слота"
)

type Handler struct {
	useCase  ClaimSlotUseCase
	notifier Notifier
	logger   Logger
}

// NewHandler notifier может быть nil
func NewHandler(useCase ClaimSlotUseCase, notifier Notifier, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		notifier: notifier,
		logger:   logger,
	}
}

// Handle POST /api/v1/owners/{ownerId}/slots/claim
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookerID, _ := middleware.GetUserID(r.Context())

	ownerID, err := handlers.PathInt64(r, "ownerId")
	if err != nil {
		h.logger.Warn("POST /owners/{id}/slots/claim - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	var req ClaimSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /owners/{id}/slots/claim - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerID, bookerID)
	if err != nil {
		h.logger.Warn("POST /owners/{id}/slots/claim - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, claimSlot.ErrInvalidInput):
			h.logger.Warn("POST /owners/{id}/slots/claim - Invalid input: owner_id=%d, booker_id=%d, error=%v", ownerID, bookerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, claimSlot.ErrSlotNotFound):
			h.logger.Warn("POST /owners/{id}/slots/claim - Slot not found: owner_id=%d, booker_id=%d, slot=%s %s",
				ownerID, bookerID, req.Date, req.Time)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, claimSlot.ErrSlotUnavailable):
			h.logger.Warn("POST /owners/{id}/slots/claim - Slot blocked by owner: owner_id=%d, booker_id=%d", ownerID, bookerID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, claimSlot.ErrBookerUnavailable):
			h.logger.Warn("POST /owners/{id}/slots/claim - Booker unavailable: owner_id=%d, booker_id=%d", ownerID, bookerID)
			handlers.RespondConflict(w, msgBookerUnavailable)

		case errors.Is(err, claimSlot.ErrAlreadyQueued):
			h.logger.Warn("POST /owners/{id}/slots/claim - Already queued: owner_id=%d, booker_id=%d", ownerID, bookerID)
			handlers.RespondConflict(w, msgAlreadyQueued)

		default:
			h.logger.Error("POST /owners/{id}/slots/claim - Failed to claim slot: owner_id=%d, booker_id=%d, error=%v",
				ownerID, bookerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Status == domain.ClaimQueued {
		status = http.StatusAccepted
	} else if h.notifier != nil {
		// владелец узнаёт о новой встрече
		h.notifier.Dispatch(notifications.Event{
			Kind:      notifier.KindBooked,
			Recipient: ownerID,
			OwnerID:   ownerID,
			Date:      useCaseReq.Date,
			Time:      useCaseReq.Time,
		})
	}

	h.logger.Info("POST /owners/{id}/slots/claim - Claim processed: status=%s, slot_id=%d, owner_id=%d, booker_id=%d",
		result.Status, result.SlotID, ownerID, bookerID)
	handlers.RespondJSON(w, status, FromUseCaseResponse(result))
}
