package get_waitlist

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/bookings/models"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца"
	msgInvalidSlot    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotFound   = "слот не найден"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerId}/slots/waitlist
// Query params: date (YYYY-MM-DD), time (HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, err := handlers.PathInt64(r, "ownerId")
	if err != nil {
		h.logger.Warn("GET /owners/{id}/slots/waitlist - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	query := r.URL.Query()
	date, err := handlers.ParseDate(query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /owners/{id}/slots/waitlist - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}
	t, err := handlers.ParseTime(query.Get("time"))
	if err != nil {
		h.logger.Warn("GET /owners/{id}/slots/waitlist - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	result, err := h.service.GetWaitlist(r.Context(), &models.GetWaitlistRequest{OwnerID: ownerID, Date: date, Time: t})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrSlotNotFound):
			h.logger.Warn("GET /owners/{id}/slots/waitlist - Slot not found: owner_id=%d", ownerID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /owners/{id}/slots/waitlist - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("GET /owners/{id}/slots/waitlist - Failed to get waitlist: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owners/{id}/slots/waitlist - Waitlist retrieved successfully: slot_id=%d, entries=%d",
		result.SlotID, len(result.Entries))
	handlers.RespondJSON(w, http.StatusOK, result)
}
