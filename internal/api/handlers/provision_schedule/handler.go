package provision_schedule

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/api/middleware"
	provisionSchedule "github.com/m04kA/SMC-SlotBookingService/internal/usecase/provision_schedule"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца"
	msgForbidden      = "публиковать расписание может только его владелец"
)

type Handler struct {
	useCase ProvisionScheduleUseCase
	logger  Logger
}

func NewHandler(useCase ProvisionScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/owners/{ownerId}/schedule/provision
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, err := handlers.PathInt64(r, "ownerId")
	if err != nil {
		h.logger.Warn("POST /owners/{id}/schedule/provision - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	if callerID, _ := middleware.GetUserID(r.Context()); callerID != ownerID {
		h.logger.Warn("POST /owners/{id}/schedule/provision - Access denied: owner_id=%d, caller_id=%d", ownerID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &provisionSchedule.Request{OwnerID: ownerID})
	if err != nil {
		if errors.Is(err, provisionSchedule.ErrInvalidInput) {
			h.logger.Warn("POST /owners/{id}/schedule/provision - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidOwnerID)
			return
		}
		h.logger.Error("POST /owners/{id}/schedule/provision - Failed to provision schedule: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /owners/{id}/schedule/provision - Schedule provisioned: owner_id=%d, created=%d, pruned=%d",
		ownerID, len(result.CreatedDays), result.PrunedDays)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
