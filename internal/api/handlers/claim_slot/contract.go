package claim_slot

//go:generate mockgen -source=contract.go -destination=mock_contract.go -package=claim_slot

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/notifications"
	claimSlot "github.com/m04kA/SMC-SlotBookingService/internal/usecase/claim_slot"
)

type ClaimSlotUseCase interface {
	Execute(ctx context.Context, req *claimSlot.Request) (*claimSlot.Response, error)
}

// Notifier отправляет уведомление в фоне после коммита
type Notifier interface {
	Dispatch(ev notifications.Event)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
