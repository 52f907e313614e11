package get_slot_view

import (
	"context"

	getSlotView "github.com/m04kA/SMC-SlotBookingService/internal/usecase/get_slot_view"
)

type GetSlotViewUseCase interface {
	Execute(ctx context.Context, req *getSlotView.Request) (*getSlotView.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
