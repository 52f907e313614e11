package provision_schedule

import (
	"context"

	provisionSchedule "github.com/m04kA/SMC-SlotBookingService/internal/usecase/provision_schedule"
)

type ProvisionScheduleUseCase interface {
	Execute(ctx context.Context, req *provisionSchedule.Request) (*provisionSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
