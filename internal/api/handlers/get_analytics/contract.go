package get_analytics

import (
	"context"

	"github.com/m04kA/SMC-SlotBookingService/internal/service/analytics/models"
)

type AnalyticsService interface {
	GetSummary(ctx context.Context, req *models.GetAnalyticsRequest) (*models.AnalyticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
