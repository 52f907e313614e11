package provision_schedule

import (
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	provisionSchedule "github.com/m04kA/SMC-SlotBookingService/internal/usecase/provision_schedule"
)

// ProvisionResponse HTTP response model
type ProvisionResponse struct {
	OwnerID     int64    `json:"ownerId"`
	CreatedDays []string `json:"createdDays"`
	PrunedDays  int64    `json:"prunedDays"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *provisionSchedule.Response) *ProvisionResponse {
	days := make([]string, 0, len(resp.CreatedDays))
	for _, d := range resp.CreatedDays {
		days = append(days, d.Format(domain.DateFormat))
	}
	return &ProvisionResponse{
		OwnerID:     resp.OwnerID,
		CreatedDays: days,
		PrunedDays:  resp.PrunedDays,
	}
}
