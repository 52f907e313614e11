package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/bookings/models"
)

// Service запросы на чтение встреч и листов ожидания
type Service struct {
	slotRepo     SlotRepository
	waitlistRepo WaitlistRepository
	userClient   UserServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса; userClient может быть nil
func NewService(
	slotRepo SlotRepository,
	waitlistRepo WaitlistRepository,
	userClient UserServiceClient,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		waitlistRepo: waitlistRepo,
		userClient:   userClient,
		logger:       logger,
	}
}

// GetUserBookings получает встречи пользователя в чужих расписаниях
func (s *Service) GetUserBookings(ctx context.Context, userID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", userID)

	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	bookings, err := s.slotRepo.ListBookedBy(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainBookingList(userID, bookings)
	s.enrichOwnerNames(ctx, resp.Bookings)

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", resp.Total, userID)
	return resp, nil
}

// GetWaitlist получает лист ожидания слота
func (s *Service) GetWaitlist(ctx context.Context, req *models.GetWaitlistRequest) (*models.WaitlistResponse, error) {
	s.logger.Info("GetWaitlist: owner=%d, date=%s, time=%s", req.OwnerID, req.Date.Format(domain.DateFormat), req.Time)

	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	slot, err := s.slotRepo.ResolveSlot(ctx, req.OwnerID, req.Date, req.Time)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetWaitlist: slot not found")
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetWaitlist: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWaitlist - resolve slot: %v", ErrInternal, err)
	}

	entries, err := s.waitlistRepo.ListAll(ctx, slot.ID)
	if err != nil {
		s.logger.Error("GetWaitlist: repository error for slot id=%d: %v", slot.ID, err)
		return nil, fmt.Errorf("%w: GetWaitlist - list entries: %v", ErrInternal, err)
	}

	return models.FromDomainWaitlist(slot, entries), nil
}

// enrichOwnerNames подставляет имена владельцев; при недоступности UserService ответ отдаётся без имён
func (s *Service) enrichOwnerNames(ctx context.Context, bookings []models.BookingResponse) {
	if s.userClient == nil {
		return
	}

	names := make(map[int64]string)
	for i := range bookings {
		ownerID := bookings[i].OwnerID
		if name, ok := names[ownerID]; ok {
			bookings[i].OwnerName = name
			continue
		}

		user, err := s.userClient.GetUserWithGracefulDegradation(ctx, ownerID)
		if errors.Is(err, userservice.ErrServiceDegraded) {
			s.logger.Warn("GetUserBookings: owner names skipped: %v", err)
			return
		}
		if err != nil {
			names[ownerID] = ""
			continue
		}

		names[ownerID] = user.Name
		bookings[i].OwnerName = user.Name
	}
}
