package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-SlotBookingService/internal/service/analytics/models"
)

// Service запросы к агрегатам бронирований
type Service struct {
	analyticsRepo AnalyticsRepository
	userClient    UserServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса; userClient может быть nil, тогда имена не подставляются
func NewService(analyticsRepo AnalyticsRepository, userClient UserServiceClient, logger Logger) *Service {
	return &Service{
		analyticsRepo: analyticsRepo,
		userClient:    userClient,
		logger:        logger,
	}
}

// MostFrequentSlot возвращает самое популярное время владельца или nil
func (s *Service) MostFrequentSlot(ctx context.Context, ownerID int64) (*domain.SlotFrequency, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	freq, err := s.analyticsRepo.MostFrequentSlot(ctx, ownerID)
	if err != nil {
		s.logger.Error("MostFrequentSlot: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: MostFrequentSlot - repository error: %v", ErrInternal, err)
	}

	return freq, nil
}

// TopBookers возвращает до limit самых активных пользователей владельца
func (s *Service) TopBookers(ctx context.Context, ownerID int64, limit int) ([]*domain.BookerTotal, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if limit <= 0 {
		limit = domain.DefaultTopBookersLimit
	}
	if limit > domain.MaxTopBookersLimit {
		return nil, fmt.Errorf("%w: limit must not exceed %d", ErrInvalidInput, domain.MaxTopBookersLimit)
	}

	top, err := s.analyticsRepo.TopBookers(ctx, ownerID, limit)
	if err != nil {
		s.logger.Error("TopBookers: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: TopBookers - repository error: %v", ErrInternal, err)
	}

	return top, nil
}

// GetSummary собирает обе метрики и подставляет имена пользователей, если UserService доступен
func (s *Service) GetSummary(ctx context.Context, req *models.GetAnalyticsRequest) (*models.AnalyticsResponse, error) {
	s.logger.Info("GetSummary: owner=%d, limit=%d", req.OwnerID, req.Limit)

	freq, err := s.MostFrequentSlot(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}

	top, err := s.TopBookers(ctx, req.OwnerID, req.Limit)
	if err != nil {
		return nil, err
	}

	resp := &models.AnalyticsResponse{
		OwnerID:          req.OwnerID,
		MostFrequentSlot: models.FromDomainSlotFrequency(freq),
		TopBookers:       models.FromDomainBookerTotals(top),
	}

	s.enrichNames(ctx, resp.TopBookers)
	return resp, nil
}

func (s *Service) enrichNames(ctx context.Context, bookers []models.BookerTotalResponse) {
	if s.userClient == nil {
		return
	}

	for i := range bookers {
		user, err := s.userClient.GetUserWithGracefulDegradation(ctx, bookers[i].BookerID)
		if errors.Is(err, userservice.ErrServiceDegraded) {
			// Сервис недоступен, остальные запросы тоже не пройдут
			s.logger.Warn("GetSummary: user names skipped: %v", err)
			return
		}
		if err != nil {
			continue
		}
		bookers[i].Name = user.Name
	}
}
