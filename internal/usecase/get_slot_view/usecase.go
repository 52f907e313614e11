package get_slot_view

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
)

// UseCase use case для просмотра дня владельца
type UseCase struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute возвращает слоты дня с держателями и длиной листов ожидания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlotView: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	var slots []*domain.SlotView

	// День и слоты читаются из одного снимка
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		if _, err := uc.slotRepo.GetScheduleDay(txCtx, req.OwnerID, date); err != nil {
			if errors.Is(err, slotRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			return fmt.Errorf("%w: get schedule day: %w", ErrInternal, err)
		}

		views, err := uc.slotRepo.ListByOwnerAndDate(txCtx, req.OwnerID, date)
		if err != nil {
			return fmt.Errorf("%w: list slots: %w", ErrInternal, err)
		}
		slots = views
		return nil
	})

	if errors.Is(err, ErrScheduleNotFound) {
		uc.logger.Warn("GetSlotView: owner=%d has no schedule on %s", req.OwnerID, date.Format(domain.DateFormat))
		return nil, err
	}
	if err != nil {
		uc.logger.Error("GetSlotView: failed to load owner=%d day %s: %v", req.OwnerID, date.Format(domain.DateFormat), err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: transaction: %w", ErrInternal, err)
	}

	return &Response{OwnerID: req.OwnerID, Date: date, Slots: slots}, nil
}
