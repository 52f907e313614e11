package toggle_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
)

// UseCase владелец вручную открывает или закрывает слот.
// Бронь и лист ожидания не затрагиваются.
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

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ToggleSlot: owner=%d, date=%s, time=%s", req.OwnerID, req.Date.Format(domain.DateFormat), req.Time)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ToggleSlot: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		s, err := uc.slotRepo.ResolveSlotForUpdate(txCtx, req.OwnerID, req.Date, req.Time)
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("ToggleSlot: slot not found")
			return ErrSlotNotFound
		}
		if err != nil {
			uc.logger.Error("ToggleSlot: failed to resolve slot: %v", err)
			return fmt.Errorf("%w: resolve slot: %w", ErrInternal, err)
		}

		available, err := uc.slotRepo.ToggleAvailability(txCtx, s.ID)
		if err != nil {
			uc.logger.Error("ToggleSlot: failed to toggle slot id=%d: %v", s.ID, err)
			return fmt.Errorf("%w: toggle: %w", ErrInternal, err)
		}

		result = &Response{SlotID: s.ID, Available: available, BookedBy: s.BookedBy}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("ToggleSlot: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction: %w", ErrInternal, err)
	}

	uc.logger.Info("ToggleSlot: slot id=%d available=%t", result.SlotID, result.Available)
	return result, nil
}
