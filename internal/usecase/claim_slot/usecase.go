package claim_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/lock"
	slotRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
	waitlistRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/waitlist"
)

const operation = "claim"

// UseCase use case для бронирования слота.
// Свободный слот бронируется сразу, занятый ставит пользователя в лист ожидания.
type UseCase struct {
	slotRepo      SlotRepository
	waitlistRepo  WaitlistRepository
	analyticsRepo AnalyticsRepository
	txManager     TransactionManager
	locker        Locker
	outcomes      OutcomeRecorder
	logger        Logger
}

// NewUseCase создает новый экземпляр use case; outcomes может быть nil
func NewUseCase(
	slotRepo SlotRepository,
	waitlistRepo WaitlistRepository,
	analyticsRepo AnalyticsRepository,
	txManager TransactionManager,
	locker Locker,
	outcomes OutcomeRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		waitlistRepo:  waitlistRepo,
		analyticsRepo: analyticsRepo,
		txManager:     txManager,
		locker:        locker,
		outcomes:      outcomes,
		logger:        logger,
	}
}

// Execute выполняет use case бронирования слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ClaimSlot: owner=%d, booker=%d, date=%s, time=%s",
		req.OwnerID, req.BookerID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ClaimSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Блокируем слот, чтобы claim/cancel по нему шли строго по очереди
	release, err := uc.locker.Acquire(ctx, lock.SlotKey(req.OwnerID, req.Date, req.Time))
	if err != nil {
		uc.logger.Error("ClaimSlot: failed to acquire slot lock: %v", err)
		return nil, fmt.Errorf("%w: acquire slot lock: %w", ErrInternal, err)
	}
	defer release()

	var result *Response

	// 3. Все чтения и записи в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result = nil

		target, err := uc.resolve(txCtx, req.OwnerID, req)
		if err != nil {
			return err
		}

		mirror, err := uc.resolve(txCtx, req.BookerID, req)
		if err != nil {
			return err
		}

		// 3.1. У пользователя это время должно быть свободно в своём расписании
		if !mirror.IsBookable() {
			uc.logger.Warn("ClaimSlot: booker=%d is not available at %s %s",
				req.BookerID, req.Date.Format(domain.DateFormat), req.Time)
			return ErrBookerUnavailable
		}

		// 3.2. Повторная постановка в очередь запрещена
		queued, err := uc.waitlistRepo.Exists(txCtx, target.ID, req.BookerID)
		if err != nil {
			uc.logger.Error("ClaimSlot: failed to check waitlist: %v", err)
			return fmt.Errorf("%w: check waitlist: %w", ErrInternal, err)
		}
		if queued {
			uc.logger.Warn("ClaimSlot: booker=%d already queued for slot id=%d", req.BookerID, target.ID)
			return ErrAlreadyQueued
		}

		// 3.3. Слот занят - встаём в лист ожидания
		if target.IsBooked() {
			priority, err := uc.waitlistRepo.Enqueue(txCtx, target.ID, req.BookerID)
			if errors.Is(err, waitlistRepo.ErrAlreadyQueued) {
				return ErrAlreadyQueued
			}
			if err != nil {
				uc.logger.Error("ClaimSlot: failed to enqueue booker=%d: %v", req.BookerID, err)
				return fmt.Errorf("%w: enqueue: %w", ErrInternal, err)
			}

			result = &Response{Status: domain.ClaimQueued, SlotID: target.ID, Priority: priority}
			return nil
		}

		if !target.Available {
			uc.logger.Warn("ClaimSlot: slot id=%d is blocked by owner", target.ID)
			return ErrSlotUnavailable
		}

		// 3.4. Бронируем слот владельца и резервируем зеркальный слот пользователя
		if err := uc.slotRepo.SetBooked(txCtx, target.ID, req.BookerID); err != nil {
			uc.logger.Error("ClaimSlot: failed to book slot id=%d: %v", target.ID, err)
			return fmt.Errorf("%w: set booked: %w", ErrInternal, err)
		}

		if err := uc.slotRepo.Reserve(txCtx, mirror.ID, req.OwnerID); err != nil {
			uc.logger.Error("ClaimSlot: failed to reserve mirrored slot id=%d: %v", mirror.ID, err)
			return fmt.Errorf("%w: reserve mirrored slot: %w", ErrInternal, err)
		}

		if err := uc.analyticsRepo.RecordBooking(txCtx, req.OwnerID, req.BookerID, req.Time); err != nil {
			uc.logger.Error("ClaimSlot: failed to record booking: %v", err)
			return fmt.Errorf("%w: record booking: %w", ErrInternal, err)
		}

		result = &Response{Status: domain.ClaimBooked, SlotID: target.ID}
		return nil
	})

	if err != nil {
		uc.recordOutcome(outcomeOf(err))
		if isBusinessError(err) {
			return nil, err
		}
		if !errors.Is(err, ErrInternal) {
			uc.logger.Error("ClaimSlot: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction: %w", ErrInternal, err)
		}
		return nil, err
	}

	uc.recordOutcome(string(result.Status))
	uc.logger.Info("ClaimSlot: slot id=%d %s by booker=%d", result.SlotID, result.Status, req.BookerID)

	return result, nil
}

func (uc *UseCase) resolve(ctx context.Context, userID int64, req *Request) (*domain.Slot, error) {
	s, err := uc.slotRepo.ResolveSlotForUpdate(ctx, userID, req.Date, req.Time)
	if errors.Is(err, slotRepo.ErrSlotNotFound) {
		uc.logger.Warn("ClaimSlot: slot of user=%d at %s %s not found",
			userID, req.Date.Format(domain.DateFormat), req.Time)
		return nil, ErrSlotNotFound
	}
	if err != nil {
		uc.logger.Error("ClaimSlot: failed to resolve slot of user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: resolve slot: %w", ErrInternal, err)
	}
	return s, nil
}

func (uc *UseCase) recordOutcome(outcome string) {
	if uc.outcomes != nil {
		uc.outcomes.IncBookingOutcome(operation, outcome)
	}
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrSlotNotFound) ||
		errors.Is(err, ErrSlotUnavailable) ||
		errors.Is(err, ErrBookerUnavailable) ||
		errors.Is(err, ErrAlreadyQueued)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrSlotNotFound):
		return "slot_not_found"
	case errors.Is(err, ErrSlotUnavailable):
		return "slot_unavailable"
	case errors.Is(err, ErrBookerUnavailable):
		return "booker_unavailable"
	case errors.Is(err, ErrAlreadyQueued):
		return "already_queued"
	default:
		return "error"
	}
}
