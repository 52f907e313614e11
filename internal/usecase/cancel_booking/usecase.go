package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/internal/infra/lock"
	slotRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
	waitlistRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/waitlist"
)

const operation = "cancel"

// UseCase use case для отмены бронирования.
// Держатель слота освобождает его, и слот переходит к первому в листе ожидания.
// Пользователь из листа ожидания просто покидает очередь.
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

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: owner=%d, booker=%d, date=%s, time=%s",
		req.OwnerID, req.BookerID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Та же блокировка, что и у claim
	release, err := uc.locker.Acquire(ctx, lock.SlotKey(req.OwnerID, req.Date, req.Time))
	if err != nil {
		uc.logger.Error("CancelBooking: failed to acquire slot lock: %v", err)
		return nil, fmt.Errorf("%w: acquire slot lock: %w", ErrInternal, err)
	}
	defer release()

	var result *Response

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		result = &Response{
			OwnerID: req.OwnerID,
			Date:    domain.DateOnly(req.Date),
			Time:    req.Time,
		}

		target, err := uc.resolve(txCtx, req.OwnerID, req)
		if err != nil {
			return err
		}
		result.SlotID = target.ID

		mirror, err := uc.resolve(txCtx, req.BookerID, req)
		if err != nil {
			return err
		}

		// 3. Пользователь не держит слот: либо выходит из очереди, либо ошибка
		if !target.IsBookedBy(req.BookerID) {
			queued, err := uc.waitlistRepo.Exists(txCtx, target.ID, req.BookerID)
			if err != nil {
				uc.logger.Error("CancelBooking: failed to check waitlist: %v", err)
				return fmt.Errorf("%w: check waitlist: %w", ErrInternal, err)
			}
			if !queued {
				uc.logger.Warn("CancelBooking: slot id=%d is not booked by user=%d", target.ID, req.BookerID)
				return ErrNotBookedByUser
			}

			if err := uc.waitlistRepo.Dequeue(txCtx, target.ID, req.BookerID); err != nil {
				uc.logger.Error("CancelBooking: failed to dequeue user=%d: %v", req.BookerID, err)
				return fmt.Errorf("%w: dequeue: %w", ErrInternal, err)
			}

			result.Status = domain.CancelWithdrawn
			return nil
		}

		// 4. Возвращаем пользователю его время
		if mirror.IsBookedBy(req.OwnerID) {
			if err := uc.slotRepo.SetAvailable(txCtx, mirror.ID, true); err != nil {
				uc.logger.Error("CancelBooking: failed to release mirrored slot id=%d: %v", mirror.ID, err)
				return fmt.Errorf("%w: release mirrored slot: %w", ErrInternal, err)
			}
		} else {
			uc.logger.Warn("CancelBooking: mirrored slot id=%d of user=%d is not reserved for owner=%d, left as is",
				mirror.ID, req.BookerID, req.OwnerID)
		}

		// 5. Передаём слот следующему в очереди
		promoted, err := uc.promoteNext(txCtx, req, target, result)
		if err != nil {
			return err
		}

		if promoted == nil {
			if err := uc.slotRepo.SetAvailable(txCtx, target.ID, false); err != nil {
				uc.logger.Error("CancelBooking: failed to free slot id=%d: %v", target.ID, err)
				return fmt.Errorf("%w: free slot: %w", ErrInternal, err)
			}
			result.Status = domain.CancelFreed
			return nil
		}

		result.Status = domain.CancelPromoted
		result.PromotedUserID = promoted
		return nil
	})

	if err != nil {
		uc.recordOutcome(outcomeOf(err))
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrNotBookedByUser) {
			return nil, err
		}
		if !errors.Is(err, ErrInternal) {
			uc.logger.Error("CancelBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction: %w", ErrInternal, err)
		}
		return nil, err
	}

	uc.recordOutcome(string(result.Status))
	if result.PromotedUserID != nil {
		uc.logger.Info("CancelBooking: slot id=%d promoted to user=%d", result.SlotID, *result.PromotedUserID)
	} else {
		uc.logger.Info("CancelBooking: slot id=%d %s by user=%d", result.SlotID, result.Status, req.BookerID)
	}

	return result, nil
}

// promoteNext отдаёт слот первому подходящему пользователю из очереди.
// Возвращает nil, если очередь пуста или в ней никто не свободен в это время.
func (uc *UseCase) promoteNext(ctx context.Context, req *Request, target *domain.Slot, result *Response) (*int64, error) {
	for {
		entry, err := uc.waitlistRepo.PeekHighestPriority(ctx, target.ID)
		if errors.Is(err, waitlistRepo.ErrWaitlistEmpty) {
			return nil, nil
		}
		if err != nil {
			uc.logger.Error("CancelBooking: failed to peek waitlist: %v", err)
			return nil, fmt.Errorf("%w: peek waitlist: %w", ErrInternal, err)
		}

		if err := uc.waitlistRepo.Dequeue(ctx, target.ID, entry.BookerID); err != nil {
			uc.logger.Error("CancelBooking: failed to dequeue user=%d: %v", entry.BookerID, err)
			return nil, fmt.Errorf("%w: dequeue: %w", ErrInternal, err)
		}

		mirror, err := uc.slotRepo.ResolveSlotForUpdate(ctx, entry.BookerID, req.Date, req.Time)
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			uc.logger.Warn("CancelBooking: promoted user=%d has no slot at %s %s, nothing to mirror",
				entry.BookerID, req.Date.Format(domain.DateFormat), req.Time)
		case err != nil:
			uc.logger.Error("CancelBooking: failed to resolve slot of user=%d: %v", entry.BookerID, err)
			return nil, fmt.Errorf("%w: resolve promoted slot: %w", ErrInternal, err)
		case !mirror.IsBookable():
			uc.logger.Warn("CancelBooking: waitlisted user=%d is no longer available, skipped", entry.BookerID)
			result.SkippedUserIDs = append(result.SkippedUserIDs, entry.BookerID)
			continue
		default:
			if err := uc.slotRepo.Reserve(ctx, mirror.ID, req.OwnerID); err != nil {
				uc.logger.Error("CancelBooking: failed to reserve slot id=%d: %v", mirror.ID, err)
				return nil, fmt.Errorf("%w: reserve promoted slot: %w", ErrInternal, err)
			}
		}

		if err := uc.slotRepo.SetBooked(ctx, target.ID, entry.BookerID); err != nil {
			uc.logger.Error("CancelBooking: failed to book slot id=%d: %v", target.ID, err)
			return nil, fmt.Errorf("%w: set booked: %w", ErrInternal, err)
		}

		if err := uc.analyticsRepo.RecordBooking(ctx, req.OwnerID, entry.BookerID, req.Time); err != nil {
			uc.logger.Error("CancelBooking: failed to record booking: %v", err)
			return nil, fmt.Errorf("%w: record booking: %w", ErrInternal, err)
		}

		promoted := entry.BookerID
		return &promoted, nil
	}
}

func (uc *UseCase) resolve(ctx context.Context, userID int64, req *Request) (*domain.Slot, error) {
	s, err := uc.slotRepo.ResolveSlotForUpdate(ctx, userID, req.Date, req.Time)
	if errors.Is(err, slotRepo.ErrSlotNotFound) {
		uc.logger.Warn("CancelBooking: slot of user=%d at %s %s not found",
			userID, req.Date.Format(domain.DateFormat), req.Time)
		return nil, ErrSlotNotFound
	}
	if err != nil {
		uc.logger.Error("CancelBooking: failed to resolve slot of user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: resolve slot: %w", ErrInternal, err)
	}
	return s, nil
}

func (uc *UseCase) recordOutcome(outcome string) {
	if uc.outcomes != nil {
		uc.outcomes.IncBookingOutcome(operation, outcome)
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrSlotNotFound):
		return "slot_not_found"
	case errors.Is(err, ErrNotBookedByUser):
		return "not_booked_by_user"
	default:
		return "error"
	}
}
