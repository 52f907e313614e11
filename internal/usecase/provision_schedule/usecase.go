package provision_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SlotBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// UseCase поддерживает скользящее окно расписания владельца:
// удаляет прошедшие дни и досоздаёт недостающие впереди.
// Существующие дни не меняются.
type UseCase struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
	days         int
	times        []types.TimeOfDay
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	cfg Config,
	logger Logger,
) (*UseCase, error) {
	if cfg.Days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", ErrInvalidInput)
	}

	times, err := cfg.Grid.Times()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &UseCase{
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
		days:         cfg.Days,
		times:        times,
	}, nil
}

// Execute публикует окно расписания для одного владельца
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	today := domain.DateOnly(uc.timeProvider.Now())
	resp := &Response{OwnerID: req.OwnerID, CreatedDays: make([]time.Time, 0)}

	pruned, err := uc.slotRepo.DeletePastDays(ctx, req.OwnerID, today)
	if err != nil {
		uc.logger.Error("ProvisionSchedule: failed to prune past days of owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: prune past days: %w", ErrInternal, err)
	}
	resp.PrunedDays = pruned

	start, err := uc.firstMissingDay(ctx, req.OwnerID, today)
	if err != nil {
		uc.logger.Error("ProvisionSchedule: failed to inspect schedule of owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: inspect schedule: %w", ErrInternal, err)
	}

	for i := start; i < uc.days; i++ {
		date := today.AddDate(0, 0, i)

		// День и его слоты создаются атомарно
		err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
			_, err := uc.slotRepo.CreateScheduleDay(txCtx, req.OwnerID, date, uc.times)
			return err
		})
		if errors.Is(err, slotRepo.ErrScheduleDayExists) {
			continue
		}
		if err != nil {
			uc.logger.Error("ProvisionSchedule: failed to create day %s for owner=%d: %v",
				date.Format(domain.DateFormat), req.OwnerID, err)
			return nil, fmt.Errorf("%w: create day: %w", ErrInternal, err)
		}

		resp.CreatedDays = append(resp.CreatedDays, date)
	}

	uc.logger.Info("ProvisionSchedule: owner=%d, created=%d, pruned=%d",
		req.OwnerID, len(resp.CreatedDays), resp.PrunedDays)

	return resp, nil
}

// firstMissingDay возвращает смещение от today, с которого окно нужно досоздавать.
// Если между today и последним днём есть пропуски, проверяется всё окно.
func (uc *UseCase) firstMissingDay(ctx context.Context, ownerID int64, today time.Time) (int, error) {
	last, err := uc.slotRepo.GetLastScheduleDate(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	if last == nil || last.Before(today) {
		return 0, nil
	}

	span := 0
	for d := today; !d.After(*last); d = d.AddDate(0, 0, 1) {
		span++
	}

	count, err := uc.slotRepo.CountScheduleDays(ctx, ownerID, today)
	if err != nil {
		return 0, err
	}
	if count < span {
		return 0, nil
	}

	return span, nil
}

// ExecuteAll прогоняет Execute для всех владельцев с расписанием.
// Ошибка по одному владельцу не останавливает остальных.
func (uc *UseCase) ExecuteAll(ctx context.Context) (*Summary, error) {
	owners, err := uc.slotRepo.ListOwners(ctx)
	if err != nil {
		uc.logger.Error("ProvisionSchedule: failed to list owners: %v", err)
		return nil, fmt.Errorf("%w: list owners: %w", ErrInternal, err)
	}

	summary := &Summary{Owners: len(owners)}
	for _, ownerID := range owners {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		resp, err := uc.Execute(ctx, &Request{OwnerID: ownerID})
		if err != nil {
			summary.Failed = append(summary.Failed, ownerID)
			continue
		}
		summary.CreatedDays += len(resp.CreatedDays)
		summary.PrunedDays += resp.PrunedDays
	}

	uc.logger.Info("ProvisionSchedule: processed %d owners, created=%d, pruned=%d, failed=%d",
		summary.Owners, summary.CreatedDays, summary.PrunedDays, len(summary.Failed))

	return summary, nil
}
