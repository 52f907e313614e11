package analytics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// Repository репозиторий счётчиков бронирований (owner, booker, time of day)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория аналитики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// RecordBooking увеличивает счётчик на 1, создавая его при первом бронировании
func (r *Repository) RecordBooking(ctx context.Context, ownerID int64, bookerID int64, t types.TimeOfDay) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := recordBookingQuery(ownerID, bookerID, t).ToSql()
	if err != nil {
		return fmt.Errorf("%w: RecordBooking - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RecordBooking - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

func recordBookingQuery(ownerID int64, bookerID int64, t types.TimeOfDay) squirrel.InsertBuilder {
	return psqlbuilder.Insert("appointment_stats").
		Columns("owner_id", "booker_id", "hour", "minute", "booking_count").
		Values(ownerID, bookerID, t.Hour, t.Minute, 1).
		Suffix("ON CONFLICT (owner_id, booker_id, hour, minute) DO UPDATE SET booking_count = appointment_stats.booking_count + 1")
}

// GetCounter возвращает значение счётчика, 0 если бронирований не было
func (r *Repository) GetCounter(ctx context.Context, ownerID int64, bookerID int64, t types.TimeOfDay) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_count").
		From("appointment_stats").
		Where(squirrel.Eq{
			"owner_id":  ownerID,
			"booker_id": bookerID,
			"hour":      t.Hour,
			"minute":    t.Minute,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: GetCounter - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetCounter - scan: %w", ErrScanRow, err)
	}

	return count, nil
}

// MostFrequentSlot возвращает время дня с наибольшим числом бронирований у владельца.
// При равенстве выбирается более раннее время. nil, если бронирований не было.
func (r *Repository) MostFrequentSlot(ctx context.Context, ownerID int64) (*domain.SlotFrequency, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := mostFrequentSlotQuery(ownerID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: MostFrequentSlot - build select query: %v", ErrBuildQuery, err)
	}

	var freq domain.SlotFrequency
	err = executor.QueryRowContext(ctx, query, args...).Scan(&freq.Time.Hour, &freq.Time.Minute, &freq.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: MostFrequentSlot - scan: %w", ErrScanRow, err)
	}

	return &freq, nil
}

// mostFrequentSlotQuery при равенстве total отдаёт более раннее время
func mostFrequentSlotQuery(ownerID int64) squirrel.SelectBuilder {
	return psqlbuilder.Select("hour", "minute", "SUM(booking_count) AS total").
		From("appointment_stats").
		Where(squirrel.Eq{"owner_id": ownerID}).
		GroupBy("hour", "minute").
		OrderBy("total DESC", "hour ASC", "minute ASC").
		Limit(1)
}

// TopBookers возвращает до limit пользователей с наибольшим числом бронирований у владельца.
// Сортировка: total по убыванию, затем booker_id по возрастанию.
func (r *Repository) TopBookers(ctx context.Context, ownerID int64, limit int) ([]*domain.BookerTotal, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booker_id", "SUM(booking_count) AS total").
		From("appointment_stats").
		Where(squirrel.Eq{"owner_id": ownerID}).
		GroupBy("booker_id").
		OrderBy("total DESC", "booker_id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: TopBookers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TopBookers - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookerTotal, 0, limit)
	for rows.Next() {
		var bt domain.BookerTotal
		if err := rows.Scan(&bt.BookerID, &bt.Total); err != nil {
			return nil, fmt.Errorf("%w: TopBookers - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &bt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TopBookers - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
