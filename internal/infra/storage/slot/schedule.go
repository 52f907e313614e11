package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

// CreateScheduleDay создает день расписания со слотами на указанное время.
// Все слоты создаются доступными и свободными.
// Вызывать внутри транзакции, чтобы день и слоты появились атомарно.
func (r *Repository) CreateScheduleDay(ctx context.Context, ownerID int64, date time.Time, times []types.TimeOfDay) (*domain.ScheduleDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_days").
		Columns("owner_id", "schedule_date").
		Values(ownerID, date.Format(domain.DateFormat)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateScheduleDay - build insert query: %v", ErrBuildQuery, err)
	}

	day := &domain.ScheduleDay{
		OwnerID: ownerID,
		Date:    domain.DateOnly(date),
	}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &day.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrScheduleDayExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateScheduleDay - execute insert: %w", ErrExecQuery, err)
	}

	if len(times) == 0 {
		return day, nil
	}

	slotsInsert := psqlbuilder.Insert("slots").
		Columns("schedule_id", "hour", "minute", "available")
	for _, t := range times {
		slotsInsert = slotsInsert.Values(day.ID, t.Hour, t.Minute, true)
	}

	query, args, err = slotsInsert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateScheduleDay - build slots insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateScheduleDay - insert slots: %w", ErrExecQuery, err)
	}

	return day, nil
}

// GetScheduleDay получает день расписания владельца
func (r *Repository) GetScheduleDay(ctx context.Context, ownerID int64, date time.Time) (*domain.ScheduleDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "owner_id", "schedule_date", "created_at").
		From("schedule_days").
		Where(squirrel.Eq{
			"owner_id":      ownerID,
			"schedule_date": date.Format(domain.DateFormat),
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleDay - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.ScheduleDay
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &day.OwnerID, &day.Date, &day.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleDay - scan day: %w", ErrScanRow, err)
	}

	day.Date = domain.DateOnly(day.Date)
	return &day, nil
}

// GetLastScheduleDate возвращает последнюю опубликованную дату владельца, nil если дней нет
func (r *Repository) GetLastScheduleDate(ctx context.Context, ownerID int64) (*time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("MAX(schedule_date)").
		From("schedule_days").
		Where(squirrel.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLastScheduleDate - build select query: %v", ErrBuildQuery, err)
	}

	var last sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&last); err != nil {
		return nil, fmt.Errorf("%w: GetLastScheduleDate - scan: %w", ErrScanRow, err)
	}

	if !last.Valid {
		return nil, nil
	}
	date := domain.DateOnly(last.Time)
	return &date, nil
}

// CountScheduleDays считает дни владельца начиная с from (включительно)
func (r *Repository) CountScheduleDays(ctx context.Context, ownerID int64, from time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("schedule_days").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.GtOrEq{"schedule_date": from.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountScheduleDays - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountScheduleDays - scan: %w", ErrScanRow, err)
	}

	return count, nil
}

// DeletePastDays удаляет дни владельца раньше today вместе со слотами и листами ожидания
func (r *Repository) DeletePastDays(ctx context.Context, ownerID int64, today time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_days").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Lt{"schedule_date": today.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeletePastDays - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeletePastDays - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeletePastDays - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// ListOwners возвращает всех владельцев, у которых есть хотя бы один день расписания
func (r *Repository) ListOwners(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT owner_id").
		From("schedule_days").
		OrderBy("owner_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOwners - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOwners - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	owners := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListOwners - scan owner_id: %v", ErrScanRow, err)
		}
		owners = append(owners, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOwners - rows error: %v", ErrScanRow, err)
	}

	return owners, nil
}
