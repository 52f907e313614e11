package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
)

const (
	codeUniqueViolation pq.ErrorCode = "23505"
	primaryKeyName                   = "waitlist_entries_pkey"
)

// Repository репозиторий листов ожидания.
// Приоритет - монотонный счётчик внутри слота: max(priority) + 1.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листов ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue ставит пользователя в конец листа ожидания слота и возвращает его приоритет.
// Безопасен при конкурентных вызовах, только если строка слота заблокирована в той же транзакции.
func (r *Repository) Enqueue(ctx context.Context, slotID int64, bookerID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := enqueueQuery(slotID, bookerID).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Enqueue - build insert query: %v", ErrBuildQuery, err)
	}

	var priority int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&priority)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation && pqErr.Constraint == primaryKeyName {
			return 0, ErrAlreadyQueued
		}
		return 0, fmt.Errorf("%w: Enqueue - execute insert: %w", ErrExecQuery, err)
	}

	return priority, nil
}

// enqueueQuery вычисляет следующий приоритет в том же INSERT
func enqueueQuery(slotID int64, bookerID int64) squirrel.InsertBuilder {
	nextPriority := squirrel.Select().
		Column(squirrel.Expr("?", slotID)).
		Column(squirrel.Expr("?", bookerID)).
		Column("COALESCE(MAX(priority), 0) + 1").
		From("waitlist_entries").
		Where(squirrel.Eq{"slot_id": slotID})

	return psqlbuilder.Insert("waitlist_entries").
		Columns("slot_id", "booker_id", "priority").
		Select(nextPriority).
		Suffix("RETURNING priority")
}

// PeekHighestPriority возвращает запись с наименьшим приоритетом (вставленную раньше всех)
func (r *Repository) PeekHighestPriority(ctx context.Context, slotID int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_id", "booker_id", "priority", "created_at").
		From("waitlist_entries").
		Where(squirrel.Eq{"slot_id": slotID}).
		OrderBy("priority ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: PeekHighestPriority - build select query: %v", ErrBuildQuery, err)
	}

	var entry domain.WaitlistEntry
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.SlotID,
		&entry.BookerID,
		&entry.Priority,
		&entry.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWaitlistEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: PeekHighestPriority - scan entry: %w", ErrScanRow, err)
	}

	return &entry, nil
}

// Dequeue удаляет пользователя из листа ожидания. Отсутствие записи не ошибка.
func (r *Repository) Dequeue(ctx context.Context, slotID int64, bookerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("waitlist_entries").
		Where(squirrel.Eq{"slot_id": slotID, "booker_id": bookerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Dequeue - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Dequeue - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// ListAll возвращает лист ожидания слота по возрастанию приоритета
func (r *Repository) ListAll(ctx context.Context, slotID int64) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_id", "booker_id", "priority", "created_at").
		From("waitlist_entries").
		Where(squirrel.Eq{"slot_id": slotID}).
		OrderBy("priority ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.WaitlistEntry, 0)
	for rows.Next() {
		var entry domain.WaitlistEntry
		if err := rows.Scan(&entry.SlotID, &entry.BookerID, &entry.Priority, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// Exists проверяет, стоит ли пользователь в листе ожидания слота
func (r *Repository) Exists(ctx context.Context, slotID int64, bookerID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("waitlist_entries").
		Where(squirrel.Eq{"slot_id": slotID, "booker_id": bookerID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: Exists - scan: %w", ErrScanRow, err)
	}

	return count > 0, nil
}
