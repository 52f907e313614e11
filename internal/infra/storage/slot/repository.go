package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotBookingService/pkg/ptr"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

const codeUniqueViolation pq.ErrorCode = "23505"

var slotColumns = []string{
	"s.id",
	"s.schedule_id",
	"d.owner_id",
	"d.schedule_date",
	"s.hour",
	"s.minute",
	"s.available",
	"s.booked_by",
}

// Repository репозиторий слотов и дней расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ResolveSlot находит слот владельца по дате и времени
func (r *Repository) ResolveSlot(ctx context.Context, ownerID int64, date time.Time, t types.TimeOfDay) (*domain.Slot, error) {
	return r.resolve(ctx, ownerID, date, t, false)
}

// ResolveSlotForUpdate как ResolveSlot, но внутри транзакции блокирует строку слота (FOR UPDATE).
// Используется в критической секции claim/cancel.
func (r *Repository) ResolveSlotForUpdate(ctx context.Context, ownerID int64, date time.Time, t types.TimeOfDay) (*domain.Slot, error) {
	return r.resolve(ctx, ownerID, date, t, true)
}

func (r *Repository) resolve(ctx context.Context, ownerID int64, date time.Time, t types.TimeOfDay, forUpdate bool) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := resolveQuery(ownerID, date, t, forUpdate && dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveSlot - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ResolveSlot - scan slot: %w", ErrScanRow, err)
	}

	return slot, nil
}

// resolveQuery блокирует только строку слота, день расписания остаётся свободным
func resolveQuery(ownerID int64, date time.Time, t types.TimeOfDay, lock bool) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots s").
		Join("schedule_days d ON d.id = s.schedule_id").
		Where(squirrel.Eq{
			"d.owner_id":      ownerID,
			"d.schedule_date": date.Format(domain.DateFormat),
			"s.hour":          t.Hour,
			"s.minute":        t.Minute,
		})

	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF s")
	}
	return selectBuilder
}

// GetState возвращает доступность и держателя слота
func (r *Repository) GetState(ctx context.Context, slotID int64) (*domain.SlotState, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("available", "booked_by").
		From("slots").
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetState - build select query: %v", ErrBuildQuery, err)
	}

	var (
		state    domain.SlotState
		bookedBy sql.NullInt64
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&state.Available, &bookedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetState - scan state: %w", ErrScanRow, err)
	}

	state.BookedBy = nullableID(bookedBy)
	return &state, nil
}

// SetBooked отмечает, кто забронировал слот. Доступность слота не меняется.
func (r *Repository) SetBooked(ctx context.Context, slotID int64, bookerID int64) error {
	return r.update(ctx, "SetBooked", slotID, map[string]interface{}{
		"booked_by": bookerID,
	})
}

// Reserve резервирует зеркальный слот в календаре участника встречи:
// слот становится недоступным и указывает на другую сторону встречи
func (r *Repository) Reserve(ctx context.Context, slotID int64, counterpartID int64) error {
	return r.update(ctx, "Reserve", slotID, map[string]interface{}{
		"available": false,
		"booked_by": counterpartID,
	})
}

// SetAvailable снимает бронь со слота; restoreAvailable дополнительно возвращает available = true
func (r *Repository) SetAvailable(ctx context.Context, slotID int64, restoreAvailable bool) error {
	fields := map[string]interface{}{
		"booked_by": nil,
	}
	if restoreAvailable {
		fields["available"] = true
	}
	return r.update(ctx, "SetAvailable", slotID, fields)
}

// ToggleAvailability инвертирует available и возвращает новое значение. booked_by не трогается.
func (r *Repository) ToggleAvailability(ctx context.Context, slotID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("available", squirrel.Expr("NOT available")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Suffix("RETURNING available").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ToggleAvailability - build update query: %v", ErrBuildQuery, err)
	}

	var available bool
	err = executor.QueryRowContext(ctx, query, args...).Scan(&available)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrSlotNotFound
	}
	if err != nil {
		return false, fmt.Errorf("%w: ToggleAvailability - execute update: %w", ErrExecQuery, err)
	}

	return available, nil
}

// ListByOwnerAndDate возвращает слоты дня владельца по возрастанию времени
// вместе с длиной листа ожидания каждого слота
func (r *Repository) ListByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) ([]*domain.SlotView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.hour",
		"s.minute",
		"s.available",
		"s.booked_by",
		"(SELECT COUNT(*) FROM waitlist_entries w WHERE w.slot_id = s.id) AS waitlist_count",
	).
		From("slots s").
		Join("schedule_days d ON d.id = s.schedule_id").
		Where(squirrel.Eq{
			"d.owner_id":      ownerID,
			"d.schedule_date": date.Format(domain.DateFormat),
		}).
		OrderBy("s.hour ASC", "s.minute ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwnerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwnerAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	views := make([]*domain.SlotView, 0)
	for rows.Next() {
		var (
			view     domain.SlotView
			bookedBy sql.NullInt64
		)
		if err := rows.Scan(
			&view.SlotID,
			&view.Time.Hour,
			&view.Time.Minute,
			&view.Available,
			&bookedBy,
			&view.WaitlistCount,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByOwnerAndDate - scan row: %v", ErrScanRow, err)
		}
		view.BookedBy = nullableID(bookedBy)
		views = append(views, &view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwnerAndDate - rows error: %v", ErrScanRow, err)
	}

	return views, nil
}

// ListBookedBy возвращает слоты в чужих календарях, которые держит пользователь.
// Сортировка: сначала поздние даты, внутри дня по времени, затем по владельцу.
func (r *Repository) ListBookedBy(ctx context.Context, userID int64) ([]*domain.UserBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listBookedByQuery(userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedBy - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookedBy - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.UserBooking, 0)
	for rows.Next() {
		var b domain.UserBooking
		if err := rows.Scan(&b.SlotID, &b.OwnerID, &b.Date, &b.Time.Hour, &b.Time.Minute); err != nil {
			return nil, fmt.Errorf("%w: ListBookedBy - scan row: %v", ErrScanRow, err)
		}
		b.Date = domain.DateOnly(b.Date)
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookedBy - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func listBookedByQuery(userID int64) squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"s.id",
		"d.owner_id",
		"d.schedule_date",
		"s.hour",
		"s.minute",
	).
		From("slots s").
		Join("schedule_days d ON d.id = s.schedule_id").
		Where(squirrel.Eq{"s.booked_by": userID}).
		Where(squirrel.NotEq{"d.owner_id": userID}).
		OrderBy("d.schedule_date DESC", "s.hour ASC", "s.minute ASC", "d.owner_id ASC")
}

func (r *Repository) update(ctx context.Context, op string, slotID int64, fields map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func scanSlot(row *sql.Row) (*domain.Slot, error) {
	var (
		s        domain.Slot
		bookedBy sql.NullInt64
	)

	err := row.Scan(
		&s.ID,
		&s.ScheduleID,
		&s.OwnerID,
		&s.Date,
		&s.Time.Hour,
		&s.Time.Minute,
		&s.Available,
		&bookedBy,
	)
	if err != nil {
		return nil, err
	}

	s.Date = domain.DateOnly(s.Date)
	s.BookedBy = nullableID(bookedBy)
	return &s, nil
}

func nullableID(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return ptr.Ptr(v.Int64)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == codeUniqueViolation
}
