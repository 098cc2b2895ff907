package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PT-BookingService/internal/domain"
	"github.com/m04kA/PT-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PT-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с записями на тренировки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"id",
	"user_id",
	"tg_id",
	"last_name",
	"first_name",
	"phone",
	"start_at",
	"end_at",
	"event_id",
	"confirmed",
	"status",
	"used_package",
	"reminded_day_ahead",
	"reminded_pre_session",
	"created_at",
	"updated_at",
}

// Create создает запись в статусе pending
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns("id", "user_id", "tg_id", "last_name", "first_name", "phone",
			"start_at", "end_at", "event_id", "confirmed", "status", "used_package").
		Values(b.ID, b.UserID, b.TelegramID, b.LastName, b.FirstName, b.Phone,
			b.StartAt, b.EndAt, b.EventID, b.Confirmed, string(b.Status), b.UsedPackage).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает запись по идентификатору
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// ListActiveByTelegramID возвращает активные записи клиента,
// отсортированные по времени начала
func (r *Repository) ListActiveByTelegramID(ctx context.Context, tgID int64) ([]domain.Booking, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"tg_id": tgID},
		squirrel.Eq{"status": string(domain.StatusActive)},
	}, "ListActiveByTelegramID")
}

// ListActiveInRange возвращает активные записи с началом в интервале [from, to),
// отсортированные по времени начала
func (r *Repository) ListActiveInRange(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"status": string(domain.StatusActive)},
		squirrel.GtOrEq{"start_at": from},
		squirrel.Lt{"start_at": to},
	}, "ListActiveInRange")
}

// ListActiveOverlapping возвращает активные и ожидающие подтверждения записи,
// пересекающиеся с интервалом [start, end)
func (r *Repository) ListActiveOverlapping(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	return r.list(ctx, squirrel.And{
		squirrel.Eq{"status": []string{string(domain.StatusPending), string(domain.StatusActive)}},
		squirrel.Lt{"start_at": end},
		squirrel.Gt{"end_at": start},
	}, "ListActiveOverlapping")
}

func (r *Repository) list(ctx context.Context, where squirrel.Sqlizer, op string) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, op, err)
	}

	return bookings, nil
}

// Commit переводит запись из pending в active и сохраняет
// идентификатор созданного события календаря
func (r *Repository) Commit(ctx context.Context, id, eventID string) error {
	return r.exec(ctx, psqlbuilder.Update("bookings").
		Set("status", string(domain.StatusActive)).
		Set("event_id", eventID).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": string(domain.StatusPending)}),
		"Commit")
}

// MarkRolledBack переводит запись из pending в rolled_back
func (r *Repository) MarkRolledBack(ctx context.Context, id string) error {
	return r.exec(ctx, psqlbuilder.Update("bookings").
		Set("status", string(domain.StatusRolledBack)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": string(domain.StatusPending)}),
		"MarkRolledBack")
}

// MarkCancelled переводит активную запись в cancelled
func (r *Repository) MarkCancelled(ctx context.Context, id string) error {
	return r.exec(ctx, psqlbuilder.Update("bookings").
		Set("status", string(domain.StatusCancelled)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": string(domain.StatusActive)}),
		"MarkCancelled")
}

// SetConfirmed устанавливает флаг подтверждения записи клиентом
func (r *Repository) SetConfirmed(ctx context.Context, id string, confirmed bool) error {
	return r.exec(ctx, psqlbuilder.Update("bookings").
		Set("confirmed", confirmed).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}),
		"SetConfirmed")
}

// MarkRemindedDayAhead помечает, что напоминание за сутки отправлено
func (r *Repository) MarkRemindedDayAhead(ctx context.Context, id string) error {
	return r.exec(ctx, psqlbuilder.Update("bookings").
		Set("reminded_day_ahead", true).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}),
		"MarkRemindedDayAhead")
}

// MarkRemindedPreSession помечает, что напоминание перед тренировкой отправлено
func (r *Repository) MarkRemindedPreSession(ctx context.Context, id string) error {
	return r.exec(ctx, psqlbuilder.Update("bookings").
		Set("reminded_pre_session", true).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}),
		"MarkRemindedPreSession")
}

func (r *Repository) exec(ctx context.Context, builder squirrel.UpdateBuilder, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b      domain.Booking
		status string
	)

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.TelegramID,
		&b.LastName,
		&b.FirstName,
		&b.Phone,
		&b.StartAt,
		&b.EndAt,
		&b.EventID,
		&b.Confirmed,
		&status,
		&b.UsedPackage,
		&b.RemindedDayAhead,
		&b.RemindedPreSession,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Status = domain.BookingStatus(status)
	return &b, nil
}
