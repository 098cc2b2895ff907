package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PT-BookingService/internal/domain"
	"github.com/m04kA/PT-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PT-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с пользователями (тренер и клиенты)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var userColumns = []string{
	"id",
	"tg_id",
	"username",
	"last_name",
	"first_name",
	"phone",
	"birth_date",
	"package_remaining",
	"role",
	"created_at",
	"updated_at",
}

// Create создает нового пользователя
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("id", "tg_id", "username", "last_name", "first_name", "phone", "birth_date", "package_remaining", "role").
		Values(u.ID, u.TelegramID, u.Username, u.LastName, u.FirstName, u.Phone, u.BirthDate, u.PackageRemaining, string(u.Role)).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return u, nil
}

// GetByID получает пользователя по внутреннему идентификатору
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *Repository) GetByTelegramID(ctx context.Context, tgID int64) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"tg_id": tgID}, "GetByTelegramID")
}

// GetByPhone получает пользователя по нормализованному номеру телефона
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"phone": phone}, "GetByPhone")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}

	return u, nil
}

// ListClients возвращает всех клиентов, отсортированных по фамилии и имени
func (r *Repository) ListClients(ctx context.Context) ([]domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"role": string(domain.RoleClient)}).
		OrderBy("last_name ASC", "first_name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListClients - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClients - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListClients - scan user: %v", ErrScanRow, err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListClients - iterate rows: %v", ErrExecQuery, err)
	}

	return users, nil
}

// UpdateProfile обновляет ФИО и телефон пользователя
func (r *Repository) UpdateProfile(ctx context.Context, id string, lastName, firstName, phone *string) (*domain.User, error) {
	builder := psqlbuilder.Update("users").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	if lastName != nil {
		builder = builder.Set("last_name", *lastName)
	}
	if firstName != nil {
		builder = builder.Set("first_name", *firstName)
	}
	if phone != nil {
		builder = builder.Set("phone", *phone)
	}

	return r.updateReturning(ctx, builder, "UpdateProfile")
}

// UpdateClient обновляет поля клиента, доступные тренеру:
// дату рождения и остаток занятий по абонементу
func (r *Repository) UpdateClient(ctx context.Context, id string, birthDate *string, packageRemaining *int) (*domain.User, error) {
	builder := psqlbuilder.Update("users").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	if birthDate != nil {
		builder = builder.Set("birth_date", *birthDate)
	}
	if packageRemaining != nil {
		builder = builder.Set("package_remaining", *packageRemaining)
	}

	return r.updateReturning(ctx, builder, "UpdateClient")
}

// UpdateRole обновляет роль пользователя
func (r *Repository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("role", string(role)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateRole - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateRole - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// AdjustPackage изменяет остаток занятий на delta и возвращает новый остаток.
// Списание с нулевого остатка блокируется на уровне запроса
func (r *Repository) AdjustPackage(ctx context.Context, id string, delta int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("package_remaining", squirrel.Expr("package_remaining + ?", delta)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("package_remaining + ? >= 0", delta)).
		Suffix("RETURNING package_remaining").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: AdjustPackage - build update query: %v", ErrBuildQuery, err)
	}

	var remaining int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&remaining)
	if err == sql.ErrNoRows {
		if delta < 0 {
			return 0, ErrNegativeBalance
		}
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: AdjustPackage - execute update: %v", ErrExecQuery, err)
	}

	return remaining, nil
}

func (r *Repository) updateReturning(ctx context.Context, builder squirrel.UpdateBuilder, op string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.
		Suffix("RETURNING " + joinColumns(userColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}

	return u, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)

	err := row.Scan(
		&u.ID,
		&u.TelegramID,
		&u.Username,
		&u.LastName,
		&u.FirstName,
		&u.Phone,
		&u.BirthDate,
		&u.PackageRemaining,
		&role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Role = domain.Role(role)
	return &u, nil
}

func joinColumns(cols []string) string {
	out := cols[0]
	for _, c := range cols[1:] {
		out += ", " + c
	}
	return out
}
