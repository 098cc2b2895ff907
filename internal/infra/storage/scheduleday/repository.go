package scheduleday

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PT-BookingService/internal/domain"
	"github.com/m04kA/PT-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PT-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/PT-BookingService/pkg/types"
)

// Repository репозиторий для работы с графиком работы по дням
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория графика
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDay получает график работы на дату (формат YYYY-MM-DD)
func (r *Repository) GetByDay(ctx context.Context, day string) (*domain.ScheduleDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day", "start_time", "end_time", "breaks_json", "updated_at").
		From("schedule_days").
		Where(squirrel.Eq{"day": day}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - build select query: %v", ErrBuildQuery, err)
	}

	var (
		sd         domain.ScheduleDay
		startTime  sql.NullString
		endTime    sql.NullString
		breaksJSON sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&sd.Day, &startTime, &endTime, &breaksJSON, &sd.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDay - scan schedule day: %v", ErrScanRow, err)
	}

	if startTime.Valid {
		ts := types.TimeString(startTime.String)
		sd.StartTime = &ts
	}
	if endTime.Valid {
		ts := types.TimeString(endTime.String)
		sd.EndTime = &ts
	}
	if breaksJSON.Valid && breaksJSON.String != "" {
		if err := json.Unmarshal([]byte(breaksJSON.String), &sd.Breaks); err != nil {
			return nil, fmt.Errorf("%w: GetByDay - unmarshal breaks: %v", ErrScanRow, err)
		}
	}

	return &sd, nil
}

// Upsert сохраняет график работы на дату, перезаписывая существующий
func (r *Repository) Upsert(ctx context.Context, sd *domain.ScheduleDay) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	breaksJSON, err := json.Marshal(sd.Breaks)
	if err != nil {
		return fmt.Errorf("%w: Upsert - marshal breaks: %v", ErrBuildQuery, err)
	}

	var startTime, endTime interface{}
	if sd.StartTime != nil {
		startTime = sd.StartTime.String()
	}
	if sd.EndTime != nil {
		endTime = sd.EndTime.String()
	}

	query, args, err := psqlbuilder.Insert("schedule_days").
		Columns("day", "start_time", "end_time", "breaks_json", "updated_at").
		Values(sd.Day, startTime, endTime, string(breaksJSON), squirrel.Expr("now()")).
		Suffix(`ON CONFLICT (day) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			breaks_json = EXCLUDED.breaks_json,
			updated_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
