package schedule

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/domain"
	"github.com/m04kA/PT-BookingService/pkg/types"
)

// ScheduleRepository интерфейс репозитория графика работы
type ScheduleRepository interface {
	GetByDay(ctx context.Context, day string) (*domain.ScheduleDay, error)
	Upsert(ctx context.Context, sd *domain.ScheduleDay) error
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// AuditRepository интерфейс журнала событий
type AuditRepository interface {
	Append(ctx context.Context, entryType string, payload interface{}) error
}

// CalendarClient интерфейс клиента календаря тренера
type CalendarClient interface {
	UpsertWorkDay(ctx context.Context, day string, start, end *types.TimeString, breaks []domain.BreakInterval) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
