package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория графика работы
type ScheduleRepository interface {
	GetByDay(ctx context.Context, day string) (*domain.ScheduleDay, error)
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
}

// CalendarClient интерфейс клиента календаря тренера
type CalendarClient interface {
	ListBusy(ctx context.Context, day string) ([]domain.BusyInterval, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
