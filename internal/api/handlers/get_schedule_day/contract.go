package get_schedule_day

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/domain"
)

// ScheduleService интерфейс сервиса графика
type ScheduleService interface {
	GetDay(ctx context.Context, day string) (*domain.ScheduleDay, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
