package copy_schedule_day

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/service/schedule"
)

// ScheduleService интерфейс сервиса графика
type ScheduleService interface {
	CopyDay(ctx context.Context, req *schedule.CopyDayRequest) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
