package get_schedule_settings

import "context"

// ScheduleService интерфейс сервиса графика
type ScheduleService interface {
	GetDuration(ctx context.Context) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
