package set_duration

import "context"

// ScheduleService интерфейс сервиса графика
type ScheduleService interface {
	SetDuration(ctx context.Context, minutes int) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
