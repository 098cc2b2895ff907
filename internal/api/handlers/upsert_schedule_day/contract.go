package upsert_schedule_day

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/domain"
	"github.com/m04kA/PT-BookingService/internal/service/schedule"
)

// ScheduleService интерфейс сервиса графика
type ScheduleService interface {
	UpsertDay(ctx context.Context, req *schedule.UpsertDayRequest) (*domain.ScheduleDay, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
