package trainer_create_booking

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/usecase/create_booking"
)

// BookingUseCase интерфейс use case создания записи
type BookingUseCase interface {
	ExecuteWalkIn(ctx context.Context, req *create_booking.WalkInRequest) (*create_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
