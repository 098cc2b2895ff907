package get_slots

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/usecase/get_available_slots"
)

// SlotsUseCase интерфейс use case слотов
type SlotsUseCase interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
