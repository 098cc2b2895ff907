package get_slot_days

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/usecase/get_available_slots"
)

// SlotsUseCase интерфейс use case слотов
type SlotsUseCase interface {
	ExecuteDays(ctx context.Context) (*get_available_slots.DaysResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
