package cancel_booking

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/domain"
)

// BookingsService интерфейс сервиса записей
type BookingsService interface {
	Cancel(ctx context.Context, bookingID string, callerTGID int64) (*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
