package get_bookings_range

import (
	"context"
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
)

// BookingsService интерфейс сервиса записей
type BookingsService interface {
	ListRange(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
