package get_my_bookings

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/service/bookings"
)

// BookingsService интерфейс сервиса записей
type BookingsService interface {
	ListForUser(ctx context.Context, tgID int64) ([]bookings.BookingView, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
