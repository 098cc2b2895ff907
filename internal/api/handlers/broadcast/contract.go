package broadcast

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/service/users"
)

// UsersService интерфейс сервиса пользователей
type UsersService interface {
	Broadcast(ctx context.Context, text string) (*users.BroadcastResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
