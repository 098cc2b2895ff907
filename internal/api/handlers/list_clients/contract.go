package list_clients

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/domain"
)

// UsersService интерфейс сервиса пользователей
type UsersService interface {
	ListClients(ctx context.Context) ([]domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
