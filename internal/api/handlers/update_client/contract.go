package update_client

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/domain"
	"github.com/m04kA/PT-BookingService/internal/service/users"
)

// UsersService интерфейс сервиса пользователей
type UsersService interface {
	UpdateClient(ctx context.Context, clientID string, req *users.UpdateClientRequest) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
