package update_profile

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/domain"
	"github.com/m04kA/PT-BookingService/internal/service/users"
)

// UsersService интерфейс сервиса пользователей
type UsersService interface {
	UpdateProfile(ctx context.Context, userID string, req *users.UpdateProfileRequest) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
