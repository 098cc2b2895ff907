package users

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, lastName, firstName, phone *string) (*domain.User, error)
	UpdateClient(ctx context.Context, id string, birthDate *string, packageRemaining *int) (*domain.User, error)
	ListClients(ctx context.Context) ([]domain.User, error)
}

// AuditRepository интерфейс журнала событий
type AuditRepository interface {
	Append(ctx context.Context, entryType string, payload interface{}) error
}

// TelegramClient интерфейс отправки уведомлений
type TelegramClient interface {
	SendMessage(chatID int64, text string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
