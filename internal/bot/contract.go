package bot

import (
	"context"

	"github.com/m04kA/PT-BookingService/internal/domain"
)

// BookingsService интерфейс сервиса записей
type BookingsService interface {
	Confirm(ctx context.Context, bookingID string, callerTGID int64) (*domain.Booking, error)
	Cancel(ctx context.Context, bookingID string, callerTGID int64) (*domain.Booking, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByTelegramID(ctx context.Context, tgID int64) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, lastName, firstName, phone *string) (*domain.User, error)
}

// AuditRepository интерфейс журнала событий
type AuditRepository interface {
	Append(ctx context.Context, entryType string, payload interface{}) error
}

// TelegramClient интерфейс отправки сообщений бота
type TelegramClient interface {
	SendMessage(chatID int64, text string) error
	SendMainMenu(chatID int64, text string) error
	RequestContact(chatID int64, text string) error
	AnswerCallback(callbackID, text string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
