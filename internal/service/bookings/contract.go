package bookings

import (
	"context"
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	SetConfirmed(ctx context.Context, id string, confirmed bool) error
	MarkCancelled(ctx context.Context, id string) error
	ListActiveByTelegramID(ctx context.Context, tgID int64) ([]domain.Booking, error)
	ListActiveInRange(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	AdjustPackage(ctx context.Context, id string, delta int) (int, error)
}

// AuditRepository интерфейс журнала событий
type AuditRepository interface {
	Append(ctx context.Context, entryType string, payload interface{}) error
}

// CalendarClient интерфейс клиента календаря тренера
type CalendarClient interface {
	ConfirmEvent(ctx context.Context, eventID string) error
	DeleteEvent(ctx context.Context, eventID string) error
}

// TelegramClient интерфейс отправки уведомлений
type TelegramClient interface {
	SendMessage(chatID int64, text string) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
