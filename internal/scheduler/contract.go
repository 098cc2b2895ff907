package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	ListActiveInRange(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
	MarkRemindedDayAhead(ctx context.Context, id string) error
	MarkRemindedPreSession(ctx context.Context, id string) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	ListClients(ctx context.Context) ([]domain.User, error)
}

// AuditRepository интерфейс журнала событий
type AuditRepository interface {
	Append(ctx context.Context, entryType string, payload interface{}) error
}

// TelegramClient интерфейс отправки уведомлений
type TelegramClient interface {
	SendMessage(chatID int64, text string) error
	SendWithConfirmCancel(chatID int64, text, bookingID string) error
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
