package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
	"github.com/m04kA/PT-BookingService/internal/integrations/calendar"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	Commit(ctx context.Context, id, eventID string) error
	MarkRolledBack(ctx context.Context, id string) error
	ListActiveOverlapping(ctx context.Context, start, end time.Time) ([]domain.Booking, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	AdjustPackage(ctx context.Context, id string, delta int) (int, error)
}

// ScheduleRepository интерфейс репозитория графика работы
type ScheduleRepository interface {
	GetByDay(ctx context.Context, day string) (*domain.ScheduleDay, error)
}

// SettingsRepository интерфейс репозитория настроек
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
}

// AuditRepository интерфейс журнала событий
type AuditRepository interface {
	Append(ctx context.Context, entryType string, payload interface{}) error
}

// CalendarClient интерфейс клиента календаря тренера
type CalendarClient interface {
	ListBusy(ctx context.Context, day string) ([]domain.BusyInterval, error)
	CreateBookingEvent(ctx context.Context, p calendar.CreateEventParams) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// TelegramClient интерфейс отправки уведомлений
type TelegramClient interface {
	SendMessage(chatID int64, text string) error
	SendWithConfirmCancel(chatID int64, text, bookingID string) error
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
