package domain

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	// StatusPending запись создана и пакет списан, но событие в календаре еще не создано
	StatusPending BookingStatus = "pending"
	// StatusActive запись действительна
	StatusActive BookingStatus = "active"
	// StatusCancelled запись отменена (терминальный статус)
	StatusCancelled BookingStatus = "cancelled"
	// StatusRolledBack создание не удалось на внешнем шаге, пакет возвращен (терминальный статус)
	StatusRolledBack BookingStatus = "rolled_back"
)

// Booking represents a training session booking
type Booking struct {
	ID         string
	UserID     string
	TelegramID int64 // 0 если клиент заведен тренером без Telegram

	// Denormalized client snapshot, survives later profile edits
	LastName  string
	FirstName string
	Phone     string

	StartAt time.Time
	EndAt   time.Time

	EventID     *string // ссылка на событие во внешнем календаре
	Confirmed   bool
	Status      BookingStatus
	UsedPackage bool // списана ли тренировка из пакета при создании

	// Sent markers для напоминаний: каждое окно срабатывает не более одного раза
	RemindedDayAhead   bool
	RemindedPreSession bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking is in the active state
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsTerminal returns true if the booking can never transition again
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusRolledBack
}

// ClientFullName возвращает "Фамилия Имя" для заголовков событий и уведомлений
func (b *Booking) ClientFullName() string {
	if b.LastName == "" {
		return b.FirstName
	}
	if b.FirstName == "" {
		return b.LastName
	}
	return b.LastName + " " + b.FirstName
}

// BookingsRangeFilter фильтр для выборки активных бронирований по периоду
type BookingsRangeFilter struct {
	From time.Time
	To   time.Time
}
