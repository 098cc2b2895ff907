package handlers

import (
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
)

// UserView модель пользователя в ответах API
type UserView struct {
	ID               string  `json:"id"`
	TelegramID       *int64  `json:"tgId,omitempty"`
	Username         *string `json:"username,omitempty"`
	LastName         *string `json:"lastName,omitempty"`
	FirstName        *string `json:"firstName,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	BirthDate        *string `json:"birthDate,omitempty"`
	PackageRemaining int     `json:"packageRemaining"`
	Role             string  `json:"role"`
}

// NewUserView собирает модель пользователя
func NewUserView(u *domain.User) UserView {
	return UserView{
		ID:               u.ID,
		TelegramID:       u.TelegramID,
		Username:         u.Username,
		LastName:         u.LastName,
		FirstName:        u.FirstName,
		Phone:            u.Phone,
		BirthDate:        u.BirthDate,
		PackageRemaining: u.PackageRemaining,
		Role:             string(u.Role),
	}
}

// BreakView перерыв в ответах API
type BreakView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ScheduleDayView график работы на дату в ответах API
type ScheduleDayView struct {
	Day       string      `json:"day"`
	StartTime *string     `json:"startTime"`
	EndTime   *string     `json:"endTime"`
	Breaks    []BreakView `json:"breaks"`
}

// NewScheduleDayView собирает модель графика дня
func NewScheduleDayView(sd *domain.ScheduleDay) ScheduleDayView {
	view := ScheduleDayView{
		Day:    sd.Day,
		Breaks: make([]BreakView, 0, len(sd.Breaks)),
	}
	if sd.StartTime != nil {
		s := sd.StartTime.String()
		view.StartTime = &s
	}
	if sd.EndTime != nil {
		e := sd.EndTime.String()
		view.EndTime = &e
	}
	for _, b := range sd.Breaks {
		view.Breaks = append(view.Breaks, BreakView{Start: b.Start.String(), End: b.End.String()})
	}
	return view
}

// BookingClientView данные клиента внутри записи
type BookingClientView struct {
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`
	Phone     string `json:"phone"`
}

// BookingView модель записи в ответах API
type BookingView struct {
	ID          string            `json:"id"`
	Date        string            `json:"date"`
	Start       string            `json:"start"`
	StartAt     time.Time         `json:"startAt"`
	EndAt       time.Time         `json:"endAt"`
	Status      string            `json:"status"`
	Confirmed   bool              `json:"confirmed"`
	UsedPackage bool              `json:"usedPackage"`
	Client      BookingClientView `json:"client"`
	CanCancel   *bool             `json:"canCancel,omitempty"`
}

// NewBookingView собирает модель записи, времена в локальной зоне тренера
func NewBookingView(b *domain.Booking, loc *time.Location) BookingView {
	local := b.StartAt.In(loc)
	return BookingView{
		ID:          b.ID,
		Date:        local.Format(domain.DateFormat),
		Start:       local.Format(domain.TimeFormat),
		StartAt:     b.StartAt,
		EndAt:       b.EndAt,
		Status:      string(b.Status),
		Confirmed:   b.Confirmed,
		UsedPackage: b.UsedPackage,
		Client: BookingClientView{
			LastName:  b.LastName,
			FirstName: b.FirstName,
			Phone:     b.Phone,
		},
	}
}
