package domain

import (
	"time"

	"github.com/m04kA/PT-BookingService/pkg/types"
)

// BreakInterval перерыв внутри рабочего дня, время суток "HH:MM"
type BreakInterval struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// ScheduleDay рабочий день тренера
// Пустые StartTime/EndTime означают, что день недоступен для записи.
// Перерывы хранятся как есть: не отсортированы и могут пересекаться,
// пересечения трактуются как объединение заблокированного времени
type ScheduleDay struct {
	Day       string // DateFormat ("2006-01-02"), ключ
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Breaks    []BreakInterval

	UpdatedAt time.Time
}

// HasWorkingHours returns true if the day accepts bookings
func (d *ScheduleDay) HasWorkingHours() bool {
	return d.StartTime != nil && !d.StartTime.IsZero() &&
		d.EndTime != nil && !d.EndTime.IsZero()
}
