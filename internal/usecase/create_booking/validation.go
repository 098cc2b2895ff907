package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
	"github.com/m04kA/PT-BookingService/pkg/types"
)

// slotTimes разобранные времена запрошенного слота
type slotTimes struct {
	Day     time.Time
	StartTS types.TimeString
	EndTS   types.TimeString
	StartAt time.Time
	EndAt   time.Time
}

// parseSlot разбирает дату и время начала и вычисляет границы слота
func parseSlot(date, start string, durationMinutes int, loc *time.Location) (*slotTimes, error) {
	day, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidInput, date)
	}

	startTS, err := types.NewTimeStringFromString(start)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start time %q", ErrInvalidInput, start)
	}

	endTS, err := startTS.AddMinutes(durationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: slot does not fit into the day", ErrInvalidInput)
	}

	startAt, err := startTS.At(day, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	endAt, err := endTS.At(day, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &slotTimes{
		Day:     day,
		StartTS: startTS,
		EndTS:   endTS,
		StartAt: startAt,
		EndAt:   endAt,
	}, nil
}

// validateWorkingHours проверяет, что слот целиком внутри рабочих часов
func validateWorkingHours(sd *domain.ScheduleDay, slot *slotTimes) error {
	if sd == nil || !sd.HasWorkingHours() {
		return ErrNoSchedule
	}
	if slot.StartTS.IsBefore(*sd.StartTime) || slot.EndTS.IsAfter(*sd.EndTime) {
		return ErrOutOfWorkingHours
	}
	return nil
}

// validateBreaks проверяет, что слот не пересекается с перерывами.
// Перерывы заданы локальным временем суток и проецируются на дату слота
func validateBreaks(sd *domain.ScheduleDay, slot *slotTimes, loc *time.Location) error {
	for _, b := range sd.Breaks {
		bStart, err := b.Start.At(slot.Day, loc)
		if err != nil {
			return fmt.Errorf("%w: bad break interval: %v", ErrInternal, err)
		}
		bEnd, err := b.End.At(slot.Day, loc)
		if err != nil {
			return fmt.Errorf("%w: bad break interval: %v", ErrInternal, err)
		}
		if domain.Overlaps(slot.StartAt, slot.EndAt, bStart, bEnd) {
			return ErrInBreak
		}
	}
	return nil
}

// validateBusy проверяет, что слот не пересекается с занятыми интервалами
// календаря и существующими записями
func validateBusy(slot *slotTimes, busy []domain.BusyInterval, bookings []domain.Booking) error {
	for _, b := range busy {
		if domain.Overlaps(slot.StartAt, slot.EndAt, b.Start, b.End) {
			return ErrSlotBusy
		}
	}
	for _, b := range bookings {
		if domain.Overlaps(slot.StartAt, slot.EndAt, b.StartAt, b.EndAt) {
			return ErrSlotBusy
		}
	}
	return nil
}
