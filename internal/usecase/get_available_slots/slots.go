package get_available_slots

import (
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
)

// buildSlots генерирует свободные слоты на день.
// Слоты идут с фиксированным шагом durationMinutes от начала рабочего дня.
// Слот исключается, если он пересекается с перерывом или занятым
// интервалом календаря. Интервалы полуоткрытые: [start, end)
func buildSlots(
	day time.Time,
	sd *domain.ScheduleDay,
	busy []domain.BusyInterval,
	durationMinutes int,
	loc *time.Location,
) ([]Slot, error) {
	if sd == nil || !sd.HasWorkingHours() {
		return []Slot{}, nil
	}

	// Инвертированный интервал рабочего дня означает пустой день
	if !sd.StartTime.IsBefore(*sd.EndTime) {
		return []Slot{}, nil
	}

	slots := make([]Slot, 0)
	cursor := *sd.StartTime

	for {
		slotEnd, err := cursor.AddMinutes(durationMinutes)
		if err != nil {
			// Слот не помещается до полуночи
			break
		}
		if slotEnd.IsAfter(*sd.EndTime) {
			break
		}

		startAt, err := cursor.At(day, loc)
		if err != nil {
			return nil, err
		}
		endAt, err := slotEnd.At(day, loc)
		if err != nil {
			return nil, err
		}

		blocked, err := overlapsBreak(startAt, endAt, sd.Breaks, day, loc)
		if err != nil {
			return nil, err
		}
		if !blocked {
			blocked = overlapsBusy(startAt, endAt, busy)
		}

		if !blocked {
			slots = append(slots, Slot{
				Start:   cursor,
				StartAt: startAt,
				EndAt:   endAt,
			})
		}

		cursor = slotEnd
	}

	return slots, nil
}

// overlapsBreak проверяет пересечение слота с перерывами.
// Перерывы заданы локальным временем суток и проецируются на дату слота
func overlapsBreak(startAt, endAt time.Time, breaks []domain.BreakInterval, day time.Time, loc *time.Location) (bool, error) {
	for _, b := range breaks {
		bStart, err := b.Start.At(day, loc)
		if err != nil {
			return false, err
		}
		bEnd, err := b.End.At(day, loc)
		if err != nil {
			return false, err
		}
		if domain.Overlaps(startAt, endAt, bStart, bEnd) {
			return true, nil
		}
	}
	return false, nil
}

func overlapsBusy(startAt, endAt time.Time, busy []domain.BusyInterval) bool {
	for _, b := range busy {
		if domain.Overlaps(startAt, endAt, b.Start, b.End) {
			return true
		}
	}
	return false
}
