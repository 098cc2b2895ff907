package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PT-BookingService/internal/domain"
	"github.com/m04kA/PT-BookingService/pkg/types"
)

func mskLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	return loc
}

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func workDay(t *testing.T, start, end string, breaks ...domain.BreakInterval) *domain.ScheduleDay {
	t.Helper()
	s := ts(t, start)
	e := ts(t, end)
	return &domain.ScheduleDay{
		Day:       "2025-06-02",
		StartTime: &s,
		EndTime:   &e,
		Breaks:    breaks,
	}
}

func TestBuildSlots_FullDay(t *testing.T) {
	loc := mskLocation(t)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)

	slots, err := buildSlots(day, workDay(t, "10:00", "21:00"), nil, 60, loc)
	require.NoError(t, err)

	require.Len(t, slots, 11)
	assert.Equal(t, types.TimeString("10:00"), slots[0].Start)
	assert.Equal(t, types.TimeString("20:00"), slots[10].Start)
	assert.Equal(t, time.Date(2025, 6, 2, 21, 0, 0, 0, loc), slots[10].EndAt)
}

func TestBuildSlots_BreakExcludesOverlapping(t *testing.T) {
	loc := mskLocation(t)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)

	sd := workDay(t, "10:00", "21:00", domain.BreakInterval{
		Start: ts(t, "13:00"),
		End:   ts(t, "13:30"),
	})

	slots, err := buildSlots(day, sd, nil, 60, loc)
	require.NoError(t, err)

	starts := slotStarts(slots)
	// Слот 13:00-14:00 пересекается с перерывом, 12:00-13:00 - нет
	assert.NotContains(t, starts, types.TimeString("13:00"))
	assert.Contains(t, starts, types.TimeString("12:00"))
	assert.Contains(t, starts, types.TimeString("14:00"))
	assert.Len(t, slots, 10)
}

func TestBuildSlots_BusyExcludesOverlapping(t *testing.T) {
	loc := mskLocation(t)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)

	busy := []domain.BusyInterval{
		{
			Start: time.Date(2025, 6, 2, 15, 0, 0, 0, loc),
			End:   time.Date(2025, 6, 2, 16, 0, 0, 0, loc),
		},
	}

	slots, err := buildSlots(day, workDay(t, "10:00", "21:00"), busy, 60, loc)
	require.NoError(t, err)

	starts := slotStarts(slots)
	assert.NotContains(t, starts, types.TimeString("15:00"))
	// Соседние слоты не задеты: интервалы полуоткрытые
	assert.Contains(t, starts, types.TimeString("14:00"))
	assert.Contains(t, starts, types.TimeString("16:00"))
}

func TestBuildSlots_TailSlotDoesNotFit(t *testing.T) {
	loc := mskLocation(t)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)

	slots, err := buildSlots(day, workDay(t, "10:00", "11:30"), nil, 60, loc)
	require.NoError(t, err)

	// Слот 11:00-12:00 вышел бы за конец рабочего дня
	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("10:00"), slots[0].Start)
}

func TestBuildSlots_EmptyCases(t *testing.T) {
	loc := mskLocation(t)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)

	t.Run("inverted interval", func(t *testing.T) {
		slots, err := buildSlots(day, workDay(t, "18:00", "10:00"), nil, 60, loc)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("no working hours", func(t *testing.T) {
		slots, err := buildSlots(day, &domain.ScheduleDay{Day: "2025-06-02"}, nil, 60, loc)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("break covers whole day", func(t *testing.T) {
		sd := workDay(t, "10:00", "18:00", domain.BreakInterval{
			Start: ts(t, "10:00"),
			End:   ts(t, "18:00"),
		})
		slots, err := buildSlots(day, sd, nil, 60, loc)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestBuildSlots_Properties(t *testing.T) {
	loc := mskLocation(t)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)

	sd := workDay(t, "09:00", "20:00", domain.BreakInterval{
		Start: ts(t, "12:30"),
		End:   ts(t, "14:00"),
	})
	busy := []domain.BusyInterval{
		{
			Start: time.Date(2025, 6, 2, 17, 15, 0, 0, loc),
			End:   time.Date(2025, 6, 2, 17, 45, 0, 0, loc),
		},
	}

	for _, duration := range domain.AllowedDurations {
		slots, err := buildSlots(day, sd, busy, duration, loc)
		require.NoError(t, err)

		for i, s := range slots {
			assert.Equal(t, time.Duration(duration)*time.Minute, s.EndAt.Sub(s.StartAt))
			if i > 0 {
				// Строгое возрастание без пересечений
				assert.False(t, s.StartAt.Before(slots[i-1].EndAt))
			}
		}
	}
}

func slotStarts(slots []Slot) []types.TimeString {
	starts := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	return starts
}
