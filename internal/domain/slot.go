package domain

import "time"

// Slot свободный интервал для записи фиксированной длительности
type Slot struct {
	Start time.Time
	End   time.Time
}

// BusyInterval занятый интервал, полученный из внешнего календаря
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет пересечение полуоткрытых интервалов [start, end)
// Граничные случаи (конец одного равен началу другого) пересечением не считаются
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
