package scheduler

import "time"

// Окна напоминаний
const (
	dayAheadUpper = 24 * time.Hour
	dayAheadLower = 23 * time.Hour

	preSessionUpper = 90 * time.Minute
	preSessionLower = 30 * time.Minute
)

// shouldSendDayAhead - напоминание за сутки: 23h < start - now <= 24h
func shouldSendDayAhead(start, now time.Time) bool {
	diff := start.Sub(now)
	return diff > dayAheadLower && diff <= dayAheadUpper
}

// shouldSendPreSession - напоминание перед тренировкой: 30m < start - now <= 90m
func shouldSendPreSession(start, now time.Time) bool {
	diff := start.Sub(now)
	return diff > preSessionLower && diff <= preSessionUpper
}
