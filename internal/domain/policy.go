package domain

import "time"

// CancelWindow минимальное время до начала тренировки, при котором отмена еще возможна
const CancelWindow = 12 * time.Hour

// IsCancellable returns true if a booking starting at start can still be
// cancelled at the moment now. Чистая функция без побочных эффектов,
// используется и при отмене, и при формировании текстов напоминаний
func IsCancellable(start, now time.Time) bool {
	return start.Sub(now) > CancelWindow
}
