package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Настройки расписания
const (
	// SettingDurationMin ключ глобальной настройки длительности слота
	SettingDurationMin = "duration_min"

	// DefaultDurationMinutes длительность тренировки по умолчанию
	DefaultDurationMinutes = 60
)

// AllowedDurations допустимые значения длительности слота в минутах
var AllowedDurations = []int{30, 60, 90, 120}

// IsAllowedDuration проверяет, что длительность входит в список допустимых
func IsAllowedDuration(minutes int) bool {
	for _, d := range AllowedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}
