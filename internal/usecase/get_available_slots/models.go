package get_available_slots

import (
	"time"

	"github.com/m04kA/PT-BookingService/pkg/types"
)

// Request модель запроса доступных слотов на дату
type Request struct {
	Date string // Дата в формате YYYY-MM-DD
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            string // Дата, на которую запрашивались слоты
	DurationMinutes int    // Длительность тренировки
	Slots           []Slot // Свободные слоты по возрастанию времени начала
}

// Slot свободный слот для записи
type Slot struct {
	Start   types.TimeString // Локальное время начала ("10:00")
	StartAt time.Time        // Момент начала
	EndAt   time.Time        // Момент окончания
}

// DaysResponse модель ответа со списком рабочих дней в горизонте записи
type DaysResponse struct {
	Days []string // Даты YYYY-MM-DD по возрастанию
}
