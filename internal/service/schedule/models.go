package schedule

// BreakInput перерыв в запросе на изменение графика
type BreakInput struct {
	Start string // Время начала HH:MM
	End   string // Время окончания HH:MM
}

// UpsertDayRequest запрос на установку графика на дату.
// Пустые времена означают выходной
type UpsertDayRequest struct {
	Day       string       // Дата YYYY-MM-DD
	StartTime string       // Начало рабочего дня HH:MM, "" - выходной
	EndTime   string       // Конец рабочего дня HH:MM, "" - выходной
	Breaks    []BreakInput // Перерывы
}

// CopyDayRequest запрос на копирование графика одного дня на другие даты
type CopyDayRequest struct {
	FromDay string   // Дата-источник YYYY-MM-DD
	ToDays  []string // Даты-приемники
}
