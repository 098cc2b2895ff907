package schedule

import "errors"

var (
	// ErrInvalidDuration возвращается при недопустимой длительности тренировки
	ErrInvalidDuration = errors.New("invalid session duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDayNotFound возвращается, когда у копируемого дня нет графика
	ErrDayNotFound = errors.New("source day has no schedule")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
