package get_available_slots

import "errors"

var (
	// ErrInvalidDate возвращается при некорректной дате запроса
	ErrInvalidDate = errors.New("invalid date")

	// ErrDateInPast возвращается, когда дата уже прошла
	ErrDateInPast = errors.New("date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата за горизонтом записи
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrCalendarUnavailable возвращается, когда календарь тренера недоступен.
	// Слоты в этом случае не выдаются, чтобы не допустить двойной записи
	ErrCalendarUnavailable = errors.New("calendar is unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
