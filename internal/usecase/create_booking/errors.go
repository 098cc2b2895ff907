package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrProfileIncomplete возвращается, когда у клиента не заполнены
	// фамилия, имя или телефон
	ErrProfileIncomplete = errors.New("client profile is incomplete")

	// ErrSlotInPast возвращается при попытке записи на прошедшее время
	ErrSlotInPast = errors.New("slot is in the past")

	// ErrNoSchedule возвращается, когда на дату нет рабочего графика
	ErrNoSchedule = errors.New("no schedule for this day")

	// ErrOutOfWorkingHours возвращается, когда слот выходит за рабочие часы
	ErrOutOfWorkingHours = errors.New("slot is outside working hours")

	// ErrInBreak возвращается, когда слот пересекается с перерывом
	ErrInBreak = errors.New("slot overlaps a break")

	// ErrSlotBusy возвращается, когда слот пересекается с занятым интервалом
	ErrSlotBusy = errors.New("slot is already busy")

	// ErrCalendarUnavailable возвращается, когда календарь тренера недоступен.
	// Запись в этом случае откатывается
	ErrCalendarUnavailable = errors.New("calendar is unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
