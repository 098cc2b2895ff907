package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	// или уже находится в терминальном статусе
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому клиенту
	ErrAccessDenied = errors.New("booking belongs to another client")

	// ErrCancelWindowPassed возвращается, когда до начала тренировки
	// осталось меньше окна отмены
	ErrCancelWindowPassed = errors.New("cancellation window has passed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
