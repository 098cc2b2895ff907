package calendar

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("calendar client: invalid response")

	// ErrGatewayUnavailable возвращается, когда шлюз календаря недоступен
	// или вернул ошибку. Записи в этом случае не создаются
	ErrGatewayUnavailable = errors.New("calendar client: gateway unavailable")
)
