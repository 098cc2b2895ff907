package create_booking

import (
	"github.com/m04kA/PT-BookingService/internal/domain"
)

// Request модель запроса на запись от клиента
type Request struct {
	User  *domain.User // Аутентифицированный клиент
	Date  string       // Дата тренировки в формате YYYY-MM-DD
	Start string       // Время начала в формате HH:MM
}

// WalkInRequest модель запроса тренера на запись клиента вручную
type WalkInRequest struct {
	LastName  string // Фамилия клиента
	FirstName string // Имя клиента
	Phone     string // Телефон клиента в произвольном формате
	Date      string // Дата тренировки в формате YYYY-MM-DD
	Start     string // Время начала в формате HH:MM
}

// Response модель ответа с созданной записью
type Response struct {
	Booking          *domain.Booking // Созданная запись в статусе active
	UsedPackage      bool            // Было ли списано занятие с абонемента
	PackageRemaining int             // Остаток занятий после списания
}
