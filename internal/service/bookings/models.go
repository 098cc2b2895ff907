package bookings

import (
	"github.com/m04kA/PT-BookingService/internal/domain"
)

// BookingView запись вместе с вычисленным признаком возможности отмены
type BookingView struct {
	Booking   domain.Booking
	CanCancel bool
}
