package cancel_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/api/middleware"
	"github.com/m04kA/PT-BookingService/internal/service/bookings"
)

const (
	msgNotFound      = "запись не найдена"
	msgForbidden     = "это чужая запись"
	msgCancelTooLate = "отменить можно не позднее чем за 12 часов до тренировки"
)

type Handler struct {
	service BookingsService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service BookingsService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok || !u.HasTelegram() {
		h.logger.Error("POST /bookings/{id}/cancel - no user in context")
		handlers.RespondInternalError(w)
		return
	}

	bookingID := mux.Vars(r)["bookingId"]

	b, err := h.service.Cancel(r.Context(), bookingID, *u.TelegramID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - Not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/cancel - Access denied: booking_id=%s, user_id=%s", bookingID, u.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrCancelWindowPassed):
			h.logger.Warn("POST /bookings/{id}/cancel - Window passed: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgCancelTooLate)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled: booking_id=%s, user_id=%s", bookingID, u.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingView(b, h.loc))
}
