package get_my_bookings

import (
	"net/http"
	"time"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/api/middleware"
)

// Response HTTP response model
type Response struct {
	Bookings []handlers.BookingView `json:"bookings"`
}

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

// Handle GET /api/v1/bookings/my
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok || !u.HasTelegram() {
		h.logger.Error("GET /bookings/my - no user in context")
		handlers.RespondInternalError(w)
		return
	}

	views, err := h.service.ListForUser(r.Context(), *u.TelegramID)
	if err != nil {
		h.logger.Error("GET /bookings/my - Failed to list: user_id=%s, error=%v", u.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	resp := Response{Bookings: make([]handlers.BookingView, 0, len(views))}
	for i := range views {
		v := handlers.NewBookingView(&views[i].Booking, h.loc)
		canCancel := views[i].CanCancel
		v.CanCancel = &canCancel
		resp.Bookings = append(resp.Bookings, v)
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
