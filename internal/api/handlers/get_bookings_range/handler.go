package get_bookings_range

import (
	"net/http"
	"time"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/domain"
)

const msgInvalidRange = "некорректный период, ожидается from и to в формате YYYY-MM-DD"

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

// Handle GET /api/v1/trainer/bookings?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")

	from, err := time.ParseInLocation(domain.DateFormat, fromRaw, h.loc)
	if err != nil {
		h.logger.Warn("GET /trainer/bookings - Invalid from: %q", fromRaw)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	to, err := time.ParseInLocation(domain.DateFormat, toRaw, h.loc)
	if err != nil || to.Before(from) {
		h.logger.Warn("GET /trainer/bookings - Invalid to: %q", toRaw)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	// Граница to включается в период целиком
	items, err := h.service.ListRange(r.Context(), from, to.AddDate(0, 0, 1))
	if err != nil {
		h.logger.Error("GET /trainer/bookings - Failed to list: from=%s, to=%s, error=%v", fromRaw, toRaw, err)
		handlers.RespondInternalError(w)
		return
	}

	resp := Response{Bookings: make([]handlers.BookingView, 0, len(items))}
	for i := range items {
		resp.Bookings = append(resp.Bookings, handlers.NewBookingView(&items[i], h.loc))
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
