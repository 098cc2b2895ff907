package get_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate         = "не указана дата"
	msgInvalidDate         = "некорректная дата"
	msgCalendarUnavailable = "календарь тренера временно недоступен"
)

// Slot HTTP model слота
type Slot struct {
	Start   string    `json:"start"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// Response HTTP response model
type Response struct {
	Date            string `json:"date"`
	DurationMinutes int    `json:"durationMinutes"`
	Slots           []Slot `json:"slots"`
}

type Handler struct {
	useCase SlotsUseCase
	logger  Logger
}

func NewHandler(useCase SlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &get_available_slots.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, get_available_slots.ErrInvalidDate),
			errors.Is(err, get_available_slots.ErrDateInPast),
			errors.Is(err, get_available_slots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /slots - Bad date %q: %v", date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, get_available_slots.ErrCalendarUnavailable):
			h.logger.Error("GET /slots - Calendar unavailable: %v", err)
			handlers.RespondBadGateway(w, msgCalendarUnavailable)

		default:
			h.logger.Error("GET /slots - Failed to get slots: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	out := Response{
		Date:            resp.Date,
		DurationMinutes: resp.DurationMinutes,
		Slots:           make([]Slot, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, Slot{
			Start:   s.Start.String(),
			StartAt: s.StartAt,
			EndAt:   s.EndAt,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, out)
}
