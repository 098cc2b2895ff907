package get_schedule_day

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/service/schedule"
)

const msgInvalidDay = "некорректная дата, ожидается YYYY-MM-DD"

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/days/{day}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	day := mux.Vars(r)["day"]

	sd, err := h.service.GetDay(r.Context(), day)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /schedule/days/{day} - Invalid day: %q", day)
			handlers.RespondBadRequest(w, msgInvalidDay)

		default:
			h.logger.Error("GET /schedule/days/{day} - Failed: day=%s, error=%v", day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewScheduleDayView(sd))
}
