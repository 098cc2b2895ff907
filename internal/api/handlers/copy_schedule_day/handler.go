package copy_schedule_day

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDays        = "некорректные даты, ожидается YYYY-MM-DD"
	msgSourceNotFound     = "на дате-источнике график не задан"
)

// CopyDayRequest HTTP request model
type CopyDayRequest struct {
	ToDays []string `json:"toDays"`
}

// Response HTTP response model
type Response struct {
	Copied int `json:"copied"`
}

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

// Handle POST /api/v1/schedule/days/{day}/copy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	day := mux.Vars(r)["day"]

	var req CopyDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /schedule/days/{day}/copy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	copied, err := h.service.CopyDay(r.Context(), &schedule.CopyDayRequest{
		FromDay: day,
		ToDays:  req.ToDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /schedule/days/{day}/copy - Invalid input: day=%s, error=%v", day, err)
			handlers.RespondBadRequest(w, msgInvalidDays)

		case errors.Is(err, schedule.ErrDayNotFound):
			h.logger.Warn("POST /schedule/days/{day}/copy - Source not found: day=%s", day)
			handlers.RespondNotFound(w, msgSourceNotFound)

		default:
			h.logger.Error("POST /schedule/days/{day}/copy - Failed: day=%s, error=%v", day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedule/days/{day}/copy - Copied: from=%s, days=%d", day, copied)
	handlers.RespondJSON(w, http.StatusOK, Response{Copied: copied})
}
