package upsert_schedule_day

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSchedule    = "некорректный график: проверьте дату, часы работы и перерывы"
)

// BreakRequest перерыв в теле запроса
type BreakRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UpsertDayRequest HTTP request model.
// Пустые времена означают выходной
type UpsertDayRequest struct {
	StartTime string         `json:"startTime"`
	EndTime   string         `json:"endTime"`
	Breaks    []BreakRequest `json:"breaks"`
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

// Handle PUT /api/v1/schedule/days/{day}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	day := mux.Vars(r)["day"]

	var req UpsertDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/days/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	svcReq := &schedule.UpsertDayRequest{
		Day:       day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Breaks:    make([]schedule.BreakInput, 0, len(req.Breaks)),
	}
	for _, b := range req.Breaks {
		svcReq.Breaks = append(svcReq.Breaks, schedule.BreakInput{Start: b.Start, End: b.End})
	}

	sd, err := h.service.UpsertDay(r.Context(), svcReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/days/{day} - Invalid schedule: day=%s, error=%v", day, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		default:
			h.logger.Error("PUT /schedule/days/{day} - Failed: day=%s, error=%v", day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/days/{day} - Day saved: day=%s", day)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewScheduleDayView(sd))
}
