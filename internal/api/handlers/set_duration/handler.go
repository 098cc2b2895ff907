package set_duration

import (
	"errors"
	"net/http"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDuration    = "допустимая длительность: 30, 60, 90 или 120 минут"
)

// SetDurationRequest HTTP request model
type SetDurationRequest struct {
	DurationMinutes int `json:"durationMinutes"`
}

// Response HTTP response model
type Response struct {
	DurationMinutes int `json:"durationMinutes"`
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

// Handle PUT /api/v1/schedule/settings/duration
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SetDurationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/settings/duration - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetDuration(r.Context(), req.DurationMinutes); err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidDuration):
			h.logger.Warn("PUT /schedule/settings/duration - Invalid duration: %d", req.DurationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("PUT /schedule/settings/duration - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/settings/duration - Duration set: %d minutes", req.DurationMinutes)
	handlers.RespondJSON(w, http.StatusOK, Response{DurationMinutes: req.DurationMinutes})
}
