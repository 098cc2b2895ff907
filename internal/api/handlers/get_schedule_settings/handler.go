package get_schedule_settings

import (
	"net/http"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
)

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

// Handle GET /api/v1/schedule/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	minutes, err := h.service.GetDuration(r.Context())
	if err != nil {
		h.logger.Error("GET /schedule/settings - Failed to get duration: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{DurationMinutes: minutes})
}
