package get_slot_days

import (
	"net/http"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
)

// Response HTTP response model
type Response struct {
	Days []string `json:"days"`
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

// Handle GET /api/v1/slots/days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.useCase.ExecuteDays(r.Context())
	if err != nil {
		h.logger.Error("GET /slots/days - Failed to list days: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Days: resp.Days})
}
