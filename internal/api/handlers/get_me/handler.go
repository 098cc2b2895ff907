package get_me

import (
	"net/http"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/api/middleware"
)

// Response HTTP response model
type Response struct {
	User handlers.UserView `json:"user"`
	// Username тренера, чтобы клиент мог написать напрямую
	TrainerUsername string `json:"trainerUsername,omitempty"`
}

type Handler struct {
	trainerUsername string
	logger          Logger
}

func NewHandler(trainerUsername string, logger Logger) *Handler {
	return &Handler{
		trainerUsername: trainerUsername,
		logger:          logger,
	}
}

// Handle GET /api/v1/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Error("GET /me - no user in context")
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		User:            handlers.NewUserView(u),
		TrainerUsername: h.trainerUsername,
	})
}
