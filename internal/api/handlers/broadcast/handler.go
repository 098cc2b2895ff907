package broadcast

import (
	"errors"
	"net/http"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/service/users"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptyMessage       = "текст рассылки не должен быть пустым"
)

// BroadcastRequest HTTP request model
type BroadcastRequest struct {
	Text string `json:"text"`
}

// Response HTTP response model
type Response struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

type Handler struct {
	service UsersService
	logger  Logger
}

func NewHandler(service UsersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/broadcast
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BroadcastRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /broadcast - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Broadcast(r.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("POST /broadcast - Empty message")
			handlers.RespondBadRequest(w, msgEmptyMessage)

		default:
			h.logger.Error("POST /broadcast - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /broadcast - Done: sent=%d, failed=%d", result.Sent, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, Response{Sent: result.Sent, Failed: result.Failed})
}
