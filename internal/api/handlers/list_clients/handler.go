package list_clients

import (
	"net/http"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
)

// Response HTTP response model
type Response struct {
	Clients []handlers.UserView `json:"clients"`
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

// Handle GET /api/v1/clients
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.ListClients(r.Context())
	if err != nil {
		h.logger.Error("GET /clients - Failed to list: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := Response{Clients: make([]handlers.UserView, 0, len(clients))}
	for i := range clients {
		resp.Clients = append(resp.Clients, handlers.NewUserView(&clients[i]))
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
