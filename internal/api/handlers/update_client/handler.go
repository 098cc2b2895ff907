package update_client

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/service/users"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные клиента"
	msgClientNotFound     = "клиент не найден"
)

// UpdateClientRequest HTTP request model, nil-поля не меняются
type UpdateClientRequest struct {
	BirthDate        *string `json:"birthDate"`
	PackageRemaining *int    `json:"packageRemaining"`
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

// Handle PATCH /api/v1/clients/{clientId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["clientId"]

	var req UpdateClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /clients/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	u, err := h.service.UpdateClient(r.Context(), clientID, &users.UpdateClientRequest{
		BirthDate:        req.BirthDate,
		PackageRemaining: req.PackageRemaining,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PATCH /clients/{id} - Invalid input: client_id=%s, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PATCH /clients/{id} - Not found: client_id=%s", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		default:
			h.logger.Error("PATCH /clients/{id} - Failed: client_id=%s, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /clients/{id} - Client updated: client_id=%s", clientID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewUserView(u))
}
