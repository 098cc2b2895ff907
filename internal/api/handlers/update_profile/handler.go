package update_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/api/middleware"
	"github.com/m04kA/PT-BookingService/internal/service/users"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные профиля"
)

// UpdateProfileRequest HTTP request model
type UpdateProfileRequest struct {
	LastName  *string `json:"lastName,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
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

// Handle PUT /api/v1/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Error("PUT /me - no user in context")
		handlers.RespondInternalError(w)
		return
	}

	var req UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), u.ID, &users.UpdateProfileRequest{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Phone:     req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PUT /me - Invalid input: user_id=%s, error=%v", u.ID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("PUT /me - Failed to update profile: user_id=%s, error=%v", u.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /me - Profile updated: user_id=%s", u.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewUserView(updated))
}
