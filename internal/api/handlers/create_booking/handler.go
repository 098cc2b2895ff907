package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/api/middleware"
	uc "github.com/m04kA/PT-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgProfileIncomplete   = "заполните профиль: фамилию, имя и телефон"
	msgSlotUnavailable     = "это время недоступно для записи"
	msgSlotInPast          = "это время уже прошло"
	msgCalendarUnavailable = "календарь тренера временно недоступен, попробуйте позже"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date  string `json:"date"`
	Start string `json:"start"`
}

// Response HTTP response model
type Response struct {
	Booking          handlers.BookingView `json:"booking"`
	PackageRemaining int                  `json:"packageRemaining"`
}

type Handler struct {
	useCase BookingUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase BookingUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.logger.Error("POST /bookings - no user in context")
		handlers.RespondInternalError(w)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &uc.Request{
		User:  u,
		Date:  req.Date,
		Start: req.Start,
	})
	if err != nil {
		h.respondError(w, u.ID, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, user_id=%s", resp.Booking.ID, u.ID)
	handlers.RespondJSON(w, http.StatusCreated, Response{
		Booking:          handlers.NewBookingView(resp.Booking, h.loc),
		PackageRemaining: resp.PackageRemaining,
	})
}

func (h *Handler) respondError(w http.ResponseWriter, userID string, err error) {
	switch {
	case errors.Is(err, uc.ErrInvalidInput):
		h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	case errors.Is(err, uc.ErrProfileIncomplete):
		h.logger.Warn("POST /bookings - Incomplete profile: user_id=%s", userID)
		handlers.RespondBadRequest(w, msgProfileIncomplete)

	case errors.Is(err, uc.ErrSlotInPast):
		h.logger.Warn("POST /bookings - Slot in past: user_id=%s", userID)
		handlers.RespondBadRequest(w, msgSlotInPast)

	case errors.Is(err, uc.ErrNoSchedule),
		errors.Is(err, uc.ErrOutOfWorkingHours),
		errors.Is(err, uc.ErrInBreak),
		errors.Is(err, uc.ErrSlotBusy):
		h.logger.Warn("POST /bookings - Slot unavailable: user_id=%s, error=%v", userID, err)
		handlers.RespondConflict(w, msgSlotUnavailable)

	case errors.Is(err, uc.ErrCalendarUnavailable):
		h.logger.Error("POST /bookings - Calendar unavailable: user_id=%s, error=%v", userID, err)
		handlers.RespondBadGateway(w, msgCalendarUnavailable)

	default:
		h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
	}
}
