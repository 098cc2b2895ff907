package trainer_create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	uc "github.com/m04kA/PT-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgSlotUnavailable     = "это время недоступно для записи"
	msgSlotInPast          = "это время уже прошло"
	msgCalendarUnavailable = "календарь временно недоступен, попробуйте позже"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	LastName  string `json:"lastName"`
	FirstName string `json:"firstName"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Start     string `json:"start"`
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

// Handle POST /api/v1/trainer/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /trainer/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.ExecuteWalkIn(r.Context(), &uc.WalkInRequest{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Phone:     req.Phone,
		Date:      req.Date,
		Start:     req.Start,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.logger.Info("POST /trainer/bookings - Booking created: booking_id=%s", resp.Booking.ID)
	handlers.RespondJSON(w, http.StatusCreated, Response{
		Booking:          handlers.NewBookingView(resp.Booking, h.loc),
		PackageRemaining: resp.PackageRemaining,
	})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, uc.ErrInvalidInput):
		h.logger.Warn("POST /trainer/bookings - Invalid input: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	case errors.Is(err, uc.ErrSlotInPast):
		h.logger.Warn("POST /trainer/bookings - Slot in past: %v", err)
		handlers.RespondBadRequest(w, msgSlotInPast)

	case errors.Is(err, uc.ErrNoSchedule),
		errors.Is(err, uc.ErrOutOfWorkingHours),
		errors.Is(err, uc.ErrInBreak),
		errors.Is(err, uc.ErrSlotBusy):
		h.logger.Warn("POST /trainer/bookings - Slot unavailable: %v", err)
		handlers.RespondConflict(w, msgSlotUnavailable)

	case errors.Is(err, uc.ErrCalendarUnavailable):
		h.logger.Error("POST /trainer/bookings - Calendar unavailable: %v", err)
		handlers.RespondBadGateway(w, msgCalendarUnavailable)

	default:
		h.logger.Error("POST /trainer/bookings - Failed to create booking: %v", err)
		handlers.RespondInternalError(w)
	}
}
