package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PT-BookingService/internal/domain"
	"github.com/m04kA/PT-BookingService/internal/integrations/calendar"
	scheduleRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/scheduleday"
	settingsRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/settings"
	userRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/user"
	"github.com/m04kA/PT-BookingService/pkg/ptr"
)

// Тексты уведомлений
const (
	msgClientBooked  = "Вы записаны на тренировку %s в %s. Ждем вас!"
	msgTrainerBooked = "Новая запись: %s, %s в %s. Осталось занятий: %d"
	msgWalkInBooked  = "Тренер записал вас на тренировку %s в %s"
	msgLowBalance    = "По вашему абонементу осталось %d занятия. Не забудьте продлить!"
)

// UseCase use case создания записи на тренировку
type UseCase struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	auditRepo    AuditRepository
	calendar     CalendarClient
	tg           TelegramClient
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger

	loc                 *time.Location
	trainerID           int64
	lowBalanceThreshold int
	lowBalanceNotify    bool
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	auditRepo AuditRepository,
	calendarClient CalendarClient,
	tg TelegramClient,
	txManager TxManager,
	loc *time.Location,
	trainerID int64,
	lowBalanceThreshold int,
	lowBalanceNotify bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:         bookingRepo,
		userRepo:            userRepo,
		scheduleRepo:        scheduleRepo,
		settingsRepo:        settingsRepo,
		auditRepo:           auditRepo,
		calendar:            calendarClient,
		tg:                  tg,
		txManager:           txManager,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
		loc:                 loc,
		trainerID:           trainerID,
		lowBalanceThreshold: lowBalanceThreshold,
		lowBalanceNotify:    lowBalanceNotify,
	}
}

// Execute создает запись для аутентифицированного клиента
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.User == nil {
		return nil, fmt.Errorf("%w: missing user", ErrInvalidInput)
	}
	uc.logger.Info("CreateBooking: user=%s, date=%s, start=%s", req.User.ID, req.Date, req.Start)

	if !req.User.HasProfile() {
		uc.logger.Warn("CreateBooking: incomplete profile for user=%s", req.User.ID)
		return nil, ErrProfileIncomplete
	}

	slot, err := uc.validateSlot(ctx, req.Date, req.Start)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:         uuid.NewString(),
		UserID:     req.User.ID,
		TelegramID: ptr.Deref(req.User.TelegramID),
		LastName:   ptr.Deref(req.User.LastName),
		FirstName:  ptr.Deref(req.User.FirstName),
		Phone:      ptr.Deref(req.User.Phone),
		StartAt:    slot.StartAt,
		EndAt:      slot.EndAt,
		Status:     domain.StatusPending,
	}

	resp, err := uc.commit(ctx, req.User, booking, slot)
	if err != nil {
		return nil, err
	}

	uc.audit(ctx, "booking_created", resp.Booking)
	uc.notifyClientAndTrainer(resp, msgClientBooked, false)

	return resp, nil
}

// ExecuteWalkIn создает запись от имени тренера.
// Клиент находится по точному совпадению нормализованного телефона,
// при отсутствии - создается
func (uc *UseCase) ExecuteWalkIn(ctx context.Context, req *WalkInRequest) (*Response, error) {
	if req.LastName == "" || req.FirstName == "" || req.Phone == "" {
		return nil, fmt.Errorf("%w: last name, first name and phone are required", ErrInvalidInput)
	}

	phone := domain.NormalizePhone(req.Phone)
	uc.logger.Info("CreateWalkInBooking: phone=%s, date=%s, start=%s", phone, req.Date, req.Start)

	client, err := uc.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if !errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Error("CreateWalkInBooking: failed to resolve client by phone: %v", err)
			return nil, fmt.Errorf("%w: failed to resolve client: %v", ErrInternal, err)
		}

		client, err = uc.userRepo.Create(ctx, &domain.User{
			ID:        uuid.NewString(),
			LastName:  &req.LastName,
			FirstName: &req.FirstName,
			Phone:     &phone,
			Role:      domain.RoleClient,
		})
		if err != nil {
			uc.logger.Error("CreateWalkInBooking: failed to create client: %v", err)
			return nil, fmt.Errorf("%w: failed to create client: %v", ErrInternal, err)
		}
		uc.logger.Info("CreateWalkInBooking: created new client id=%s", client.ID)
	}

	slot, err := uc.validateSlot(ctx, req.Date, req.Start)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:         uuid.NewString(),
		UserID:     client.ID,
		TelegramID: ptr.Deref(client.TelegramID),
		LastName:   req.LastName,
		FirstName:  req.FirstName,
		Phone:      phone,
		StartAt:    slot.StartAt,
		EndAt:      slot.EndAt,
		Status:     domain.StatusPending,
	}

	resp, err := uc.commit(ctx, client, booking, slot)
	if err != nil {
		return nil, err
	}

	uc.audit(ctx, "trainer_booked", resp.Booking)
	// Клиент не сам создал запись - даем подтвердить или отменить кнопками
	uc.notifyClientAndTrainer(resp, msgWalkInBooked, true)

	return resp, nil
}

// validateSlot разбирает слот и проверяет его против графика,
// перерывов и занятых интервалов
func (uc *UseCase) validateSlot(ctx context.Context, date, start string) (*slotTimes, error) {
	durationMinutes := uc.durationMinutes(ctx)

	slot, err := parseSlot(date, start, durationMinutes, uc.loc)
	if err != nil {
		uc.logger.Warn("CreateBooking: slot parse failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now().In(uc.loc)
	if !slot.StartAt.After(now) {
		return nil, ErrSlotInPast
	}

	sd, err := uc.scheduleRepo.GetByDay(ctx, date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDayNotFound) {
			return nil, ErrNoSchedule
		}
		uc.logger.Error("CreateBooking: failed to get schedule for %s: %v", date, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	if err := validateWorkingHours(sd, slot); err != nil {
		return nil, err
	}
	if err := validateBreaks(sd, slot, uc.loc); err != nil {
		return nil, err
	}

	busy, err := uc.calendar.ListBusy(ctx, date)
	if err != nil {
		uc.logger.Error("CreateBooking: calendar unavailable for %s: %v", date, err)
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	overlapping, err := uc.bookingRepo.ListActiveOverlapping(ctx, slot.StartAt, slot.EndAt)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list overlapping bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	if err := validateBusy(slot, busy, overlapping); err != nil {
		return nil, err
	}

	return slot, nil
}

// commit выполняет двухфазную фиксацию записи:
// списание занятия и вставка pending в одной serializable транзакции,
// затем создание события календаря; при неудаче - возврат занятия и rolled_back
func (uc *UseCase) commit(ctx context.Context, client *domain.User, booking *domain.Booking, slot *slotTimes) (*Response, error) {
	usedPackage := false
	remaining := client.PackageRemaining

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if client.PackageRemaining > 0 {
			after, err := uc.userRepo.AdjustPackage(ctx, client.ID, -1)
			switch {
			case errors.Is(err, userRepo.ErrNegativeBalance):
				// Баланс успели обнулить - записываем без абонемента
				remaining = 0
			case err != nil:
				return err
			default:
				usedPackage = true
				remaining = after
			}
		}

		booking.UsedPackage = usedPackage
		_, err := uc.bookingRepo.Create(ctx, booking)
		return err
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create pending booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	title := fmt.Sprintf("%s (%d)", booking.ClientFullName(), remaining)
	eventID, err := uc.calendar.CreateBookingEvent(ctx, calendar.CreateEventParams{
		StartISO:    booking.StartAt.Format(time.RFC3339),
		EndISO:      booking.EndAt.Format(time.RFC3339),
		Title:       title,
		Description: booking.Phone,
		BookingID:   booking.ID,
	})
	if err != nil {
		uc.rollback(ctx, booking, usedPackage)
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	if err := uc.bookingRepo.Commit(ctx, booking.ID, eventID); err != nil {
		uc.logger.Error("CreateBooking: failed to commit booking id=%s: %v", booking.ID, err)
		// Событие уже в календаре - убираем его, чтобы слот не остался занятым
		if delErr := uc.calendar.DeleteEvent(ctx, eventID); delErr != nil {
			uc.logger.Warn("CreateBooking: failed to delete event %s after commit failure: %v", eventID, delErr)
		}
		uc.rollback(ctx, booking, usedPackage)
		return nil, fmt.Errorf("%w: failed to commit booking: %v", ErrInternal, err)
	}

	booking.Status = domain.StatusActive
	booking.EventID = &eventID

	uc.logger.Info("CreateBooking: booking id=%s committed, event=%s, used_package=%v, remaining=%d",
		booking.ID, eventID, usedPackage, remaining)

	return &Response{
		Booking:          booking,
		UsedPackage:      usedPackage,
		PackageRemaining: remaining,
	}, nil
}

// rollback возвращает списанное занятие и помечает запись rolled_back
func (uc *UseCase) rollback(ctx context.Context, booking *domain.Booking, usedPackage bool) {
	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if usedPackage {
			if _, err := uc.userRepo.AdjustPackage(ctx, booking.UserID, 1); err != nil {
				return err
			}
		}
		return uc.bookingRepo.MarkRolledBack(ctx, booking.ID)
	})
	if err != nil {
		uc.logger.Error("CreateBooking: rollback failed for booking id=%s: %v", booking.ID, err)
		return
	}

	booking.Status = domain.StatusRolledBack
	uc.audit(ctx, "booking_rolled_back", booking)
	uc.logger.Warn("CreateBooking: booking id=%s rolled back", booking.ID)
}

func (uc *UseCase) notifyClientAndTrainer(resp *Response, clientMsg string, withButtons bool) {
	b := resp.Booking
	date := b.StartAt.In(uc.loc).Format(domain.DateFormat)
	start := b.StartAt.In(uc.loc).Format(domain.TimeFormat)

	if b.TelegramID != 0 {
		text := fmt.Sprintf(clientMsg, date, start)
		var err error
		if withButtons {
			err = uc.tg.SendWithConfirmCancel(b.TelegramID, text, b.ID)
		} else {
			err = uc.tg.SendMessage(b.TelegramID, text)
		}
		if err != nil {
			uc.logger.Warn("CreateBooking: failed to notify client tg_id=%d: %v", b.TelegramID, err)
		}

		if resp.UsedPackage && uc.lowBalanceNotify && resp.PackageRemaining == uc.lowBalanceThreshold {
			if err := uc.tg.SendMessage(b.TelegramID, fmt.Sprintf(msgLowBalance, resp.PackageRemaining)); err != nil {
				uc.logger.Warn("CreateBooking: failed to send low balance notice tg_id=%d: %v", b.TelegramID, err)
			}
		}
	}

	trainerMsg := fmt.Sprintf(msgTrainerBooked, b.ClientFullName(), date, start, resp.PackageRemaining)
	if err := uc.tg.SendMessage(uc.trainerID, trainerMsg); err != nil {
		uc.logger.Warn("CreateBooking: failed to notify trainer: %v", err)
	}
}

func (uc *UseCase) audit(ctx context.Context, entryType string, b *domain.Booking) {
	payload := map[string]interface{}{
		"booking_id":   b.ID,
		"user_id":      b.UserID,
		"start_at":     b.StartAt.Format(time.RFC3339),
		"used_package": b.UsedPackage,
		"status":       string(b.Status),
	}
	if err := uc.auditRepo.Append(ctx, entryType, payload); err != nil {
		uc.logger.Warn("CreateBooking: failed to append audit entry %s: %v", entryType, err)
	}
}

// durationMinutes возвращает настроенную длительность тренировки
func (uc *UseCase) durationMinutes(ctx context.Context) int {
	raw, err := uc.settingsRepo.Get(ctx, domain.SettingDurationMin)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingNotFound) {
			uc.logger.Warn("CreateBooking: failed to read duration setting: %v", err)
		}
		return domain.DefaultDurationMinutes
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil || !domain.IsAllowedDuration(minutes) {
		uc.logger.Warn("CreateBooking: bad duration setting %q, using default", raw)
		return domain.DefaultDurationMinutes
	}

	return minutes
}
