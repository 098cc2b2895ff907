package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/booking"
)

// Тексты уведомлений
const (
	msgTrainerConfirmed = "✅ %s подтвердил(а) тренировку %s в %s"
	msgTrainerCancelled = "❌ %s отменил(а) тренировку %s в %s"
	msgClientCancelled  = "Ваша тренировка %s в %s отменена тренером"
)

// Service сервис жизненного цикла записей: подтверждение, отмена, списки
type Service struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	auditRepo    AuditRepository
	calendar     CalendarClient
	tg           TelegramClient
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger

	loc       *time.Location
	trainerID int64
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepository BookingRepository,
	userRepository UserRepository,
	auditRepository AuditRepository,
	calendarClient CalendarClient,
	tg TelegramClient,
	txManager TxManager,
	loc *time.Location,
	trainerID int64,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepository,
		userRepo:     userRepository,
		auditRepo:    auditRepository,
		calendar:     calendarClient,
		tg:           tg,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		loc:          loc,
		trainerID:    trainerID,
	}
}

// Confirm подтверждает запись. Повторное подтверждение - no-op
func (s *Service) Confirm(ctx context.Context, bookingID string, callerTGID int64) (*domain.Booking, error) {
	b, err := s.getActive(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(b, callerTGID); err != nil {
		return nil, err
	}

	if b.Confirmed {
		s.logger.Info("ConfirmBooking: booking id=%s already confirmed", bookingID)
		return b, nil
	}

	if err := s.bookingRepo.SetConfirmed(ctx, bookingID, true); err != nil {
		s.logger.Error("ConfirmBooking: failed to set confirmed for id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
	}
	b.Confirmed = true

	if b.EventID != nil {
		if err := s.calendar.ConfirmEvent(ctx, *b.EventID); err != nil {
			// Запись уже подтверждена, маркер в календаре не критичен
			s.logger.Warn("ConfirmBooking: failed to mark event %s: %v", *b.EventID, err)
		}
	}

	s.audit(ctx, "booking_confirmed", b)
	s.notifyTrainer(b, msgTrainerConfirmed)

	s.logger.Info("ConfirmBooking: booking id=%s confirmed", bookingID)
	return b, nil
}

// Cancel отменяет запись. Для клиента действует окно отмены,
// тренер может отменить в любой момент. Занятие возвращается на абонемент,
// только если оно было списано при создании
func (s *Service) Cancel(ctx context.Context, bookingID string, callerTGID int64) (*domain.Booking, error) {
	b, err := s.getActive(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(b, callerTGID); err != nil {
		return nil, err
	}

	byTrainer := callerTGID == s.trainerID
	now := s.timeProvider.Now()
	if !byTrainer && !domain.IsCancellable(b.StartAt, now) {
		s.logger.Warn("CancelBooking: cancel window passed for id=%s", bookingID)
		return nil, ErrCancelWindowPassed
	}

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		// Перевод в терминальный статус срабатывает ровно один раз,
		// поэтому возврат занятия не задвоится
		if err := s.bookingRepo.MarkCancelled(ctx, bookingID); err != nil {
			return err
		}
		if b.UsedPackage {
			if _, err := s.userRepo.AdjustPackage(ctx, b.UserID, 1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("CancelBooking: failed to cancel id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}
	b.Status = domain.StatusCancelled

	if b.EventID != nil {
		if err := s.calendar.DeleteEvent(ctx, *b.EventID); err != nil {
			s.logger.Warn("CancelBooking: failed to delete event %s: %v", *b.EventID, err)
		}
	}

	s.audit(ctx, "booking_cancelled", b)
	if byTrainer {
		s.notifyClient(b, msgClientCancelled)
	} else {
		s.notifyTrainer(b, msgTrainerCancelled)
	}

	s.logger.Info("CancelBooking: booking id=%s cancelled, refund=%v", bookingID, b.UsedPackage)
	return b, nil
}

// ListForUser возвращает активные записи клиента с признаком возможности отмены
func (s *Service) ListForUser(ctx context.Context, tgID int64) ([]BookingView, error) {
	items, err := s.bookingRepo.ListActiveByTelegramID(ctx, tgID)
	if err != nil {
		s.logger.Error("ListBookings: failed to list for tg_id=%d: %v", tgID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	views := make([]BookingView, 0, len(items))
	for _, b := range items {
		views = append(views, BookingView{
			Booking:   b,
			CanCancel: domain.IsCancellable(b.StartAt, now),
		})
	}

	return views, nil
}

// ListRange возвращает активные записи с началом в интервале [from, to)
func (s *Service) ListRange(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	items, err := s.bookingRepo.ListActiveInRange(ctx, from, to)
	if err != nil {
		s.logger.Error("ListBookingsRange: failed to list range: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}
	return items, nil
}

func (s *Service) getActive(ctx context.Context, bookingID string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetBooking: failed to get id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	if !b.IsActive() {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// checkOwner разрешает операцию владельцу записи и тренеру
func (s *Service) checkOwner(b *domain.Booking, callerTGID int64) error {
	if callerTGID == s.trainerID {
		return nil
	}
	if b.TelegramID == 0 || b.TelegramID != callerTGID {
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) notifyTrainer(b *domain.Booking, format string) {
	date := b.StartAt.In(s.loc).Format(domain.DateFormat)
	start := b.StartAt.In(s.loc).Format(domain.TimeFormat)
	if err := s.tg.SendMessage(s.trainerID, fmt.Sprintf(format, b.ClientFullName(), date, start)); err != nil {
		s.logger.Warn("Bookings: failed to notify trainer: %v", err)
	}
}

func (s *Service) notifyClient(b *domain.Booking, format string) {
	if b.TelegramID == 0 {
		return
	}
	date := b.StartAt.In(s.loc).Format(domain.DateFormat)
	start := b.StartAt.In(s.loc).Format(domain.TimeFormat)
	if err := s.tg.SendMessage(b.TelegramID, fmt.Sprintf(format, date, start)); err != nil {
		s.logger.Warn("Bookings: failed to notify client tg_id=%d: %v", b.TelegramID, err)
	}
}

func (s *Service) audit(ctx context.Context, entryType string, b *domain.Booking) {
	payload := map[string]interface{}{
		"booking_id":   b.ID,
		"user_id":      b.UserID,
		"start_at":     b.StartAt.Format(time.RFC3339),
		"used_package": b.UsedPackage,
		"status":       string(b.Status),
	}
	if err := s.auditRepo.Append(ctx, entryType, payload); err != nil {
		s.logger.Warn("Bookings: failed to append audit entry %s: %v", entryType, err)
	}
}
