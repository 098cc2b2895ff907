package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
	"github.com/m04kA/PT-BookingService/pkg/metrics"
)

// Тексты напоминаний
const (
	msgDayAhead        = "Напоминаем: завтра %s в %s у вас тренировка. Подтвердите, пожалуйста, что придете"
	msgPreSession      = "Тренировка сегодня в %s. До встречи!"
	msgBirthdayClient  = "С днем рождения, %s! 🎉 Желаем отличных тренировок и новых рекордов!"
	msgBirthdayTrainer = "🎂 Сегодня день рождения у клиента %s"
)

// Горизонт выборки записей на тик
const (
	scanBack    = 24 * time.Hour
	scanForward = 7 * 24 * time.Hour
)

// Scheduler фоновый планировщик напоминаний и поздравлений.
// Работает на фиксированном тикере, отметки об отправке персистентны,
// поэтому перезапуск сервиса не приводит к дублям
type Scheduler struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	auditRepo    AuditRepository
	tg           TelegramClient
	metrics      *metrics.Metrics
	timeProvider TimeProvider
	logger       Logger

	tickInterval time.Duration
	birthdayHour int
	loc          *time.Location
	trainerID    int64

	// Дата последнего прогона поздравлений, чтобы не слать дважды в день
	lastBirthdayRun string
}

// New создает новый планировщик
func New(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	auditRepo AuditRepository,
	tg TelegramClient,
	m *metrics.Metrics,
	tickInterval time.Duration,
	birthdayHour int,
	loc *time.Location,
	trainerID int64,
	logger Logger,
) *Scheduler {
	return &Scheduler{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		tg:           tg,
		metrics:      m,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		tickInterval: tickInterval,
		birthdayHour: birthdayHour,
		loc:          loc,
		trainerID:    trainerID,
	}
}

// Run запускает цикл планировщика до отмены контекста
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Scheduler: started, tick=%s, birthday_hour=%d", s.tickInterval, s.birthdayHour)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler: stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick один проход: напоминания по записям и поздравления
func (s *Scheduler) tick(ctx context.Context) {
	s.metrics.SchedulerTicksTotal.Inc()
	now := s.timeProvider.Now().In(s.loc)

	bookings, err := s.bookingRepo.ListActiveInRange(ctx, now.Add(-scanBack), now.Add(scanForward))
	if err != nil {
		s.logger.Error("Scheduler: failed to list bookings: %v", err)
	} else {
		for i := range bookings {
			s.remind(ctx, &bookings[i], now)
		}
	}

	s.runBirthdays(ctx, now)
}

// remind отправляет напоминания по одной записи.
// Ошибка по одной записи не прерывает проход
func (s *Scheduler) remind(ctx context.Context, b *domain.Booking, now time.Time) {
	if b.TelegramID == 0 {
		return
	}

	start := b.StartAt.In(s.loc)

	if !b.RemindedDayAhead && shouldSendDayAhead(b.StartAt, now) {
		text := fmt.Sprintf(msgDayAhead, start.Format(domain.DateFormat), start.Format(domain.TimeFormat))
		if err := s.tg.SendWithConfirmCancel(b.TelegramID, text, b.ID); err != nil {
			s.logger.Error("Scheduler: failed to send day-ahead reminder for booking id=%s: %v", b.ID, err)
			s.auditError(ctx, "day_ahead", b.ID, err)
			return
		}
		// Отметка после успешной отправки
		if err := s.bookingRepo.MarkRemindedDayAhead(ctx, b.ID); err != nil {
			s.logger.Error("Scheduler: failed to mark day-ahead reminder for booking id=%s: %v", b.ID, err)
			return
		}
		s.metrics.RemindersSentTotal.WithLabelValues("day_ahead").Inc()
		s.logger.Info("Scheduler: day-ahead reminder sent for booking id=%s", b.ID)
	}

	if !b.RemindedPreSession && shouldSendPreSession(b.StartAt, now) {
		text := fmt.Sprintf(msgPreSession, start.Format(domain.TimeFormat))
		if err := s.tg.SendMessage(b.TelegramID, text); err != nil {
			s.logger.Error("Scheduler: failed to send pre-session reminder for booking id=%s: %v", b.ID, err)
			s.auditError(ctx, "pre_session", b.ID, err)
			return
		}
		if err := s.bookingRepo.MarkRemindedPreSession(ctx, b.ID); err != nil {
			s.logger.Error("Scheduler: failed to mark pre-session reminder for booking id=%s: %v", b.ID, err)
			return
		}
		s.metrics.RemindersSentTotal.WithLabelValues("pre_session").Inc()
		s.logger.Info("Scheduler: pre-session reminder sent for booking id=%s", b.ID)
	}
}

// auditError фиксирует сбой отправки напоминания в журнале событий
func (s *Scheduler) auditError(ctx context.Context, kind, bookingID string, sendErr error) {
	err := s.auditRepo.Append(ctx, "scheduler_error", map[string]interface{}{
		"kind":       kind,
		"booking_id": bookingID,
		"error":      sendErr.Error(),
	})
	if err != nil {
		s.logger.Warn("Scheduler: failed to append audit entry: %v", err)
	}
}

// runBirthdays раз в день, начиная с настроенного часа,
// поздравляет клиентов с днем рождения
func (s *Scheduler) runBirthdays(ctx context.Context, now time.Time) {
	if now.Hour() < s.birthdayHour {
		return
	}
	today := now.Format(domain.DateFormat)
	if s.lastBirthdayRun == today {
		return
	}
	s.lastBirthdayRun = today

	clients, err := s.userRepo.ListClients(ctx)
	if err != nil {
		s.logger.Error("Scheduler: failed to list clients for birthdays: %v", err)
		return
	}

	monthDay := now.Format("01-02")
	for _, c := range clients {
		if !c.BirthdayMatches(monthDay) {
			continue
		}

		name := c.FullName()
		if c.HasTelegram() {
			if err := s.tg.SendMessage(*c.TelegramID, fmt.Sprintf(msgBirthdayClient, name)); err != nil {
				s.logger.Error("Scheduler: failed to send birthday greeting to tg_id=%d: %v", *c.TelegramID, err)
				continue
			}
		}
		if err := s.tg.SendMessage(s.trainerID, fmt.Sprintf(msgBirthdayTrainer, name)); err != nil {
			s.logger.Warn("Scheduler: failed to notify trainer about birthday of %s: %v", name, err)
		}

		if err := s.auditRepo.Append(ctx, "birthday_sent", map[string]interface{}{"client_id": c.ID}); err != nil {
			s.logger.Warn("Scheduler: failed to append audit entry: %v", err)
		}
		s.metrics.RemindersSentTotal.WithLabelValues("birthday").Inc()
		s.logger.Info("Scheduler: birthday greeting sent for client id=%s", c.ID)
	}
}
