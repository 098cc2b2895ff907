package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/scheduleday"
	settingsRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/settings"
)

// UseCase use case получения свободных слотов для записи на тренировку
type UseCase struct {
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	calendar     CalendarClient
	timeProvider TimeProvider
	logger       Logger
	loc          *time.Location
	horizonDays  int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	calendar CalendarClient,
	loc *time.Location,
	horizonDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		calendar:     calendar,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		loc:          loc,
		horizonDays:  horizonDays,
	}
}

// Execute возвращает свободные слоты на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date)

	now := uc.timeProvider.Now().In(uc.loc)

	day, err := uc.validateDate(req.Date, now)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	durationMinutes := uc.durationMinutes(ctx)

	resp := &Response{
		Date:            req.Date,
		DurationMinutes: durationMinutes,
		Slots:           []Slot{},
	}

	sd, err := uc.scheduleRepo.GetByDay(ctx, req.Date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDayNotFound) {
			// Нет графика - выходной
			return resp, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	if !sd.HasWorkingHours() {
		return resp, nil
	}

	busy, err := uc.calendar.ListBusy(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: calendar unavailable for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	slots, err := buildSlots(day, sd, busy, durationMinutes, uc.loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slots for %s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	// Слоты, которые уже начались, не предлагаем
	for _, s := range slots {
		if s.StartAt.After(now) {
			resp.Slots = append(resp.Slots, s)
		}
	}

	uc.logger.Info("GetAvailableSlots: date=%s, duration=%d, slots=%d", req.Date, durationMinutes, len(resp.Slots))
	return resp, nil
}

// ExecuteDays возвращает рабочие дни в горизонте записи
func (uc *UseCase) ExecuteDays(ctx context.Context) (*DaysResponse, error) {
	now := uc.timeProvider.Now().In(uc.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)

	days := make([]string, 0, uc.horizonDays)
	for i := 0; i < uc.horizonDays; i++ {
		day := today.AddDate(0, 0, i).Format(domain.DateFormat)

		sd, err := uc.scheduleRepo.GetByDay(ctx, day)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrDayNotFound) {
				continue
			}
			uc.logger.Error("GetAvailableDays: failed to get schedule for %s: %v", day, err)
			return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		if sd.HasWorkingHours() {
			days = append(days, day)
		}
	}

	return &DaysResponse{Days: days}, nil
}

func (uc *UseCase) validateDate(date string, now time.Time) (time.Time, error) {
	day, err := time.ParseInLocation(domain.DateFormat, date, uc.loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	if day.Before(today) {
		return time.Time{}, ErrDateInPast
	}
	if !day.Before(today.AddDate(0, 0, uc.horizonDays)) {
		return time.Time{}, ErrDateTooFarInFuture
	}

	return day, nil
}

// durationMinutes возвращает настроенную длительность тренировки.
// При отсутствии или порче настройки используется значение по умолчанию
func (uc *UseCase) durationMinutes(ctx context.Context) int {
	raw, err := uc.settingsRepo.Get(ctx, domain.SettingDurationMin)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingNotFound) {
			uc.logger.Warn("GetAvailableSlots: failed to read duration setting: %v", err)
		}
		return domain.DefaultDurationMinutes
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil || !domain.IsAllowedDuration(minutes) {
		uc.logger.Warn("GetAvailableSlots: bad duration setting %q, using default", raw)
		return domain.DefaultDurationMinutes
	}

	return minutes
}
