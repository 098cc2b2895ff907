package schedule

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/scheduleday"
	settingsRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/PT-BookingService/pkg/types"
)

// Service сервис управления графиком работы и настройками тренировок
type Service struct {
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	auditRepo    AuditRepository
	calendar     CalendarClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса графика
func NewService(
	scheduleRepository ScheduleRepository,
	settingsRepository SettingsRepository,
	auditRepository AuditRepository,
	calendarClient CalendarClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepository,
		settingsRepo: settingsRepository,
		auditRepo:    auditRepository,
		calendar:     calendarClient,
		logger:       logger,
	}
}

// GetDuration возвращает настроенную длительность тренировки в минутах
func (s *Service) GetDuration(ctx context.Context) (int, error) {
	raw, err := s.settingsRepo.Get(ctx, domain.SettingDurationMin)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingNotFound) {
			return domain.DefaultDurationMinutes, nil
		}
		s.logger.Error("GetDuration: failed to read setting: %v", err)
		return 0, fmt.Errorf("%w: failed to read setting: %v", ErrInternal, err)
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil || !domain.IsAllowedDuration(minutes) {
		s.logger.Warn("GetDuration: bad duration setting %q, using default", raw)
		return domain.DefaultDurationMinutes, nil
	}

	return minutes, nil
}

// SetDuration устанавливает длительность тренировки
func (s *Service) SetDuration(ctx context.Context, minutes int) error {
	if !domain.IsAllowedDuration(minutes) {
		return fmt.Errorf("%w: %d minutes", ErrInvalidDuration, minutes)
	}

	if err := s.settingsRepo.Set(ctx, domain.SettingDurationMin, strconv.Itoa(minutes)); err != nil {
		s.logger.Error("SetDuration: failed to save setting: %v", err)
		return fmt.Errorf("%w: failed to save setting: %v", ErrInternal, err)
	}

	s.audit(ctx, "duration_set", map[string]interface{}{"duration_min": minutes})
	s.logger.Info("SetDuration: duration set to %d minutes", minutes)
	return nil
}

// GetDay возвращает график на дату. Отсутствие графика - выходной
func (s *Service) GetDay(ctx context.Context, day string) (*domain.ScheduleDay, error) {
	if _, err := time.Parse(domain.DateFormat, day); err != nil {
		return nil, fmt.Errorf("%w: bad day %q", ErrInvalidInput, day)
	}

	sd, err := s.scheduleRepo.GetByDay(ctx, day)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDayNotFound) {
			return &domain.ScheduleDay{Day: day}, nil
		}
		s.logger.Error("GetScheduleDay: failed to get %s: %v", day, err)
		return nil, fmt.Errorf("%w: failed to get schedule day: %v", ErrInternal, err)
	}

	return sd, nil
}

// UpsertDay устанавливает график на дату и синхронизирует его
// с календарем тренера
func (s *Service) UpsertDay(ctx context.Context, req *UpsertDayRequest) (*domain.ScheduleDay, error) {
	sd, err := buildScheduleDay(req)
	if err != nil {
		s.logger.Warn("UpsertScheduleDay: validation failed: %v", err)
		return nil, err
	}

	if err := s.scheduleRepo.Upsert(ctx, sd); err != nil {
		s.logger.Error("UpsertScheduleDay: failed to save %s: %v", req.Day, err)
		return nil, fmt.Errorf("%w: failed to save schedule day: %v", ErrInternal, err)
	}

	s.syncCalendar(ctx, sd)
	s.audit(ctx, "schedule_day_set", map[string]interface{}{
		"day":        sd.Day,
		"start_time": sd.StartTime,
		"end_time":   sd.EndTime,
		"breaks":     len(sd.Breaks),
	})

	s.logger.Info("UpsertScheduleDay: day %s saved", sd.Day)
	return sd, nil
}

// CopyDay копирует график дня-источника на другие даты
func (s *Service) CopyDay(ctx context.Context, req *CopyDayRequest) (int, error) {
	if len(req.ToDays) == 0 {
		return 0, fmt.Errorf("%w: no target days", ErrInvalidInput)
	}
	for _, day := range append([]string{req.FromDay}, req.ToDays...) {
		if _, err := time.Parse(domain.DateFormat, day); err != nil {
			return 0, fmt.Errorf("%w: bad day %q", ErrInvalidInput, day)
		}
	}

	src, err := s.scheduleRepo.GetByDay(ctx, req.FromDay)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDayNotFound) {
			return 0, ErrDayNotFound
		}
		s.logger.Error("CopyScheduleDay: failed to get source %s: %v", req.FromDay, err)
		return 0, fmt.Errorf("%w: failed to get source day: %v", ErrInternal, err)
	}

	copied := 0
	for _, day := range req.ToDays {
		target := &domain.ScheduleDay{
			Day:       day,
			StartTime: src.StartTime,
			EndTime:   src.EndTime,
			Breaks:    src.Breaks,
		}
		if err := s.scheduleRepo.Upsert(ctx, target); err != nil {
			s.logger.Error("CopyScheduleDay: failed to save %s: %v", day, err)
			return copied, fmt.Errorf("%w: failed to save day %s: %v", ErrInternal, day, err)
		}
		s.syncCalendar(ctx, target)
		copied++
	}

	s.audit(ctx, "schedule_copied", map[string]interface{}{
		"from_day": req.FromDay,
		"to_days":  req.ToDays,
	})

	s.logger.Info("CopyScheduleDay: copied %s to %d days", req.FromDay, copied)
	return copied, nil
}

// syncCalendar отражает рабочие часы в календаре тренера.
// График уже сохранен, поэтому ошибка синхронизации не фатальна
func (s *Service) syncCalendar(ctx context.Context, sd *domain.ScheduleDay) {
	if err := s.calendar.UpsertWorkDay(ctx, sd.Day, sd.StartTime, sd.EndTime, sd.Breaks); err != nil {
		s.logger.Warn("Schedule: failed to sync day %s with calendar: %v", sd.Day, err)
	}
}

func (s *Service) audit(ctx context.Context, entryType string, payload interface{}) {
	if err := s.auditRepo.Append(ctx, entryType, payload); err != nil {
		s.logger.Warn("Schedule: failed to append audit entry %s: %v", entryType, err)
	}
}

// buildScheduleDay валидирует запрос и собирает доменную модель дня
func buildScheduleDay(req *UpsertDayRequest) (*domain.ScheduleDay, error) {
	if _, err := time.Parse(domain.DateFormat, req.Day); err != nil {
		return nil, fmt.Errorf("%w: bad day %q", ErrInvalidInput, req.Day)
	}

	sd := &domain.ScheduleDay{Day: req.Day}

	// Выходной: оба времени пустые, перерывы не имеют смысла
	if req.StartTime == "" && req.EndTime == "" {
		if len(req.Breaks) > 0 {
			return nil, fmt.Errorf("%w: breaks without working hours", ErrInvalidInput)
		}
		return sd, nil
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start time %q", ErrInvalidInput, req.StartTime)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end time %q", ErrInvalidInput, req.EndTime)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}
	sd.StartTime = &start
	sd.EndTime = &end

	for _, b := range req.Breaks {
		bStart, err := types.NewTimeStringFromString(b.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: bad break start %q", ErrInvalidInput, b.Start)
		}
		bEnd, err := types.NewTimeStringFromString(b.End)
		if err != nil {
			return nil, fmt.Errorf("%w: bad break end %q", ErrInvalidInput, b.End)
		}
		if !bStart.IsBefore(bEnd) {
			return nil, fmt.Errorf("%w: break start must be before break end", ErrInvalidInput)
		}
		if bStart.IsBefore(start) || bEnd.IsAfter(end) {
			return nil, fmt.Errorf("%w: break is outside working hours", ErrInvalidInput)
		}
		sd.Breaks = append(sd.Breaks, domain.BreakInterval{Start: bStart, End: bEnd})
	}

	return sd, nil
}
