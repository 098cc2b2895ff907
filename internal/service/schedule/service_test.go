package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PT-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/scheduleday"
	settingsRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/PT-BookingService/pkg/types"
)

type fakeScheduleRepo struct {
	days map[string]*domain.ScheduleDay
}

func (f *fakeScheduleRepo) GetByDay(_ context.Context, day string) (*domain.ScheduleDay, error) {
	sd, ok := f.days[day]
	if !ok {
		return nil, scheduleRepo.ErrDayNotFound
	}
	return sd, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, sd *domain.ScheduleDay) error {
	f.days[sd.Day] = sd
	return nil
}

type fakeSettingsRepo struct {
	values map[string]string
}

func (f *fakeSettingsRepo) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", settingsRepo.ErrSettingNotFound
	}
	return v, nil
}

func (f *fakeSettingsRepo) Set(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

type fakeAuditRepo struct {
	entries []string
}

func (f *fakeAuditRepo) Append(_ context.Context, entryType string, _ interface{}) error {
	f.entries = append(f.entries, entryType)
	return nil
}

type fakeCalendar struct {
	synced []string
}

func (f *fakeCalendar) UpsertWorkDay(_ context.Context, day string, _, _ *types.TimeString, _ []domain.BreakInterval) error {
	f.synced = append(f.synced, day)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *fakeScheduleRepo, *fakeSettingsRepo, *fakeCalendar, *fakeAuditRepo) {
	schedule := &fakeScheduleRepo{days: map[string]*domain.ScheduleDay{}}
	settings := &fakeSettingsRepo{values: map[string]string{}}
	audit := &fakeAuditRepo{}
	cal := &fakeCalendar{}
	svc := NewService(schedule, settings, audit, cal, nopLogger{})
	return svc, schedule, settings, cal, audit
}

func TestDuration_DefaultAndRoundTrip(t *testing.T) {
	svc, _, _, _, audit := newService()
	ctx := context.Background()

	minutes, err := svc.GetDuration(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDurationMinutes, minutes)

	require.NoError(t, svc.SetDuration(ctx, 90))
	minutes, err = svc.GetDuration(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90, minutes)
	assert.Contains(t, audit.entries, "duration_set")
}

func TestSetDuration_RejectsUnknownValues(t *testing.T) {
	svc, _, _, _, _ := newService()

	for _, minutes := range []int{0, 15, 45, 180, -60} {
		assert.ErrorIs(t, svc.SetDuration(context.Background(), minutes), ErrInvalidDuration)
	}
}

func TestUpsertDay_SavesAndSyncsCalendar(t *testing.T) {
	svc, schedule, _, cal, audit := newService()

	sd, err := svc.UpsertDay(context.Background(), &UpsertDayRequest{
		Day:       "2025-06-02",
		StartTime: "10:00",
		EndTime:   "21:00",
		Breaks:    []BreakInput{{Start: "13:00", End: "13:30"}},
	})
	require.NoError(t, err)

	assert.True(t, sd.HasWorkingHours())
	require.Len(t, sd.Breaks, 1)
	assert.Equal(t, sd, schedule.days["2025-06-02"])
	assert.Equal(t, []string{"2025-06-02"}, cal.synced)
	assert.Contains(t, audit.entries, "schedule_day_set")
}

func TestUpsertDay_DayOff(t *testing.T) {
	svc, _, _, _, _ := newService()

	sd, err := svc.UpsertDay(context.Background(), &UpsertDayRequest{Day: "2025-06-02"})
	require.NoError(t, err)
	assert.False(t, sd.HasWorkingHours())
}

func TestUpsertDay_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  UpsertDayRequest
	}{
		{name: "bad day", req: UpsertDayRequest{Day: "02.06.2025", StartTime: "10:00", EndTime: "21:00"}},
		{name: "inverted hours", req: UpsertDayRequest{Day: "2025-06-02", StartTime: "21:00", EndTime: "10:00"}},
		{name: "bad start", req: UpsertDayRequest{Day: "2025-06-02", StartTime: "10", EndTime: "21:00"}},
		{name: "breaks on day off", req: UpsertDayRequest{Day: "2025-06-02", Breaks: []BreakInput{{Start: "13:00", End: "14:00"}}}},
		{name: "inverted break", req: UpsertDayRequest{Day: "2025-06-02", StartTime: "10:00", EndTime: "21:00", Breaks: []BreakInput{{Start: "14:00", End: "13:00"}}}},
		{name: "break outside hours", req: UpsertDayRequest{Day: "2025-06-02", StartTime: "10:00", EndTime: "21:00", Breaks: []BreakInput{{Start: "09:00", End: "10:30"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _, _ := newService()
			_, err := svc.UpsertDay(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCopyDay_CopiesScheduleToTargets(t *testing.T) {
	svc, schedule, _, cal, audit := newService()
	ctx := context.Background()

	_, err := svc.UpsertDay(ctx, &UpsertDayRequest{
		Day:       "2025-06-02",
		StartTime: "10:00",
		EndTime:   "21:00",
		Breaks:    []BreakInput{{Start: "13:00", End: "13:30"}},
	})
	require.NoError(t, err)

	copied, err := svc.CopyDay(ctx, &CopyDayRequest{
		FromDay: "2025-06-02",
		ToDays:  []string{"2025-06-03", "2025-06-04"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, copied)

	for _, day := range []string{"2025-06-03", "2025-06-04"} {
		sd := schedule.days[day]
		require.NotNil(t, sd)
		assert.Equal(t, types.TimeString("10:00"), *sd.StartTime)
		assert.Len(t, sd.Breaks, 1)
	}
	assert.Len(t, cal.synced, 3)
	assert.Contains(t, audit.entries, "schedule_copied")
}

func TestCopyDay_MissingSource(t *testing.T) {
	svc, _, _, _, _ := newService()

	_, err := svc.CopyDay(context.Background(), &CopyDayRequest{
		FromDay: "2025-06-02",
		ToDays:  []string{"2025-06-03"},
	})
	assert.ErrorIs(t, err, ErrDayNotFound)
}
