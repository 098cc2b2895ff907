package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PT-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PT-BookingService/pkg/ptr"
)

const (
	trainerChatID = int64(100)
	clientChatID  = int64(500)
)

type fakeBookingRepo struct {
	items          map[string]*domain.Booking
	confirmedCalls int
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) SetConfirmed(_ context.Context, id string, confirmed bool) error {
	f.confirmedCalls++
	f.items[id].Confirmed = confirmed
	return nil
}

func (f *fakeBookingRepo) MarkCancelled(_ context.Context, id string) error {
	b, ok := f.items[id]
	if !ok || b.Status != domain.StatusActive {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	return nil
}

func (f *fakeBookingRepo) ListActiveByTelegramID(_ context.Context, tgID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.items {
		if b.TelegramID == tgID && b.Status == domain.StatusActive {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListActiveInRange(_ context.Context, from, to time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.items {
		if b.Status == domain.StatusActive && !b.StartAt.Before(from) && b.StartAt.Before(to) {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	balances map[string]int
}

func (f *fakeUserRepo) AdjustPackage(_ context.Context, id string, delta int) (int, error) {
	f.balances[id] += delta
	return f.balances[id], nil
}

type fakeAuditRepo struct {
	entries []string
}

func (f *fakeAuditRepo) Append(_ context.Context, entryType string, _ interface{}) error {
	f.entries = append(f.entries, entryType)
	return nil
}

type fakeCalendar struct {
	confirmed []string
	deleted   []string
}

func (f *fakeCalendar) ConfirmEvent(_ context.Context, eventID string) error {
	f.confirmed = append(f.confirmed, eventID)
	return nil
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, eventID string) error {
	f.deleted = append(f.deleted, eventID)
	return nil
}

type fakeTelegram struct {
	messages map[int64][]string
}

func (f *fakeTelegram) SendMessage(chatID int64, text string) error {
	f.messages[chatID] = append(f.messages[chatID], text)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type env struct {
	svc      *Service
	bookings *fakeBookingRepo
	users    *fakeUserRepo
	cal      *fakeCalendar
	tg       *fakeTelegram
	audit    *fakeAuditRepo
	now      time.Time
}

func newEnv(t *testing.T, items ...*domain.Booking) *env {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	e := &env{
		bookings: &fakeBookingRepo{items: map[string]*domain.Booking{}},
		users:    &fakeUserRepo{balances: map[string]int{}},
		cal:      &fakeCalendar{},
		tg:       &fakeTelegram{messages: map[int64][]string{}},
		audit:    &fakeAuditRepo{},
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, loc),
	}
	for _, b := range items {
		e.bookings.items[b.ID] = b
	}

	e.svc = NewService(
		e.bookings, e.users, e.audit, e.cal, e.tg, &fakeTxManager{},
		loc, trainerChatID, nopLogger{},
	)
	e.svc.timeProvider = &fixedTimeProvider{now: e.now}

	return e
}

func activeBooking(startIn time.Duration, usedPackage bool) *domain.Booking {
	loc, _ := time.LoadLocation("Europe/Moscow")
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, loc).Add(startIn)
	return &domain.Booking{
		ID:          "b-1",
		UserID:      "client-1",
		TelegramID:  clientChatID,
		LastName:    "Петров",
		FirstName:   "Иван",
		StartAt:     start,
		EndAt:       start.Add(time.Hour),
		EventID:     ptr.Ptr("event-1"),
		Status:      domain.StatusActive,
		UsedPackage: usedPackage,
	}
}

func TestConfirm_SetsFlagAndMarksEvent(t *testing.T) {
	e := newEnv(t, activeBooking(48*time.Hour, true))

	b, err := e.svc.Confirm(context.Background(), "b-1", clientChatID)
	require.NoError(t, err)

	assert.True(t, b.Confirmed)
	assert.Equal(t, []string{"event-1"}, e.cal.confirmed)
	assert.Contains(t, e.audit.entries, "booking_confirmed")
	assert.NotEmpty(t, e.tg.messages[trainerChatID])
}

func TestConfirm_Idempotent(t *testing.T) {
	e := newEnv(t, activeBooking(48*time.Hour, true))

	_, err := e.svc.Confirm(context.Background(), "b-1", clientChatID)
	require.NoError(t, err)
	_, err = e.svc.Confirm(context.Background(), "b-1", clientChatID)
	require.NoError(t, err)

	// Повторное подтверждение не трогает ни БД, ни календарь
	assert.Equal(t, 1, e.bookings.confirmedCalls)
	assert.Len(t, e.cal.confirmed, 1)
}

func TestConfirm_AccessDenied(t *testing.T) {
	e := newEnv(t, activeBooking(48*time.Hour, true))

	_, err := e.svc.Confirm(context.Background(), "b-1", int64(999))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestConfirm_NotFoundForTerminalStatus(t *testing.T) {
	b := activeBooking(48*time.Hour, true)
	b.Status = domain.StatusCancelled
	e := newEnv(t, b)

	_, err := e.svc.Confirm(context.Background(), "b-1", clientChatID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_RefundsUsedPackage(t *testing.T) {
	e := newEnv(t, activeBooking(48*time.Hour, true))

	b, err := e.svc.Cancel(context.Background(), "b-1", clientChatID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, b.Status)
	assert.Equal(t, 1, e.users.balances["client-1"])
	assert.Equal(t, []string{"event-1"}, e.cal.deleted)
	assert.Contains(t, e.audit.entries, "booking_cancelled")
}

func TestCancel_NoRefundWithoutPackage(t *testing.T) {
	e := newEnv(t, activeBooking(48*time.Hour, false))

	_, err := e.svc.Cancel(context.Background(), "b-1", clientChatID)
	require.NoError(t, err)

	assert.Equal(t, 0, e.users.balances["client-1"])
}

func TestCancel_RefundAtMostOnce(t *testing.T) {
	e := newEnv(t, activeBooking(48*time.Hour, true))

	_, err := e.svc.Cancel(context.Background(), "b-1", clientChatID)
	require.NoError(t, err)
	_, err = e.svc.Cancel(context.Background(), "b-1", clientChatID)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.Equal(t, 1, e.users.balances["client-1"])
}

func TestCancel_WindowPassedForClient(t *testing.T) {
	e := newEnv(t, activeBooking(11*time.Hour, true))

	_, err := e.svc.Cancel(context.Background(), "b-1", clientChatID)
	assert.ErrorIs(t, err, ErrCancelWindowPassed)

	assert.Equal(t, 0, e.users.balances["client-1"])
	assert.Empty(t, e.cal.deleted)
}

func TestCancel_TrainerBypassesWindow(t *testing.T) {
	e := newEnv(t, activeBooking(11*time.Hour, true))

	b, err := e.svc.Cancel(context.Background(), "b-1", trainerChatID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCancelled, b.Status)
	// Клиент уведомлен об отмене тренером
	assert.NotEmpty(t, e.tg.messages[clientChatID])
}

func TestListForUser_CanCancelFlags(t *testing.T) {
	near := activeBooking(11*time.Hour, false)
	far := activeBooking(48*time.Hour, false)
	far.ID = "b-2"
	e := newEnv(t, near, far)

	views, err := e.svc.ListForUser(context.Background(), clientChatID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	flags := map[string]bool{}
	for _, v := range views {
		flags[v.Booking.ID] = v.CanCancel
	}
	assert.False(t, flags["b-1"])
	assert.True(t, flags["b-2"])
}
