package bot

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PT-BookingService/internal/domain"
	userRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/user"
	"github.com/m04kA/PT-BookingService/internal/service/bookings"
	"github.com/m04kA/PT-BookingService/pkg/ptr"
)

type fakeBookingsService struct {
	confirmed []string
	cancelled []string
	err       error
}

func (f *fakeBookingsService) Confirm(_ context.Context, bookingID string, _ int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.confirmed = append(f.confirmed, bookingID)
	return &domain.Booking{ID: bookingID}, nil
}

func (f *fakeBookingsService) Cancel(_ context.Context, bookingID string, _ int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.cancelled = append(f.cancelled, bookingID)
	return &domain.Booking{ID: bookingID}, nil
}

type fakeUserRepo struct {
	byTG    map[int64]*domain.User
	created []*domain.User
	phones  map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byTG: map[int64]*domain.User{}, phones: map[string]string{}}
}

func (f *fakeUserRepo) GetByTelegramID(_ context.Context, tgID int64) (*domain.User, error) {
	u, ok := f.byTG[tgID]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	f.created = append(f.created, u)
	f.byTG[*u.TelegramID] = u
	return u, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id string, _, _, phone *string) (*domain.User, error) {
	if phone != nil {
		f.phones[id] = *phone
	}
	return &domain.User{ID: id, Phone: phone}, nil
}

type fakeAuditRepo struct {
	entries []string
}

func (f *fakeAuditRepo) Append(_ context.Context, entryType string, _ interface{}) error {
	f.entries = append(f.entries, entryType)
	return nil
}

type fakeTelegram struct {
	answers   []string
	menus     []int64
	contacts  []int64
	messages  []int64
}

func (f *fakeTelegram) SendMessage(chatID int64, _ string) error {
	f.messages = append(f.messages, chatID)
	return nil
}

func (f *fakeTelegram) SendMainMenu(chatID int64, _ string) error {
	f.menus = append(f.menus, chatID)
	return nil
}

func (f *fakeTelegram) RequestContact(chatID int64, _ string) error {
	f.contacts = append(f.contacts, chatID)
	return nil
}

func (f *fakeTelegram) AnswerCallback(_, text string) error {
	f.answers = append(f.answers, text)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newHandler() (*Handler, *fakeBookingsService, *fakeUserRepo, *fakeTelegram, *fakeAuditRepo) {
	svc := &fakeBookingsService{}
	users := newFakeUserRepo()
	tg := &fakeTelegram{}
	audit := &fakeAuditRepo{}
	return NewHandler(svc, users, audit, tg, nopLogger{}), svc, users, tg, audit
}

func callbackUpdate(tgID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb-1",
			From: &tgbotapi.User{ID: tgID},
			Data: data,
		},
	}
}

func TestHandleUpdate_ConfirmCallback(t *testing.T) {
	h, svc, _, tg, _ := newHandler()

	h.HandleUpdate(context.Background(), callbackUpdate(500, "confirm:b-1"))

	assert.Equal(t, []string{"b-1"}, svc.confirmed)
	require.Len(t, tg.answers, 1)
	assert.Equal(t, msgConfirmed, tg.answers[0])
}

func TestHandleUpdate_CancelCallback(t *testing.T) {
	h, svc, _, tg, _ := newHandler()

	h.HandleUpdate(context.Background(), callbackUpdate(500, "cancel:b-1"))

	assert.Equal(t, []string{"b-1"}, svc.cancelled)
	require.Len(t, tg.answers, 1)
	assert.Equal(t, msgCancelled, tg.answers[0])
}

func TestHandleUpdate_CancelTooLate(t *testing.T) {
	h, svc, _, tg, _ := newHandler()
	svc.err = bookings.ErrCancelWindowPassed

	h.HandleUpdate(context.Background(), callbackUpdate(500, "cancel:b-1"))

	require.Len(t, tg.answers, 1)
	assert.Equal(t, msgCancelTooLate, tg.answers[0])
}

func TestHandleUpdate_ContactSavesNormalizedPhone(t *testing.T) {
	h, _, users, tg, audit := newHandler()
	users.byTG[500] = &domain.User{ID: "u-1", TelegramID: ptr.Ptr(int64(500)), Role: domain.RoleClient}

	h.HandleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			From:    &tgbotapi.User{ID: 500},
			Contact: &tgbotapi.Contact{PhoneNumber: "89123456789", UserID: 500},
		},
	})

	assert.Equal(t, "+7 (912) 345-67-89", users.phones["u-1"])
	assert.Contains(t, audit.entries, "contact_shared")
	assert.Equal(t, []int64{500}, tg.menus)
}

func TestHandleUpdate_ForeignContactIgnored(t *testing.T) {
	h, _, users, _, _ := newHandler()
	users.byTG[500] = &domain.User{ID: "u-1", TelegramID: ptr.Ptr(int64(500)), Role: domain.RoleClient}

	h.HandleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			From:    &tgbotapi.User{ID: 500},
			Contact: &tgbotapi.Contact{PhoneNumber: "89123456789", UserID: 777},
		},
	})

	assert.Empty(t, users.phones)
}

func TestHandleUpdate_StartCreatesClientAndAsksContact(t *testing.T) {
	h, _, users, tg, _ := newHandler()

	h.HandleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			From:     &tgbotapi.User{ID: 500, FirstName: "Иван", UserName: "ivan"},
			Text:     "/start",
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
		},
	})

	require.Len(t, users.created, 1)
	assert.Equal(t, domain.RoleClient, users.created[0].Role)
	assert.Equal(t, []int64{500}, tg.menus)
	// Телефона еще нет - бот просит контакт
	assert.Equal(t, []int64{500}, tg.contacts)
}
