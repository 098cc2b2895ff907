package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PT-BookingService/internal/domain"
	userRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/user"
	"github.com/m04kA/PT-BookingService/pkg/ptr"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id string, lastName, firstName, phone *string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	if lastName != nil {
		u.LastName = lastName
	}
	if firstName != nil {
		u.FirstName = firstName
	}
	if phone != nil {
		u.Phone = phone
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateClient(_ context.Context, id string, birthDate *string, packageRemaining *int) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	if birthDate != nil {
		u.BirthDate = birthDate
	}
	if packageRemaining != nil {
		u.PackageRemaining = *packageRemaining
	}
	return u, nil
}

func (f *fakeUserRepo) ListClients(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if u.Role == domain.RoleClient {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	entries []string
}

func (f *fakeAuditRepo) Append(_ context.Context, entryType string, _ interface{}) error {
	f.entries = append(f.entries, entryType)
	return nil
}

type fakeTelegram struct {
	failFor map[int64]bool
	sent    []int64
}

func (f *fakeTelegram) SendMessage(chatID int64, _ string) error {
	if f.failFor[chatID] {
		return errors.New("blocked by user")
	}
	f.sent = append(f.sent, chatID)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(users ...*domain.User) (*Service, *fakeUserRepo, *fakeTelegram, *fakeAuditRepo) {
	repo := &fakeUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	tg := &fakeTelegram{failFor: map[int64]bool{}}
	audit := &fakeAuditRepo{}
	return NewService(repo, audit, tg, nopLogger{}), repo, tg, audit
}

func client(id string, tgID int64) *domain.User {
	u := &domain.User{ID: id, Role: domain.RoleClient}
	if tgID != 0 {
		u.TelegramID = ptr.Ptr(tgID)
	}
	return u
}

func TestUpdateProfile_NormalizesPhone(t *testing.T) {
	svc, _, _, audit := newService(client("c1", 500))

	u, err := svc.UpdateProfile(context.Background(), "c1", &UpdateProfileRequest{
		LastName:  ptr.Ptr("Петров"),
		FirstName: ptr.Ptr("Иван"),
		Phone:     ptr.Ptr("8 912 345-67-89"),
	})
	require.NoError(t, err)

	assert.Equal(t, "+7 (912) 345-67-89", *u.Phone)
	assert.Contains(t, audit.entries, "profile_updated")
}

func TestUpdateProfile_Validation(t *testing.T) {
	svc, _, _, _ := newService(client("c1", 500))

	_, err := svc.UpdateProfile(context.Background(), "c1", &UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateProfile(context.Background(), "c1", &UpdateProfileRequest{LastName: ptr.Ptr("")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateProfile(context.Background(), "missing", &UpdateProfileRequest{LastName: ptr.Ptr("Петров")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateClient_Validation(t *testing.T) {
	svc, _, _, _ := newService(client("c1", 500))

	_, err := svc.UpdateClient(context.Background(), "c1", &UpdateClientRequest{BirthDate: ptr.Ptr("31.12.1990")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateClient(context.Background(), "c1", &UpdateClientRequest{PackageRemaining: ptr.Ptr(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	u, err := svc.UpdateClient(context.Background(), "c1", &UpdateClientRequest{
		BirthDate:        ptr.Ptr("1990-12-31"),
		PackageRemaining: ptr.Ptr(8),
	})
	require.NoError(t, err)
	assert.Equal(t, 8, u.PackageRemaining)
}

func TestBroadcast_CountsSentAndFailed(t *testing.T) {
	noTG := client("c3", 0)
	svc, _, tg, audit := newService(client("c1", 500), client("c2", 501), noTG)
	tg.failFor[501] = true

	result, err := svc.Broadcast(context.Background(), "Завтра зал закрыт")
	require.NoError(t, err)

	// Клиент без Telegram не учитывается
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, audit.entries, "broadcast")
}

func TestBroadcast_EmptyMessage(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.Broadcast(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
