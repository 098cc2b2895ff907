package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PT-BookingService/internal/domain"
	userRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/user"
)

const (
	testBotToken  = "12345:TEST_TOKEN"
	testTrainerID = int64(100)
)

type fakeUserRepo struct {
	byTG        map[int64]*domain.User
	created     []*domain.User
	roleUpdates []domain.Role
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byTG: map[int64]*domain.User{}}
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

func (f *fakeUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	f.roleUpdates = append(f.roleUpdates, role)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func signInitData(t *testing.T, tgID int64) string {
	t.Helper()

	params := url.Values{}
	params.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))
	params.Set("user", `{"id":`+strconv.FormatInt(tgID, 10)+`,"first_name":"Иван"}`)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params.Get(k))
	}

	secretMAC := hmac.New(sha256.New, []byte("WebAppData"))
	secretMAC.Write([]byte(testBotToken))
	calcMAC := hmac.New(sha256.New, secretMAC.Sum(nil))
	calcMAC.Write([]byte(strings.Join(pairs, "\n")))

	params.Set("hash", hex.EncodeToString(calcMAC.Sum(nil)))
	return params.Encode()
}

func newAuth(repo *fakeUserRepo) *Auth {
	return NewAuth(testBotToken, 24*time.Hour, testTrainerID, repo, nopLogger{})
}

func TestAuthHandler_CreatesClientOnFirstRequest(t *testing.T) {
	repo := newFakeUserRepo()
	a := newAuth(repo)

	var gotUser *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set(InitDataHeader, signInitData(t, 500))
	rec := httptest.NewRecorder()

	a.Handler(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, domain.RoleClient, gotUser.Role)
	require.Len(t, repo.created, 1)
}

func TestAuthHandler_TrainerRole(t *testing.T) {
	repo := newFakeUserRepo()
	a := newAuth(repo)

	var gotUser *domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set(InitDataHeader, signInitData(t, testTrainerID))
	rec := httptest.NewRecorder()

	a.Handler(next).ServeHTTP(rec, req)

	require.NotNil(t, gotUser)
	assert.Equal(t, domain.RoleTrainer, gotUser.Role)
}

func TestAuthHandler_RefreshesDriftedRole(t *testing.T) {
	repo := newFakeUserRepo()
	trainerTG := testTrainerID
	repo.byTG[trainerTG] = &domain.User{ID: "u-1", TelegramID: &trainerTG, Role: domain.RoleClient}
	a := newAuth(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set(InitDataHeader, signInitData(t, trainerTG))
	rec := httptest.NewRecorder()

	a.Handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

	assert.Equal(t, []domain.Role{domain.RoleTrainer}, repo.roleUpdates)
}

func TestAuthHandler_RejectsBadSignature(t *testing.T) {
	a := newAuth(newFakeUserRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set(InitDataHeader, "auth_date=1&hash=dead&user=%7B%22id%22%3A500%7D")
	rec := httptest.NewRecorder()

	called := false
	a.Handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireTrainer(t *testing.T) {
	a := newAuth(newFakeUserRepo())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("client forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
		req = req.WithContext(WithUser(req.Context(), &domain.User{Role: domain.RoleClient}))
		rec := httptest.NewRecorder()

		a.RequireTrainer(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("trainer allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
		req = req.WithContext(WithUser(req.Context(), &domain.User{Role: domain.RoleTrainer}))
		rec := httptest.NewRecorder()

		a.RequireTrainer(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
