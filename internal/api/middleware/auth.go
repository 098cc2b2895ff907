package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/PT-BookingService/internal/api/handlers"
	"github.com/m04kA/PT-BookingService/internal/auth"
	"github.com/m04kA/PT-BookingService/internal/domain"
	userRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/user"
)

// InitDataHeader заголовок с подписанными данными Telegram WebApp
const InitDataHeader = "X-Telegram-InitData"

const (
	msgUnauthorized = "требуется авторизация через Telegram"
	msgForbidden    = "доступно только тренеру"
)

// Auth middleware аутентификации по Telegram WebApp initData.
// Пользователь создается при первом обращении, роль определяется
// по настроенному Telegram ID тренера
type Auth struct {
	botToken  string
	maxAge    time.Duration
	trainerID int64
	userRepo  UserRepository
	logger    Logger
}

// NewAuth создает middleware аутентификации
func NewAuth(botToken string, maxAge time.Duration, trainerID int64, repo UserRepository, logger Logger) *Auth {
	return &Auth{
		botToken:  botToken,
		maxAge:    maxAge,
		trainerID: trainerID,
		userRepo:  repo,
		logger:    logger,
	}
}

// Handler проверяет подпись initData и кладет пользователя в контекст
func (a *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := auth.Verify(r.Header.Get(InitDataHeader), a.botToken, a.maxAge, time.Now())
		if err != nil {
			a.logger.Warn("Auth: rejected request to %s: %v", r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		u, err := a.resolveUser(r, identity)
		if err != nil {
			a.logger.Error("Auth: failed to resolve user tg_id=%d: %v", identity.TelegramID, err)
			handlers.RespondInternalError(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// RequireTrainer пропускает только тренера. Ставится после Handler
func (a *Auth) RequireTrainer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok || !u.IsTrainer() {
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// resolveUser находит пользователя по Telegram ID, создает при первом
// обращении и актуализирует роль, если настройка тренера изменилась
func (a *Auth) resolveUser(r *http.Request, identity *auth.Identity) (*domain.User, error) {
	ctx := r.Context()
	role := domain.RoleClient
	if identity.TelegramID == a.trainerID {
		role = domain.RoleTrainer
	}

	u, err := a.userRepo.GetByTelegramID(ctx, identity.TelegramID)
	if err != nil {
		if !errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, err
		}

		newUser := &domain.User{
			ID:         uuid.NewString(),
			TelegramID: &identity.TelegramID,
			Role:       role,
		}
		if identity.Username != "" {
			newUser.Username = &identity.Username
		}
		if identity.FirstName != "" {
			newUser.FirstName = &identity.FirstName
		}
		if identity.LastName != "" {
			newUser.LastName = &identity.LastName
		}

		created, err := a.userRepo.Create(ctx, newUser)
		if err != nil {
			return nil, err
		}
		a.logger.Info("Auth: created user id=%s for tg_id=%d", created.ID, identity.TelegramID)
		return created, nil
	}

	if u.Role != role {
		if err := a.userRepo.UpdateRole(ctx, u.ID, role); err != nil {
			return nil, err
		}
		u.Role = role
		a.logger.Info("Auth: role of user id=%s refreshed to %s", u.ID, role)
	}

	return u, nil
}
