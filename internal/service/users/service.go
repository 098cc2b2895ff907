package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PT-BookingService/internal/domain"
	userRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/user"
)

// Service сервис профилей клиентов и рассылки
type Service struct {
	userRepo  UserRepository
	auditRepo AuditRepository
	tg        TelegramClient
	logger    Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(
	userRepository UserRepository,
	auditRepository AuditRepository,
	tg TelegramClient,
	logger Logger,
) *Service {
	return &Service{
		userRepo:  userRepository,
		auditRepo: auditRepository,
		tg:        tg,
		logger:    logger,
	}
}

// UpdateProfileRequest запрос клиента на изменение профиля.
// nil-поля не меняются
type UpdateProfileRequest struct {
	LastName  *string
	FirstName *string
	Phone     *string
}

// UpdateProfile обновляет профиль клиента. Телефон нормализуется
func (s *Service) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domain.User, error) {
	if req.LastName == nil && req.FirstName == nil && req.Phone == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	for _, v := range []*string{req.LastName, req.FirstName} {
		if v != nil && *v == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
	}

	phone := req.Phone
	if phone != nil {
		if *phone == "" {
			return nil, fmt.Errorf("%w: phone must not be empty", ErrInvalidInput)
		}
		normalized := domain.NormalizePhone(*phone)
		phone = &normalized
	}

	u, err := s.userRepo.UpdateProfile(ctx, userID, req.LastName, req.FirstName, phone)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateProfile: failed to update user id=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to update profile: %v", ErrInternal, err)
	}

	s.audit(ctx, "profile_updated", map[string]interface{}{"user_id": userID})
	s.logger.Info("UpdateProfile: user id=%s updated", userID)
	return u, nil
}

// UpdateClientRequest запрос тренера на изменение карточки клиента
type UpdateClientRequest struct {
	BirthDate        *string // Дата рождения YYYY-MM-DD
	PackageRemaining *int    // Остаток занятий по абонементу
}

// UpdateClient обновляет дату рождения и остаток занятий клиента
func (s *Service) UpdateClient(ctx context.Context, clientID string, req *UpdateClientRequest) (*domain.User, error) {
	if req.BirthDate == nil && req.PackageRemaining == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.BirthDate != nil && *req.BirthDate != "" {
		if _, err := time.Parse(domain.DateFormat, *req.BirthDate); err != nil {
			return nil, fmt.Errorf("%w: bad birth date %q", ErrInvalidInput, *req.BirthDate)
		}
	}
	if req.PackageRemaining != nil && *req.PackageRemaining < 0 {
		return nil, fmt.Errorf("%w: package remaining must not be negative", ErrInvalidInput)
	}

	u, err := s.userRepo.UpdateClient(ctx, clientID, req.BirthDate, req.PackageRemaining)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateClient: failed to update client id=%s: %v", clientID, err)
		return nil, fmt.Errorf("%w: failed to update client: %v", ErrInternal, err)
	}

	s.audit(ctx, "client_updated", map[string]interface{}{"client_id": clientID})
	s.logger.Info("UpdateClient: client id=%s updated", clientID)
	return u, nil
}

// ListClients возвращает всех клиентов
func (s *Service) ListClients(ctx context.Context) ([]domain.User, error) {
	clients, err := s.userRepo.ListClients(ctx)
	if err != nil {
		s.logger.Error("ListClients: failed to list: %v", err)
		return nil, fmt.Errorf("%w: failed to list clients: %v", ErrInternal, err)
	}
	return clients, nil
}

// BroadcastResult итог рассылки
type BroadcastResult struct {
	Sent   int
	Failed int
}

// Broadcast рассылает сообщение всем клиентам с привязанным Telegram.
// Ошибки отправки отдельным клиентам не прерывают рассылку
func (s *Service) Broadcast(ctx context.Context, text string) (*BroadcastResult, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty message", ErrInvalidInput)
	}

	clients, err := s.userRepo.ListClients(ctx)
	if err != nil {
		s.logger.Error("Broadcast: failed to list clients: %v", err)
		return nil, fmt.Errorf("%w: failed to list clients: %v", ErrInternal, err)
	}

	result := &BroadcastResult{}
	for _, c := range clients {
		if !c.HasTelegram() {
			continue
		}
		if err := s.tg.SendMessage(*c.TelegramID, text); err != nil {
			s.logger.Warn("Broadcast: failed to send to tg_id=%d: %v", *c.TelegramID, err)
			result.Failed++
			continue
		}
		result.Sent++
	}

	s.audit(ctx, "broadcast", map[string]interface{}{
		"sent":   result.Sent,
		"failed": result.Failed,
	})

	s.logger.Info("Broadcast: sent=%d, failed=%d", result.Sent, result.Failed)
	return result, nil
}

func (s *Service) audit(ctx context.Context, entryType string, payload interface{}) {
	if err := s.auditRepo.Append(ctx, entryType, payload); err != nil {
		s.logger.Warn("Users: failed to append audit entry %s: %v", entryType, err)
	}
}
