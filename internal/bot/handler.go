package bot

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/m04kA/PT-BookingService/internal/domain"
	userRepo "github.com/m04kA/PT-BookingService/internal/infra/storage/user"
	"github.com/m04kA/PT-BookingService/internal/integrations/telegram"
	"github.com/m04kA/PT-BookingService/internal/service/bookings"
)

// Тексты ответов бота
const (
	msgGreeting         = "Привет! Здесь можно записаться на тренировку"
	msgAskContact       = "Поделитесь номером телефона, чтобы тренер мог с вами связаться"
	msgContactSaved     = "Номер сохранен. Теперь можно записываться!"
	msgConfirmed        = "Отлично, ждем вас!"
	msgCancelled        = "Запись отменена"
	msgCancelTooLate    = "Отменить можно не позднее чем за 12 часов до тренировки"
	msgBookingNotActive = "Эта запись уже не активна"
	msgSomethingWrong   = "Что-то пошло не так, попробуйте позже"
)

// Handler маршрутизатор входящих обновлений Telegram-бота
type Handler struct {
	bookingsService BookingsService
	userRepo        UserRepository
	auditRepo       AuditRepository
	tg              TelegramClient
	logger          Logger
}

// NewHandler создает новый обработчик обновлений бота
func NewHandler(
	bookingsService BookingsService,
	userRepo UserRepository,
	auditRepo AuditRepository,
	tg TelegramClient,
	logger Logger,
) *Handler {
	return &Handler{
		bookingsService: bookingsService,
		userRepo:        userRepo,
		auditRepo:       auditRepo,
		tg:              tg,
		logger:          logger,
	}
}

// HandleUpdate обрабатывает одно обновление от Telegram
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Contact != nil:
		h.handleContact(ctx, update.Message)
	case update.Message != nil && update.Message.IsCommand():
		h.handleCommand(ctx, update.Message)
	}
}

// handleCallback обрабатывает нажатия кнопок под напоминаниями
func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	callerTGID := cb.From.ID
	data := cb.Data

	switch {
	case strings.HasPrefix(data, telegram.CallbackConfirmPrefix):
		bookingID := strings.TrimPrefix(data, telegram.CallbackConfirmPrefix)
		_, err := h.bookingsService.Confirm(ctx, bookingID, callerTGID)
		h.answer(cb.ID, err, msgConfirmed)

	case strings.HasPrefix(data, telegram.CallbackCancelPrefix):
		bookingID := strings.TrimPrefix(data, telegram.CallbackCancelPrefix)
		_, err := h.bookingsService.Cancel(ctx, bookingID, callerTGID)
		h.answer(cb.ID, err, msgCancelled)

	default:
		h.logger.Warn("Bot: unknown callback data %q from tg_id=%d", data, callerTGID)
		h.answer(cb.ID, nil, "")
	}
}

// answer отвечает на callback текстом по результату операции
func (h *Handler) answer(callbackID string, err error, okText string) {
	text := okText
	switch {
	case err == nil:
	case errors.Is(err, bookings.ErrCancelWindowPassed):
		text = msgCancelTooLate
	case errors.Is(err, bookings.ErrBookingNotFound), errors.Is(err, bookings.ErrAccessDenied):
		text = msgBookingNotActive
	default:
		h.logger.Error("Bot: callback handling failed: %v", err)
		text = msgSomethingWrong
	}

	if err := h.tg.AnswerCallback(callbackID, text); err != nil {
		h.logger.Warn("Bot: failed to answer callback: %v", err)
	}
}

// handleContact сохраняет присланный клиентом номер телефона
func (h *Handler) handleContact(ctx context.Context, msg *tgbotapi.Message) {
	contact := msg.Contact
	tgID := msg.From.ID

	// Чужие контакты не принимаем
	if contact.UserID != 0 && contact.UserID != tgID {
		h.logger.Warn("Bot: contact of another user from tg_id=%d", tgID)
		return
	}

	phone := domain.NormalizePhone(contact.PhoneNumber)

	u, err := h.ensureUser(ctx, msg.From)
	if err != nil {
		h.logger.Error("Bot: failed to resolve user tg_id=%d: %v", tgID, err)
		return
	}

	if _, err := h.userRepo.UpdateProfile(ctx, u.ID, nil, nil, &phone); err != nil {
		h.logger.Error("Bot: failed to save phone for user id=%s: %v", u.ID, err)
		if sendErr := h.tg.SendMessage(tgID, msgSomethingWrong); sendErr != nil {
			h.logger.Warn("Bot: failed to send error reply: %v", sendErr)
		}
		return
	}

	if err := h.auditRepo.Append(ctx, "contact_shared", map[string]interface{}{"user_id": u.ID}); err != nil {
		h.logger.Warn("Bot: failed to append audit entry: %v", err)
	}

	if err := h.tg.SendMainMenu(tgID, msgContactSaved); err != nil {
		h.logger.Warn("Bot: failed to send main menu: %v", err)
	}
	h.logger.Info("Bot: contact saved for user id=%s", u.ID)
}

// handleCommand обрабатывает команды бота
func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Command() != "start" {
		return
	}
	tgID := msg.From.ID

	u, err := h.ensureUser(ctx, msg.From)
	if err != nil {
		h.logger.Error("Bot: failed to resolve user tg_id=%d: %v", tgID, err)
		return
	}

	if err := h.tg.SendMainMenu(tgID, msgGreeting); err != nil {
		h.logger.Warn("Bot: failed to send main menu: %v", err)
	}
	if u.Phone == nil {
		if err := h.tg.RequestContact(tgID, msgAskContact); err != nil {
			h.logger.Warn("Bot: failed to request contact: %v", err)
		}
	}
}

// ensureUser находит пользователя по Telegram ID или создает клиента
func (h *Handler) ensureUser(ctx context.Context, from *tgbotapi.User) (*domain.User, error) {
	u, err := h.userRepo.GetByTelegramID(ctx, from.ID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, err
	}

	newUser := &domain.User{
		ID:         uuid.NewString(),
		TelegramID: &from.ID,
		Role:       domain.RoleClient,
	}
	if from.UserName != "" {
		newUser.Username = &from.UserName
	}
	if from.FirstName != "" {
		newUser.FirstName = &from.FirstName
	}
	if from.LastName != "" {
		newUser.LastName = &from.LastName
	}

	return h.userRepo.Create(ctx, newUser)
}
