package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Префиксы callback-данных inline-кнопок под напоминаниями
const (
	CallbackConfirmPrefix = "confirm:"
	CallbackCancelPrefix  = "cancel:"
)

// Client обертка над Telegram Bot API для отправки уведомлений
type Client struct {
	bot       *tgbotapi.BotAPI
	webAppURL string
	log       Logger
}

// NewClient создает нового клиента Telegram Bot API
func NewClient(botToken, webAppURL string, log Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram client: failed to init bot api: %w", err)
	}

	log.Info("Telegram bot authorized: username=%s", bot.Self.UserName)

	return &Client{
		bot:       bot,
		webAppURL: webAppURL,
		log:       log,
	}, nil
}

// SendMessage отправляет текстовое сообщение в чат
func (c *Client) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.bot.Send(msg); err != nil {
		c.log.Error("Failed to send message: chat_id=%d, error=%v", chatID, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// SendWithConfirmCancel отправляет сообщение с кнопками
// подтверждения и отмены записи
func (c *Client) SendWithConfirmCancel(chatID int64, text, bookingID string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Приду", CallbackConfirmPrefix+bookingID),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отменить", CallbackCancelPrefix+bookingID),
		),
	)
	if _, err := c.bot.Send(msg); err != nil {
		c.log.Error("Failed to send confirm/cancel message: chat_id=%d, booking_id=%s, error=%v", chatID, bookingID, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// SendMainMenu отправляет сообщение с кнопкой открытия приложения записи
func (c *Client) SendMainMenu(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.InlineKeyboardButton{
				Text:   "📅 Записаться",
				WebApp: &tgbotapi.WebAppInfo{URL: c.webAppURL},
			},
		),
	)
	if _, err := c.bot.Send(msg); err != nil {
		c.log.Error("Failed to send main menu: chat_id=%d, error=%v", chatID, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// RequestContact отправляет клавиатуру с запросом номера телефона
func (c *Client) RequestContact(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact("📱 Отправить номер"),
		),
	)
	keyboard.OneTimeKeyboard = true
	keyboard.ResizeKeyboard = true
	msg.ReplyMarkup = keyboard

	if _, err := c.bot.Send(msg); err != nil {
		c.log.Error("Failed to request contact: chat_id=%d, error=%v", chatID, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

// AnswerCallback отвечает на нажатие inline-кнопки
func (c *Client) AnswerCallback(callbackID, text string) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := c.bot.Request(callback); err != nil {
		c.log.Error("Failed to answer callback: callback_id=%s, error=%v", callbackID, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}
