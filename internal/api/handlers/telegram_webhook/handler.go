package telegram_webhook

import (
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Handler struct {
	bot    BotHandler
	logger Logger
}

func NewHandler(bot BotHandler, logger Logger) *Handler {
	return &Handler{
		bot:    bot,
		logger: logger,
	}
}

// Handle POST /bot/webhook.
// Telegram повторяет доставку при не-200 ответе, поэтому ошибки
// обработки логируются, но наружу всегда уходит 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Warn("POST /bot/webhook - Invalid update body: %v", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	h.bot.HandleUpdate(r.Context(), update)
	w.WriteHeader(http.StatusOK)
}
