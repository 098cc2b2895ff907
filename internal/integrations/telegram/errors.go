package telegram

import "errors"

var (
	// ErrSendFailed возвращается, когда Telegram API не принял сообщение
	ErrSendFailed = errors.New("telegram client: failed to send message")
)
