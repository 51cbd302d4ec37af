// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
	URL  string
}

// TelegramBotAdapter is the outbound messaging port shared by the update
// handlers and the reconciliation poller.
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendButtons(ctx context.Context, chatID int64, text string, rows [][]InlineButton) error
	// EditButtons rewrites the message that triggered a callback.
	EditButtons(ctx context.Context, chatID int64, messageID int, text string, rows [][]InlineButton) error
	// AnswerCallback stops the client-side spinner; alert pops a modal.
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
}
