package model

// EventKind discriminates the two inbound update shapes the bot reacts to.
type EventKind string

const (
	KindMessage  EventKind = "message"
	KindCallback EventKind = "callback"
)

// Event is the tagged union handed to policies and flows. It is decided once
// at the transport boundary so downstream code never touches raw tgbotapi
// types.
type Event struct {
	Kind      EventKind
	UserID    int64
	ChatID    int64
	Username  string
	FirstName string
	MessageID int

	// Text carries the message body for KindMessage.
	Text string
	// Data carries the callback payload for KindCallback.
	Data string
	// CallbackID is needed to answer callback queries.
	CallbackID string
}

// IsCommand reports whether a message event starts a slash command.
func (e Event) IsCommand() bool {
	return e.Kind == KindMessage && len(e.Text) > 0 && e.Text[0] == '/'
}
