// File: internal/infra/adapters/telegram/real_bot.go
package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-robux-store/internal/backend"
	"telegram-robux-store/internal/config"
	"telegram-robux-store/internal/domain/model"
	"telegram-robux-store/internal/domain/ports/adapter"
	"telegram-robux-store/internal/domain/ports/repository"
	"telegram-robux-store/internal/flow"
	"telegram-robux-store/internal/infra/logging"
	"telegram-robux-store/internal/infra/metrics"
	"telegram-robux-store/internal/policy"
)

var _ adapter.TelegramBotAdapter = (*RealBotAdapter)(nil)

// RealBotAdapter polls updates with tgbotapi, applies the access-policy
// chain, and routes events to either the flow engine or the command/callback
// tables. Per-user ordering relies on Telegram's per-chat delivery; updates
// from distinct users fan out across workers.
type RealBotAdapter struct {
	bot      *tgbotapi.BotAPI
	cfg      *config.Config
	client   *backend.Client
	engine   *flow.Engine
	policies *policy.Chain
	log      *zerolog.Logger

	username      string // bot's own handle, for referral links
	updateWorkers int
	cancelPolling context.CancelFunc
}

func NewRealBotAdapter(
	cfg *config.Config,
	token string,
	client *backend.Client,
	sessions repository.SessionRepository,
	policies *policy.Chain,
	logger *zerolog.Logger,
) (*RealBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if client == nil {
		return nil, errors.New("backend client is nil")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	compLog := logger.With().Str("component", "TelegramBot").Logger()
	r := &RealBotAdapter{
		bot:           bot,
		cfg:           cfg,
		client:        client,
		policies:      policies,
		log:           &compLog,
		username:      bot.Self.UserName,
		updateWorkers: cfg.Bot.Workers,
	}

	r.engine = flow.NewEngine(sessions, r.sendFlowPrompt, logger)
	if err := r.registerFlows(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RealBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					if err := r.handleUpdate(ctx, up); err != nil {
						r.log.Error().Err(err).Int("worker", id).Msg("update handling error")
					}
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (r *RealBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// toEvent decides the inbound update shape once; everything downstream works
// on the tagged Event.
func toEvent(up tgbotapi.Update) (model.Event, bool) {
	switch {
	case up.CallbackQuery != nil && up.CallbackQuery.From != nil:
		q := up.CallbackQuery
		ev := model.Event{
			Kind:       model.KindCallback,
			UserID:     q.From.ID,
			ChatID:     q.From.ID,
			Username:   q.From.UserName,
			FirstName:  q.From.FirstName,
			Data:       strings.TrimSpace(q.Data),
			CallbackID: q.ID,
		}
		if q.Message != nil && q.Message.Chat != nil {
			ev.ChatID = q.Message.Chat.ID
			ev.MessageID = q.Message.MessageID
		}
		return ev, true
	case up.Message != nil && up.Message.From != nil:
		m := up.Message
		return model.Event{
			Kind:      model.KindMessage,
			UserID:    m.From.ID,
			ChatID:    m.Chat.ID,
			Username:  m.From.UserName,
			FirstName: m.From.FirstName,
			MessageID: m.MessageID,
			Text:      m.Text,
		}, true
	default:
		return model.Event{}, false
	}
}

func (r *RealBotAdapter) handleUpdate(ctx context.Context, up tgbotapi.Update) error {
	ev, ok := toEvent(up)
	if !ok {
		return nil
	}
	metrics.IncUpdate(string(ev.Kind))

	ctx = logging.WithTraceID(ctx, uuid.NewString())
	ctx = logging.WithTgID(ctx, ev.UserID)

	if d := r.policies.Check(ctx, ev); !d.Allow {
		return r.deliverNotice(ctx, ev, d)
	}

	if ev.Kind == model.KindCallback {
		// Stop the client-side spinner when we return.
		defer func() { _ = r.AnswerCallback(ctx, ev.CallbackID, "", false) }()
		return r.handleCallback(ctx, ev)
	}
	return r.handleMessage(ctx, ev)
}

// deliverNotice reports a policy suppression to the user, when the policy
// wants one at all. Silent drops stay silent.
func (r *RealBotAdapter) deliverNotice(ctx context.Context, ev model.Event, d policy.Decision) error {
	if d.Notice == "" {
		return nil
	}
	if ev.Kind == model.KindCallback {
		return r.AnswerCallback(ctx, ev.CallbackID, d.Notice, d.Alert)
	}
	return r.SendMessage(ctx, ev.ChatID, d.Notice)
}

// ---- outbound port ----

func (r *RealBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = buildMarkup(rows)
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealBotAdapter) EditButtons(ctx context.Context, chatID int64, messageID int, text string, rows [][]adapter.InlineButton) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	markup := buildMarkup(rows)
	edit.ReplyMarkup = &markup
	_, err := r.bot.Send(edit)
	return err
}

func (r *RealBotAdapter) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	cb := tgbotapi.NewCallback(callbackID, text)
	cb.ShowAlert = alert
	_, err := r.bot.Request(cb)
	return err
}

func buildMarkup(rows [][]adapter.InlineButton) tgbotapi.InlineKeyboardMarkup {
	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kbRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			var kb tgbotapi.InlineKeyboardButton
			switch {
			case btn.URL != "":
				kb = tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL)
			case btn.Data != "":
				kb = tgbotapi.NewInlineKeyboardButtonData(label, btn.Data)
			default:
				kb = tgbotapi.NewInlineKeyboardButtonData(label, label)
			}
			kbRow = append(kbRow, kb)
		}
		kbRows = append(kbRows, kbRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...)
}

// respond edits the triggering message for callbacks and sends a fresh one
// for plain messages.
func (r *RealBotAdapter) respond(ctx context.Context, ev model.Event, text string, rows [][]adapter.InlineButton) error {
	if ev.Kind == model.KindCallback && ev.MessageID != 0 {
		return r.EditButtons(ctx, ev.ChatID, ev.MessageID, text, rows)
	}
	return r.SendButtons(ctx, ev.ChatID, text, rows)
}
