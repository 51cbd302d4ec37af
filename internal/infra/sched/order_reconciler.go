package sched

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"telegram-robux-store/internal/domain/model"
	"telegram-robux-store/internal/domain/ports/adapter"
	"telegram-robux-store/internal/infra/metrics"
)

// OrderSource is the slice of the backend client the reconciler needs.
type OrderSource interface {
	SyncOrders(ctx context.Context) ([]model.OrderStatusEvent, error)
}

// OrderReconciler periodically pulls order status changes from the backend
// and pushes a notification to each affected user. The backend is the sole
// deduplicator; a cycle that errors simply retries on the next tick, with no
// backoff and no local delivery ledger.
type OrderReconciler struct {
	interval time.Duration
	source   OrderSource
	bot      adapter.TelegramBotAdapter
	log      *zerolog.Logger
}

func NewOrderReconciler(interval time.Duration, source OrderSource, bot adapter.TelegramBotAdapter, logger *zerolog.Logger) *OrderReconciler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	compLog := logger.With().Str("component", "OrderReconciler").Logger()
	return &OrderReconciler{
		interval: interval,
		source:   source,
		bot:      bot,
		log:      &compLog,
	}
}

func (w *OrderReconciler) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("starting order reconciler")
	// Run once on startup, then on every tick
	w.runCycle(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("stopping order reconciler")
			return ctx.Err()
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *OrderReconciler) runCycle(ctx context.Context) {
	events, err := w.source.SyncOrders(ctx)
	if err != nil {
		metrics.IncPollerCycle("error")
		w.log.Error().Err(err).Msg("order sync failed")
		return
	}
	metrics.IncPollerCycle("ok")

	sent := 0
	for _, ev := range events {
		// Non-numeric user ids belong to web-only accounts; nothing to notify.
		chatID, err := strconv.ParseInt(ev.UserID, 10, 64)
		if err != nil {
			continue
		}
		text, ok := notificationText(ev)
		if !ok {
			continue
		}
		if err := w.bot.SendMessage(ctx, chatID, text); err != nil {
			// One blocked user must not starve the rest of the cycle.
			metrics.IncPollerNotification(ev.Status, "error")
			w.log.Warn().Err(err).Int64("tg_id", chatID).Str("order_id", ev.OrderID).Msg("notification delivery failed")
			continue
		}
		metrics.IncPollerNotification(ev.Status, "ok")
		sent++
	}
	if sent > 0 {
		w.log.Info().Int("count", sent).Msg("order notifications sent")
	}
}

func notificationText(ev model.OrderStatusEvent) (string, bool) {
	shortID := ev.OrderID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	switch ev.Status {
	case model.OrderStatusCompleted:
		return fmt.Sprintf(
			"✅ <b>Заказ выполнен!</b>\n\nЗаказ #%s на %d R$ успешно доставлен.",
			shortID, ev.Amount,
		), true
	case model.OrderStatusFailed:
		refunded := ""
		if ev.Refunded {
			refunded = "\nСредства возвращены на баланс."
		}
		return fmt.Sprintf(
			"❌ <b>Заказ отменен</b>\n\nЗаказ #%s на %d R$ не удалось выполнить.%s",
			shortID, ev.Amount, refunded,
		), true
	default:
		return "", false
	}
}
