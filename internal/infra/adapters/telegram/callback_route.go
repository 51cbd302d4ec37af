// File: internal/infra/adapters/telegram/callback_route.go
package telegram

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"telegram-robux-store/internal/domain/model"
	"telegram-robux-store/internal/domain/ports/adapter"
)

type cbHandler func(ctx context.Context, ev model.Event, arg string) error

type prefixCB struct {
	Prefix string
	Fn     cbHandler
}

func (r *RealBotAdapter) cbRoutes() map[string]cbHandler {
	return map[string]cbHandler{
		"menu:back":           r.menuBackCBRoute,
		"menu:balance":        r.profileCBRoute,
		"menu:topup":          r.topupCBRoute,
		"menu:order":          r.orderMenuCBRoute,
		"menu:orders_history": r.ordersCBRoute,
		"menu:history":        r.historyCBRoute,
		"menu:calculator":     r.calculatorCBRoute,
		"menu:stock_info":     r.stockCBRoute,
		"menu:referrals":      r.referralsCBRoute,
		"menu:help":           r.helpCBRoute,
		"menu:bybit":          r.bybitMenuCBRoute,
		"menu:admin":          r.adminMenuCBRoute,
		"flow:cancel":         r.flowCancelCBRoute,
		"bybit:save":          r.bybitSaveCBRoute,
		"bybit:check":         r.bybitCheckCBRoute,
		"referrals:transfer":  r.referralTransferCBRoute,
		"admin:menu":          r.adminMenuCBRoute,
		"admin:orders":        r.adminOrdersCBRoute,
		"admin:payments":      r.adminPaymentsCBRoute,
		"admin:users":         r.adminUsersCBRoute,
		"admin:users:search":  r.adminUserSearchCBRoute,
		"admin:logs":          r.adminLogsCBRoute,
		"admin:crypto":        r.adminCryptoCBRoute,
		"admin:crypto:check":  r.adminCryptoCheckCBRoute,
		"admin:crypto:rate":   r.adminCryptoRateCBRoute,
		"admin:rbx":           r.adminRbxCBRoute,
		"admin:rbx:balance":   r.adminRbxBalanceCBRoute,
		"admin:rbx:stock":     r.adminRbxStockCBRoute,
		"admin:settings":      r.adminSettingsCBRoute,
	}
}

// Prefix-match callbacks
func (r *RealBotAdapter) cbPrefixRoutes() []prefixCB {
	return []prefixCB{
		{Prefix: "order:amount:", Fn: r.orderAmountCBRoute},
		{Prefix: "order:create:", Fn: r.orderAmountCBRoute},
		{Prefix: "order:view:", Fn: r.orderViewCBRoute},
		{Prefix: "order:cancel:", Fn: r.orderCancelCBRoute},
		{Prefix: "order:repeat:", Fn: r.orderRepeatCBRoute},
		{Prefix: "topup:method:cryptobot:", Fn: r.topupCryptoBotCBRoute},
		{Prefix: "topup:method:bybit:", Fn: r.topupBybitCBRoute},
		{Prefix: "topup:check:", Fn: r.topupCheckCBRoute},
		{Prefix: "admin:settings:edit:", Fn: r.adminSettingEditCBRoute},
		{Prefix: "admin:rbx:info:", Fn: r.adminRbxOrderInfoCBRoute},
		{Prefix: "admin:rbx:resend:", Fn: r.adminRbxOrderResendCBRoute},
		{Prefix: "admin:rbx:vip:", Fn: r.adminRbxOrderVIPCBRoute},
	}
}

func (r *RealBotAdapter) handleCallback(ctx context.Context, ev model.Event) error {
	data := ev.Data

	// Every admin route shares one gate, whatever its shape.
	if strings.HasPrefix(data, "admin:") {
		ok, err := r.isAdmin(ctx, ev.UserID)
		if err != nil {
			return r.AnswerCallback(ctx, ev.CallbackID, "Сервис временно недоступен.", true)
		}
		if !ok {
			return r.AnswerCallback(ctx, ev.CallbackID, "Недостаточно прав.", true)
		}
	}

	if h, ok := r.cbRoutes()[data]; ok {
		return h(ctx, ev, "")
	}
	for _, p := range r.cbPrefixRoutes() {
		if strings.HasPrefix(data, p.Prefix) {
			return p.Fn(ctx, ev, strings.TrimPrefix(data, p.Prefix))
		}
	}
	r.log.Warn().Str("data", data).Msg("unknown callback")
	return r.menuBackCBRoute(ctx, ev, "")
}

// ---- menu ----

func (r *RealBotAdapter) menuBackCBRoute(ctx context.Context, ev model.Event, _ string) error {
	if err := r.engine.Cancel(ctx, ev.UserID); err != nil {
		r.log.Warn().Err(err).Int64("tg_id", ev.UserID).Msg("failed to clear session")
	}
	return r.sendMainMenu(ctx, ev, "Главное меню:")
}

func (r *RealBotAdapter) flowCancelCBRoute(ctx context.Context, ev model.Event, _ string) error {
	return r.menuBackCBRoute(ctx, ev, "")
}

func (r *RealBotAdapter) profileCBRoute(ctx context.Context, ev model.Event, _ string) error {
	me, err := r.client.Me(ctx, ev.UserID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось загрузить профиль. Попробуйте позже.", backKeyboard())
	}
	rows := [][]adapter.InlineButton{
		{{Text: "💱 Bybit UID", Data: "menu:bybit"}},
		{{Text: "📥 Пополнить", Data: "menu:topup"}},
		{{Text: "⬅️ Назад", Data: "menu:back"}},
	}
	return r.respond(ctx, ev, profileView(me), rows)
}

func (r *RealBotAdapter) historyCBRoute(ctx context.Context, ev model.Event, _ string) error {
	payments, err := r.client.WalletHistory(ctx, ev.UserID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось загрузить историю. Попробуйте позже.", backKeyboard())
	}
	return r.respond(ctx, ev, historyView(payments), backKeyboard())
}

func (r *RealBotAdapter) stockCBRoute(ctx context.Context, ev model.Event, _ string) error {
	settings, err := r.client.PublicSettings(ctx)
	if err != nil {
		return r.respond(ctx, ev, "❌ Ошибка получения курса. Попробуйте позже.", backKeyboard())
	}
	stock, err := r.client.StockSummary(ctx)
	if err != nil {
		return r.respond(ctx, ev, "❌ Ошибка получения курса. Попробуйте позже.", backKeyboard())
	}
	return r.respond(ctx, ev, stockView(settings, stock), stockKeyboard())
}

func (r *RealBotAdapter) helpCBRoute(ctx context.Context, ev model.Event, _ string) error {
	settings, err := r.client.PublicSettings(ctx)
	if err != nil {
		return r.respond(ctx, ev, helpView("", ""), backKeyboard())
	}
	return r.respond(ctx, ev, helpView(settings.SupportLink, settings.FaqURL), backKeyboard())
}

func (r *RealBotAdapter) calculatorCBRoute(ctx context.Context, ev model.Event, _ string) error {
	return r.engine.Start(ctx, ev, flowCalculator, nil)
}

// ---- orders ----

func (r *RealBotAdapter) orderMenuCBRoute(ctx context.Context, ev model.Event, _ string) error {
	settings, err := r.client.PublicSettings(ctx)
	if err == nil && !settings.OrdersEnabled {
		return r.respond(ctx, ev, "🛒 Заказы временно отключены. Загляните позже.", backKeyboard())
	}
	text := "🛒 <b>Покупка робуксов</b>\n\nВыберите количество или начните заказ и введите своё:"
	return r.respond(ctx, ev, text, orderAmountKeyboard())
}

// orderAmountCBRoute serves both the shortcut buttons and the calculator's
// buy button: the amount arrives preset, the flow asks for the rest.
func (r *RealBotAdapter) orderAmountCBRoute(ctx context.Context, ev model.Event, amount string) error {
	limits := r.cfg.Flows
	if msg, ok := checkPresetAmount(amount, limits.OrderMin, limits.OrderMax); !ok {
		return r.AnswerCallback(ctx, ev.CallbackID, msg, true)
	}
	return r.engine.Start(ctx, ev, flowOrder, map[string]string{fieldAmount: amount})
}

// checkPresetAmount holds preset buttons to the same bounds the typed
// amount step enforces. Returns the rejection text when the amount is bad.
func checkPresetAmount(raw string, min, max int) (string, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return "Некорректная сумма.", false
	}
	if n < min || n > max {
		return fmt.Sprintf("Сумма должна быть от %d до %d.", min, max), false
	}
	return "", true
}

func (r *RealBotAdapter) ordersCBRoute(ctx context.Context, ev model.Event, _ string) error {
	orders, err := r.client.MyOrders(ctx, ev.UserID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось загрузить заказы. Попробуйте позже.", backKeyboard())
	}
	rows := make([][]adapter.InlineButton, 0, len(orders)+1)
	for i, o := range orders {
		if i == 10 {
			break
		}
		label := fmt.Sprintf("%s #%s — %d R$", statusEmoji(o.Status), shortID(o.ID), o.Amount)
		rows = append(rows, []adapter.InlineButton{{Text: label, Data: "order:view:" + o.ID}})
	}
	rows = append(rows, []adapter.InlineButton{{Text: "⬅️ Назад", Data: "menu:back"}})
	return r.respond(ctx, ev, ordersView(orders), rows)
}

func (r *RealBotAdapter) orderViewCBRoute(ctx context.Context, ev model.Event, orderID string) error {
	order, err := r.findOrder(ctx, ev.UserID, orderID)
	if err != nil {
		return r.respond(ctx, ev, "Заказ не найден.", backKeyboard())
	}
	supportLink := ""
	if settings, err := r.client.PublicSettings(ctx); err == nil {
		supportLink = settings.SupportLink
	}
	text := fmt.Sprintf(
		"<b>Заказ #%s</b>\n\n"+
			"👤 Ник: <code>%s</code>\n"+
			"💎 Количество: %d R$\n"+
			"📍 Плейс: <code>%s</code>\n"+
			"Статус: %s %s",
		shortID(order.ID), order.Username, order.Amount, order.PlaceID,
		statusEmoji(order.Status), order.Status,
	)
	rows := orderDetailsKeyboard(order.ID, order.Status, supportLink)
	if isAdmin, _ := r.isAdmin(ctx, ev.UserID); isAdmin {
		rows = append([][]adapter.InlineButton{
			{{Text: "🔎 Rbx-статус", Data: "admin:rbx:info:" + order.ID}},
			{
				{Text: "🔁 Переотправить", Data: "admin:rbx:resend:" + order.ID},
				{Text: "🎟 VIP-сервер", Data: "admin:rbx:vip:" + order.ID},
			},
		}, rows...)
	}
	return r.respond(ctx, ev, text, rows)
}

func (r *RealBotAdapter) orderCancelCBRoute(ctx context.Context, ev model.Event, orderID string) error {
	if err := r.client.CancelOrder(ctx, ev.UserID, orderID); err != nil {
		return r.respond(ctx, ev, "Не удалось отменить заказ. Возможно, он уже выполняется.", backKeyboard())
	}
	return r.respond(ctx, ev, "Заказ отменён. Средства возвращены на баланс.", backKeyboard())
}

// orderRepeatCBRoute presets every field from the past order, so the flow
// finalizes immediately without asking anything.
func (r *RealBotAdapter) orderRepeatCBRoute(ctx context.Context, ev model.Event, orderID string) error {
	order, err := r.findOrder(ctx, ev.UserID, orderID)
	if err != nil {
		return r.respond(ctx, ev, "Заказ не найден.", backKeyboard())
	}
	return r.engine.Start(ctx, ev, flowOrder, map[string]string{
		fieldUsername: order.Username,
		fieldAmount:   strconv.Itoa(order.Amount),
		fieldPlaceID:  order.PlaceID,
	})
}

func (r *RealBotAdapter) findOrder(ctx context.Context, tgID int64, orderID string) (*model.Order, error) {
	orders, err := r.client.MyOrders(ctx, tgID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == orderID {
			return &orders[i], nil
		}
	}
	return nil, fmt.Errorf("order %s: not found", shortID(orderID))
}

// ---- topup ----

func (r *RealBotAdapter) topupCBRoute(ctx context.Context, ev model.Event, _ string) error {
	settings, err := r.client.PublicSettings(ctx)
	if err == nil && !settings.TopupEnabled {
		return r.respond(ctx, ev, "📥 Пополнения временно отключены. Загляните позже.", backKeyboard())
	}
	return r.engine.Start(ctx, ev, flowTopup, nil)
}

func (r *RealBotAdapter) topupCryptoBotCBRoute(ctx context.Context, ev model.Event, arg string) error {
	amount, err := strconv.ParseFloat(arg, 64)
	if err != nil || amount <= 0 {
		return r.AnswerCallback(ctx, ev.CallbackID, "Некорректная сумма.", true)
	}
	invoice, err := r.client.CreateTopup(ctx, ev.UserID, amount)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось создать счёт. Попробуйте позже.", backKeyboard())
	}
	text := fmt.Sprintf(
		"🧾 Счёт на <b>%.2f ₽</b> создан.\n\nОплатите по кнопке ниже. Баланс пополнится автоматически после оплаты.",
		amount,
	)
	return r.respond(ctx, ev, text, topupConfirmKeyboard(invoice.PaymentURL))
}

func (r *RealBotAdapter) topupBybitCBRoute(ctx context.Context, ev model.Event, arg string) error {
	amount, err := strconv.ParseFloat(arg, 64)
	if err != nil || amount <= 0 {
		return r.AnswerCallback(ctx, ev.CallbackID, "Некорректная сумма.", true)
	}
	invoice, err := r.client.CreateBybitPayOrder(ctx, ev.UserID, amount)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось создать платёж. Попробуйте позже.", backKeyboard())
	}
	text := fmt.Sprintf(
		"💱 Платёж Bybit Pay на <b>%.2f ₽</b> создан.\n\n"+
			"Оплатите по кнопке, затем нажмите «Я оплатил».",
		amount,
	)
	rows := [][]adapter.InlineButton{
		{{Text: "💸 Оплатить", URL: invoice.PaymentURL}},
		{{Text: "✅ Я оплатил", Data: "topup:check:" + invoice.PaymentID}},
		{{Text: "⬅️ Отмена", Data: "menu:back"}},
	}
	return r.respond(ctx, ev, text, rows)
}

func (r *RealBotAdapter) topupCheckCBRoute(ctx context.Context, ev model.Event, paymentID string) error {
	confirmed, err := r.client.CheckBybitPayment(ctx, ev.UserID, paymentID)
	if err != nil {
		return r.AnswerCallback(ctx, ev.CallbackID, "Не удалось проверить оплату. Попробуйте позже.", true)
	}
	if !confirmed {
		return r.AnswerCallback(ctx, ev.CallbackID, "Оплата пока не найдена. Подождите немного.", true)
	}
	return r.respond(ctx, ev, "✅ Оплата подтверждена! Баланс пополнен.", backKeyboard())
}

// ---- bybit ----

func (r *RealBotAdapter) bybitMenuCBRoute(ctx context.Context, ev model.Event, _ string) error {
	text := "💱 <b>Bybit UID</b>\n\nПривяжите UID, чтобы пополнения через Bybit Pay зачислялись автоматически."
	if me, err := r.client.Me(ctx, ev.UserID); err == nil && me.BybitUID != "" {
		text += fmt.Sprintf("\n\nТекущий UID: <code>%s</code>", me.BybitUID)
	}
	return r.respond(ctx, ev, text, bybitMenuKeyboard())
}

func (r *RealBotAdapter) bybitSaveCBRoute(ctx context.Context, ev model.Event, _ string) error {
	return r.engine.Start(ctx, ev, flowBybitUID, nil)
}

func (r *RealBotAdapter) bybitCheckCBRoute(ctx context.Context, ev model.Event, _ string) error {
	credited, err := r.client.BybitQuickCheck(ctx, ev.UserID)
	if err != nil {
		return r.AnswerCallback(ctx, ev.CallbackID, "Не удалось проверить пополнения.", true)
	}
	if credited == 0 {
		return r.AnswerCallback(ctx, ev.CallbackID, "Новых пополнений не найдено.", true)
	}
	text := fmt.Sprintf("✅ Зачислено пополнений: %d. Проверьте баланс в профиле.", credited)
	return r.respond(ctx, ev, text, backKeyboard())
}

// ---- referrals ----

func (r *RealBotAdapter) referralsCBRoute(ctx context.Context, ev model.Event, _ string) error {
	stats, err := r.client.Referrals(ctx, ev.UserID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось загрузить статистику. Попробуйте позже.", backKeyboard())
	}
	link := fmt.Sprintf("https://t.me/%s?start=ref_%d", r.username, ev.UserID)
	return r.respond(ctx, ev, referralsView(stats, link), referralsKeyboard(stats.ReferralBalance > 0))
}

func (r *RealBotAdapter) referralTransferCBRoute(ctx context.Context, ev model.Event, _ string) error {
	amount, err := r.client.TransferReferralBalance(ctx, ev.UserID)
	if err != nil {
		return r.AnswerCallback(ctx, ev.CallbackID, "Не удалось перевести средства.", true)
	}
	text := fmt.Sprintf("✅ Переведено %.2f ₽ на основной баланс.", amount)
	return r.respond(ctx, ev, text, backKeyboard())
}

// ---- admin ----

func (r *RealBotAdapter) adminMenuCBRoute(ctx context.Context, ev model.Event, _ string) error {
	return r.respond(ctx, ev, "<b>🛠 Админ-панель</b>", adminMenuKeyboard())
}

func (r *RealBotAdapter) adminOrdersCBRoute(ctx context.Context, ev model.Event, _ string) error {
	summary, err := r.client.AdminOrdersSummary(ctx, ev.UserID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось загрузить сводку.", adminBackKeyboard())
	}
	return r.respond(ctx, ev, adminOrdersView(summary), adminBackKeyboard())
}

func (r *RealBotAdapter) adminPaymentsCBRoute(ctx context.Context, ev model.Event, _ string) error {
	payments, err := r.client.AdminPayments(ctx, ev.UserID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось загрузить платежи.", adminBackKeyboard())
	}
	return r.respond(ctx, ev, adminPaymentsView(payments), adminBackKeyboard())
}

func (r *RealBotAdapter) adminUsersCBRoute(ctx context.Context, ev model.Event, _ string) error {
	users, err := r.client.AdminUsers(ctx, ev.UserID, "")
	if err != nil {
		return r.respond(ctx, ev, "Не удалось загрузить пользователей.", adminBackKeyboard())
	}
	return r.respond(ctx, ev, adminUsersView(users), adminUsersKeyboard())
}

func (r *RealBotAdapter) adminUserSearchCBRoute(ctx context.Context, ev model.Event, _ string) error {
	return r.engine.Start(ctx, ev, flowAdminSearch, nil)
}

func (r *RealBotAdapter) adminLogsCBRoute(ctx context.Context, ev model.Event, _ string) error {
	logs, err := r.client.AdminLogs(ctx, ev.UserID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось загрузить логи.", adminBackKeyboard())
	}
	return r.respond(ctx, ev, adminLogsView(logs), adminBackKeyboard())
}

func (r *RealBotAdapter) adminCryptoCBRoute(ctx context.Context, ev model.Event, _ string) error {
	return r.respond(ctx, ev, "<b>🤖 Crypto Bot</b>", adminCryptoKeyboard())
}

func (r *RealBotAdapter) adminCryptoCheckCBRoute(ctx context.Context, ev model.Event, _ string) error {
	status, err := r.client.AdminCryptoBotCheck(ctx, ev.UserID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось проверить связку.", adminBackKeyboard())
	}
	text := fmt.Sprintf("✅ Связка работает: <b>%s</b>", status.AppName)
	if !status.OK {
		text = fmt.Sprintf("❌ Связка не работает: %s", status.Error)
	}
	return r.respond(ctx, ev, text, adminCryptoKeyboard())
}

func (r *RealBotAdapter) adminCryptoRateCBRoute(ctx context.Context, ev model.Event, _ string) error {
	rate, err := r.client.AdminCryptoBotRate(ctx, ev.UserID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось получить курс.", adminBackKeyboard())
	}
	text := fmt.Sprintf("💱 Курс: <b>%.2f ₽</b> за 1 USDT", rate.Rate)
	return r.respond(ctx, ev, text, adminCryptoKeyboard())
}

func (r *RealBotAdapter) adminRbxCBRoute(ctx context.Context, ev model.Event, _ string) error {
	return r.respond(ctx, ev, "<b>💼 Поставщик Rbx</b>", adminRbxKeyboard())
}

func (r *RealBotAdapter) adminRbxBalanceCBRoute(ctx context.Context, ev model.Event, _ string) error {
	balance, err := r.client.AdminRbxBalance(ctx, ev.UserID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось получить баланс поставщика.", adminBackKeyboard())
	}
	text := fmt.Sprintf("💰 Баланс поставщика: <b>%d R$</b>", balance.Balance)
	return r.respond(ctx, ev, text, adminRbxKeyboard())
}

func (r *RealBotAdapter) adminRbxStockCBRoute(ctx context.Context, ev model.Event, _ string) error {
	accounts, err := r.client.AdminRbxStock(ctx, ev.UserID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось получить склад.", adminBackKeyboard())
	}
	return r.respond(ctx, ev, adminRbxStockView(accounts), adminRbxKeyboard())
}

func (r *RealBotAdapter) adminRbxOrderInfoCBRoute(ctx context.Context, ev model.Event, orderID string) error {
	info, err := r.client.AdminRbxOrderInfo(ctx, ev.UserID, orderID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось получить статус у поставщика.", adminBackKeyboard())
	}
	text := fmt.Sprintf(
		"🔎 <b>Статус у поставщика</b>\n\n"+
			"Заказ: <code>%s</code>\n"+
			"Статус: %s\n"+
			"Ник: <code>%s</code>\n"+
			"Количество: %d R$",
		shortID(info.OrderID), info.Status, info.Username, info.Amount,
	)
	if info.Error != "" {
		text += "\n⚠️ " + info.Error
	}
	return r.respond(ctx, ev, text, adminBackKeyboard())
}

func (r *RealBotAdapter) adminRbxOrderResendCBRoute(ctx context.Context, ev model.Event, orderID string) error {
	info, err := r.client.AdminRbxOrderInfo(ctx, ev.UserID, orderID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось получить данные заказа.", adminBackKeyboard())
	}
	if err := r.client.AdminRbxOrderResend(ctx, ev.UserID, orderID, info.PlaceID); err != nil {
		return r.respond(ctx, ev, "Не удалось переотправить заказ.", adminBackKeyboard())
	}
	return r.respond(ctx, ev, "🔁 Заказ переотправлен поставщику.", adminBackKeyboard())
}

func (r *RealBotAdapter) adminRbxOrderVIPCBRoute(ctx context.Context, ev model.Event, orderID string) error {
	info, err := r.client.AdminRbxOrderInfo(ctx, ev.UserID, orderID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось получить данные заказа.", adminBackKeyboard())
	}
	if err := r.client.AdminRbxOrderVIPServer(ctx, ev.UserID, orderID, info.Username, info.Amount, info.PlaceID); err != nil {
		return r.respond(ctx, ev, "Не удалось отправить через VIP-сервер.", adminBackKeyboard())
	}
	return r.respond(ctx, ev, "🎟 Заказ отправлен через VIP-сервер.", adminBackKeyboard())
}

func (r *RealBotAdapter) adminSettingsCBRoute(ctx context.Context, ev model.Event, _ string) error {
	settings, err := r.client.AdminSettings(ctx, ev.UserID)
	if err != nil {
		return r.respond(ctx, ev, "Не удалось загрузить настройки.", adminBackKeyboard())
	}
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return r.respond(ctx, ev, adminSettingsView(settings, keys), adminSettingsKeyboard(keys))
}

func (r *RealBotAdapter) adminSettingEditCBRoute(ctx context.Context, ev model.Event, key string) error {
	if key == "" {
		return r.AnswerCallback(ctx, ev.CallbackID, "Некорректная настройка.", true)
	}
	return r.engine.Start(ctx, ev, flowAdminSet, map[string]string{fieldKey: key})
}
