// File: internal/infra/adapters/telegram/views.go
package telegram

import (
	"fmt"
	"math"
	"strings"

	"telegram-robux-store/internal/domain/model"
)

const welcomeText = "<b>👋 Добро пожаловать в RobuxTrade!</b>\n\n" +
	"💎 Здесь вы можете купить робуксы по самому выгодному курсу.\n" +
	"🚀 Быстрая доставка и гарантия качества."

func profileView(p *model.Profile) string {
	var b strings.Builder
	b.WriteString("<b>👤 Профиль</b>\n\n")
	fmt.Fprintf(&b, "💰 Баланс: <b>%.2f ₽</b>\n", p.Balance)
	if p.BybitUID != "" {
		fmt.Fprintf(&b, "💱 Bybit UID: <code>%s</code>\n", p.BybitUID)
	}
	if p.ReferralBalance > 0 {
		fmt.Fprintf(&b, "👥 Реферальный баланс: <b>%.2f ₽</b>\n", p.ReferralBalance)
	}
	return b.String()
}

func historyView(payments []model.Payment) string {
	if len(payments) == 0 {
		return "История пополнений пуста."
	}
	lines := make([]string, 0, 10)
	for i, p := range payments {
		if i == 10 {
			break
		}
		lines = append(lines, fmt.Sprintf("%.2f ₽ — %s (%s)", p.Amount, p.Status, p.Method))
	}
	return "Последние пополнения:\n" + strings.Join(lines, "\n")
}

func ordersView(orders []model.Order) string {
	if len(orders) == 0 {
		return "У вас пока нет заказов."
	}
	var b strings.Builder
	b.WriteString("<b>📦 Мои заказы</b>\n\n")
	for i, o := range orders {
		if i == 10 {
			break
		}
		fmt.Fprintf(&b, "%s #%s — %d R$ (%s)\n", statusEmoji(o.Status), shortID(o.ID), o.Amount, o.Status)
	}
	return b.String()
}

func statusEmoji(status string) string {
	switch status {
	case model.OrderStatusCompleted:
		return "✅"
	case model.OrderStatusFailed:
		return "❌"
	default:
		return "⏳"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func stockView(settings *model.PublicSettings, stock *model.StockSummary) string {
	return fmt.Sprintf(
		"<b>📊 Курс и наличие</b>\n\n"+
			"📈 Курс: <b>%.2f ₽</b> за 100 R$\n"+
			"📦 В наличии: <b>%d R$</b>",
		settings.Rate*100, stock.RobuxAvailable,
	)
}

// calculatorView renders the price breakdown and returns the price for the
// buy shortcut label. The 30% platform fee is Roblox's, not ours.
func calculatorView(amount int, rate float64, available int) (string, float64) {
	price := math.Round(float64(amount)*rate*100) / 100
	receive := int(float64(amount) * 0.7)

	stockStatus := "✅ В наличии"
	if available < amount {
		stockStatus = fmt.Sprintf("⚠️ Мало на складе (всего %d)", available)
	}

	text := fmt.Sprintf(
		"🧮 <b>Расчет стоимости</b>\n\n"+
			"💎 <b>Вы покупаете:</b> <code>%d R$</code>\n"+
			"📥 <b>Получите на счет:</b> <code>%d R$</code>\n"+
			"💰 <b>Цена:</b> <code>%.2f ₽</code>\n"+
			"📦 <b>Статус:</b> %s\n"+
			"📊 <b>Курс:</b> %.2f ₽ за 100 R$\n\n"+
			"<blockquote>ℹ️ Учтена комиссия Roblox 30%%</blockquote>",
		amount, receive, price, stockStatus, math.Round(rate*100*100)/100,
	)
	return text, price
}

func referralsView(stats *model.ReferralStats, refLink string) string {
	return fmt.Sprintf(
		"<b>👥 Реферальная система</b>\n\n"+
			"Приглашайте друзей и получайте <b>%.0f%%</b> от суммы их покупок на свой реферальный баланс!\n\n"+
			"🔗 <b>Ваша ссылка:</b>\n<code>%s</code>\n\n"+
			"📊 <b>Статистика:</b>\n"+
			"• Приглашено: <b>%d</b> чел.\n"+
			"• Баланс: <b>%.2f ₽</b>\n\n"+
			"<i>Деньги с реферального баланса можно использовать для покупок в боте.</i>",
		stats.ReferralPercent, refLink, stats.ReferralsCount, stats.ReferralBalance,
	)
}

func helpView(supportLink, faqURL string) string {
	var b strings.Builder
	b.WriteString("<b>❓ Помощь</b>\n\n")
	b.WriteString("Выберите действие в меню. Заказы выполняются автоматически, обычно в течение нескольких минут.\n")
	if faqURL != "" {
		fmt.Fprintf(&b, "\n📖 FAQ: %s", faqURL)
	}
	if supportLink != "" {
		fmt.Fprintf(&b, "\n🆘 Поддержка: %s", supportLink)
	}
	return b.String()
}

// ---- admin views (read-only formatting over backend aggregates) ----

func adminOrdersView(s *model.OrdersSummary) string {
	return fmt.Sprintf(
		"<b>📊 Заказы и выручка</b>\n\n"+
			"Всего заказов: <b>%d</b>\n"+
			"⏳ В работе: %d\n"+
			"✅ Выполнено: %d\n"+
			"❌ Отменено: %d\n\n"+
			"💰 Выручка: <b>%.2f ₽</b>",
		s.TotalOrders, s.PendingOrders, s.CompletedOrders, s.FailedOrders, s.TotalRevenue,
	)
}

func adminPaymentsView(payments []model.AdminPayment) string {
	if len(payments) == 0 {
		return "Платежей пока нет."
	}
	var b strings.Builder
	b.WriteString("<b>💳 Последние платежи</b>\n\n")
	for i, p := range payments {
		if i == 10 {
			break
		}
		fmt.Fprintf(&b, "%.2f ₽ — %s (%s) <code>%s</code>\n", p.Amount, p.Status, p.Method, p.UserID)
	}
	return b.String()
}

func adminUsersView(users []model.AdminUser) string {
	if len(users) == 0 {
		return "Пользователи не найдены."
	}
	var b strings.Builder
	b.WriteString("<b>👥 Пользователи</b>\n\n")
	for i, u := range users {
		if i == 10 {
			break
		}
		flags := ""
		if u.Role == "admin" {
			flags += " 🛠"
		}
		if u.IsBanned {
			flags += " 🚫"
		}
		fmt.Fprintf(&b, "<code>%s</code> %s — %.2f ₽%s\n", u.ID, u.Username, u.Balance, flags)
	}
	return b.String()
}

func adminLogsView(logs []model.LogEntry) string {
	if len(logs) == 0 {
		return "Логи пусты."
	}
	var b strings.Builder
	b.WriteString("<b>📜 Последние события</b>\n\n")
	for i, l := range logs {
		if i == 15 {
			break
		}
		fmt.Fprintf(&b, "[%s] %s: %s\n", l.Time, l.Level, l.Message)
	}
	return b.String()
}

func adminRbxStockView(accounts []model.RbxStockAccount) string {
	if len(accounts) == 0 {
		return "Нет данных по складу."
	}
	var b strings.Builder
	b.WriteString("<b>📦 Склад по аккаунтам</b>\n\n")
	total := 0
	for _, a := range accounts {
		fmt.Fprintf(&b, "%s — %d R$\n", a.Name, a.Balance)
		total += a.Balance
	}
	fmt.Fprintf(&b, "\nИтого: <b>%d R$</b>", total)
	return b.String()
}

func adminSettingsView(s model.StoreSettings, keys []string) string {
	var b strings.Builder
	b.WriteString("<b>⚙️ Настройки магазина</b>\n\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s = <code>%v</code>\n", k, s[k])
	}
	b.WriteString("\nНажмите на настройку, чтобы изменить её.")
	return b.String()
}
