// File: internal/infra/adapters/telegram/keyboards.go
package telegram

import (
	"fmt"

	"telegram-robux-store/internal/domain/ports/adapter"
)

type btn = adapter.InlineButton

func mainMenuKeyboard(isAdmin bool) [][]btn {
	rows := [][]btn{
		{
			{Text: "👤 Профиль", Data: "menu:balance"},
			{Text: "📥 Пополнить", Data: "menu:topup"},
		},
		{
			{Text: "🛒 Купить робуксы", Data: "menu:order"},
		},
		{
			{Text: "📦 Мои заказы", Data: "menu:orders_history"},
			{Text: "📜 История пополнений", Data: "menu:history"},
		},
		{
			{Text: "🧮 Калькулятор", Data: "menu:calculator"},
			{Text: "📊 Курс и наличие", Data: "menu:stock_info"},
		},
		{
			{Text: "👥 Рефералы", Data: "menu:referrals"},
		},
		{
			{Text: "❓ Помощь", Data: "menu:help"},
		},
	}
	if isAdmin {
		rows = append(rows, []btn{{Text: "🛠 Админка", Data: "menu:admin"}})
	}
	return rows
}

func flowCancelKeyboard() [][]btn {
	return [][]btn{
		{{Text: "⬅️ В главное меню", Data: "flow:cancel"}},
	}
}

func orderAmountKeyboard() [][]btn {
	return [][]btn{
		{
			{Text: "100 R$", Data: "order:amount:100"},
			{Text: "200 R$", Data: "order:amount:200"},
			{Text: "400 R$", Data: "order:amount:400"},
		},
		{
			{Text: "500 R$", Data: "order:amount:500"},
			{Text: "800 R$", Data: "order:amount:800"},
			{Text: "1000 R$", Data: "order:amount:1000"},
		},
		{
			{Text: "1500 R$", Data: "order:amount:1500"},
			{Text: "5000 R$", Data: "order:amount:5000"},
		},
		{
			{Text: "⬅️ Отмена", Data: "flow:cancel"},
		},
	}
}

func paymentMethodKeyboard(amount string) [][]btn {
	return [][]btn{
		{{Text: "🤖 Crypto Bot (Авто)", Data: "topup:method:cryptobot:" + amount}},
		{{Text: "💱 Bybit Pay (Вручную)", Data: "topup:method:bybit:" + amount}},
		{{Text: "⬅️ Отмена", Data: "flow:cancel"}},
	}
}

func topupConfirmKeyboard(payURL string) [][]btn {
	return [][]btn{
		{{Text: "💸 Оплатить", URL: payURL}},
		{{Text: "🔄 Проверить оплату", Data: "menu:balance"}},
	}
}

func calculatorResultKeyboard(amount string, price float64) [][]btn {
	return [][]btn{
		{{Text: fmt.Sprintf("🛒 Купить за %.2f ₽", price), Data: "order:create:" + amount}},
		{
			{Text: "🔄 Посчитать еще", Data: "menu:calculator"},
			{Text: "⬅️ В меню", Data: "flow:cancel"},
		},
	}
}

func stockKeyboard() [][]btn {
	return [][]btn{
		{{Text: "🔄 Обновить", Data: "menu:stock_info"}},
		{{Text: "⬅️ Назад", Data: "menu:back"}},
	}
}

func backKeyboard() [][]btn {
	return [][]btn{
		{{Text: "⬅️ Назад", Data: "menu:back"}},
	}
}

func bybitMenuKeyboard() [][]btn {
	return [][]btn{
		{{Text: "💾 Сохранить UID", Data: "bybit:save"}},
		{{Text: "🔄 Проверить пополнения", Data: "bybit:check"}},
		{{Text: "⬅️ Назад", Data: "menu:back"}},
	}
}

func referralsKeyboard(hasBalance bool) [][]btn {
	var rows [][]btn
	if hasBalance {
		rows = append(rows, []btn{{Text: "💸 Перевести на основной баланс", Data: "referrals:transfer"}})
	}
	rows = append(rows, []btn{{Text: "🔙 Назад", Data: "menu:back"}})
	return rows
}

func orderDetailsKeyboard(orderID, status, supportLink string) [][]btn {
	var rows [][]btn
	switch status {
	case "pending":
		rows = append(rows, []btn{{Text: "❌ Отменить заказ", Data: "order:cancel:" + orderID}})
	case "completed":
		rows = append(rows, []btn{{Text: "🔄 Повторить заказ", Data: "order:repeat:" + orderID}})
	}
	if supportLink != "" {
		rows = append(rows, []btn{{Text: "🆘 Поддержка", URL: supportLink}})
	}
	rows = append(rows, []btn{{Text: "🔙 Назад к списку", Data: "menu:orders_history"}})
	return rows
}

func adminMenuKeyboard() [][]btn {
	return [][]btn{
		{{Text: "📊 Заказы и выручка", Data: "admin:orders"}},
		{
			{Text: "💳 Платежи", Data: "admin:payments"},
			{Text: "👥 Пользователи", Data: "admin:users"},
		},
		{{Text: "📜 Логи", Data: "admin:logs"}},
		{
			{Text: "🤖 Crypto Bot", Data: "admin:crypto"},
			{Text: "💼 Rbx", Data: "admin:rbx"},
		},
		{{Text: "⚙️ Настройки", Data: "admin:settings"}},
		{{Text: "⬅️ В главное меню", Data: "menu:back"}},
	}
}

func adminCryptoKeyboard() [][]btn {
	return [][]btn{
		{{Text: "Проверить связку", Data: "admin:crypto:check"}},
		{{Text: "Курс RUB→USDT", Data: "admin:crypto:rate"}},
		{{Text: "⬅️ Назад", Data: "admin:menu"}},
	}
}

func adminRbxKeyboard() [][]btn {
	return [][]btn{
		{{Text: "💰 Баланс поставщика", Data: "admin:rbx:balance"}},
		{{Text: "📦 Склад по аккаунтам", Data: "admin:rbx:stock"}},
		{{Text: "⬅️ Назад", Data: "admin:menu"}},
	}
}

func adminUsersKeyboard() [][]btn {
	return [][]btn{
		{{Text: "🔍 Поиск", Data: "admin:users:search"}},
		{{Text: "⬅️ Назад", Data: "admin:menu"}},
	}
}

func adminBackKeyboard() [][]btn {
	return [][]btn{
		{{Text: "⬅️ Назад", Data: "admin:menu"}},
	}
}

func adminSettingsKeyboard(keys []string) [][]btn {
	rows := make([][]btn, 0, len(keys)+1)
	for _, k := range keys {
		rows = append(rows, []btn{{Text: "✏️ " + k, Data: "admin:settings:edit:" + k}})
	}
	rows = append(rows, []btn{{Text: "⬅️ Назад", Data: "admin:menu"}})
	return rows
}
