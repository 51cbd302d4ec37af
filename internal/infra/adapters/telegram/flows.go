// File: internal/infra/adapters/telegram/flows.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"telegram-robux-store/internal/backend"
	"telegram-robux-store/internal/domain/model"
	"telegram-robux-store/internal/flow"
)

// Flow names and field keys. Callback shortcuts preset fields by these keys.
const (
	flowOrder       = "order"
	flowTopup       = "topup"
	flowBybitUID    = "bybit_uid"
	flowCalculator  = "calculator"
	flowAdminSet    = "admin_setting"
	flowAdminSearch = "admin_user_search"

	fieldUsername = "username"
	fieldAmount   = "amount"
	fieldPlaceID  = "place_id"
	fieldUID      = "uid"
	fieldKey      = "key"
	fieldValue    = "value"
	fieldQuery    = "query"
)

// sendFlowPrompt is the engine's Sender: every prompt carries a way out.
func (r *RealBotAdapter) sendFlowPrompt(ctx context.Context, ev model.Event, text string) error {
	return r.SendButtons(ctx, ev.ChatID, text, flowCancelKeyboard())
}

func (r *RealBotAdapter) registerFlows() error {
	limits := r.cfg.Flows
	flows := []*flow.Flow{
		{
			Name: flowOrder,
			Steps: []flow.Step{
				{
					Field:  fieldUsername,
					Prompt: "Введите ваш ник в Roblox:",
					Validate: flow.TextLength(limits.UsernameMin, limits.UsernameMax,
						fmt.Sprintf("Ник должен быть от %d до %d символов. Попробуйте ещё раз.", limits.UsernameMin, limits.UsernameMax)),
				},
				{
					Field:  fieldAmount,
					Prompt: fmt.Sprintf("Сколько робуксов хотите купить? (от %d до %d)", limits.OrderMin, limits.OrderMax),
					Validate: flow.IntRange(limits.OrderMin, limits.OrderMax,
						"Введите целое число робуксов.",
						fmt.Sprintf("Сумма должна быть от %d до %d.", limits.OrderMin, limits.OrderMax)),
				},
				{
					Field:    fieldPlaceID,
					Prompt:   "Отправьте ID плейса или ссылку на игру.",
					Validate: flow.PlaceID("Отправьте числовой ID плейса или ссылку на roblox.com."),
				},
			},
			Finalize: r.finalizeOrder,
		},
		{
			Name: flowTopup,
			Steps: []flow.Step{
				{
					Field:    fieldAmount,
					Prompt:   "Введите сумму пополнения в рублях (например, 500):",
					Validate: flow.PositiveAmount("Введите число больше нуля. Например, 500 или 500.5"),
				},
			},
			Finalize: r.finalizeTopup,
		},
		{
			Name: flowBybitUID,
			Steps: []flow.Step{
				{
					Field:    fieldUID,
					Prompt:   "Отправьте ваш Bybit UID (или 0, чтобы очистить):",
					Validate: flow.Any(),
				},
			},
			Finalize: r.finalizeBybitUID,
		},
		{
			Name: flowCalculator,
			Steps: []flow.Step{
				{
					Field:  fieldAmount,
					Prompt: "🧮 <b>Калькулятор стоимости</b>\n\n👇 <b>Введите количество робуксов:</b>\n<blockquote>Например: 1000</blockquote>",
					Validate: flow.PositiveInt(
						"⚠️ Введите целое число.",
						"⚠️ Число должно быть больше 0."),
				},
			},
			Finalize: r.finalizeCalculator,
		},
		{
			Name: flowAdminSet,
			Steps: []flow.Step{
				{
					Field:    fieldKey,
					Prompt:   "Какую настройку изменить?",
					Validate: flow.Any(), // preset by the settings menu in practice
				},
				{
					Field:    fieldValue,
					Prompt:   "Отправьте новое значение:",
					Validate: flow.Any(),
				},
			},
			Finalize: r.finalizeAdminSetting,
		},
		{
			Name: flowAdminSearch,
			Steps: []flow.Step{
				{
					Field:    fieldQuery,
					Prompt:   "Введите ник или ID пользователя:",
					Validate: flow.TextLength(1, 64, "Запрос должен быть от 1 до 64 символов."),
				},
			},
			Finalize: r.finalizeAdminSearch,
		},
	}
	for _, f := range flows {
		if err := r.engine.Register(f); err != nil {
			return err
		}
	}
	return nil
}

// ---- finalize actions ----

func (r *RealBotAdapter) finalizeOrder(ctx context.Context, ev model.Event, fields map[string]string) error {
	amount, err := strconv.Atoi(fields[fieldAmount])
	if err != nil {
		return r.SendMessage(ctx, ev.ChatID, "Что-то пошло не так. Начните заказ заново.")
	}
	orderID, err := r.client.CreateOrder(ctx, ev.UserID, backend.CreateOrderParams{
		Username: fields[fieldUsername],
		Amount:   amount,
		PlaceID:  fields[fieldPlaceID],
	})
	if err != nil {
		if backend.IsKind(err, backend.KindRejected) {
			return r.SendMessage(ctx, ev.ChatID, backendReason(err, "Неизвестная ошибка при создании заказа."))
		}
		return r.SendMessage(ctx, ev.ChatID, "Не удалось создать заказ. Попробуйте позже.")
	}

	isAdmin := false
	if me, err := r.client.Me(ctx, ev.UserID); err == nil {
		isAdmin = me.IsAdmin()
	}
	text := fmt.Sprintf(
		"Заказ создан! ID заказа: %s\nОжидайте выполнения. Статус можно отслеживать в «Мои заказы».",
		orderID,
	)
	return r.SendButtons(ctx, ev.ChatID, text, mainMenuKeyboard(isAdmin))
}

// finalizeTopup only picks the payment method; the invoice is created by the
// topup:method:* callback so the user can still back out.
func (r *RealBotAdapter) finalizeTopup(ctx context.Context, ev model.Event, fields map[string]string) error {
	amount := fields[fieldAmount]
	text := fmt.Sprintf("Сумма пополнения: %s ₽.\nВыберите способ оплаты:", amount)
	return r.SendButtons(ctx, ev.ChatID, text, paymentMethodKeyboard(amount))
}

func (r *RealBotAdapter) finalizeBybitUID(ctx context.Context, ev model.Event, fields map[string]string) error {
	uid := fields[fieldUID]
	if uid == "0" {
		uid = ""
	}
	if err := r.client.SetBybitUID(ctx, ev.UserID, uid); err != nil {
		return r.SendMessage(ctx, ev.ChatID, "Ошибка при сохранении Bybit UID. Попробуйте ещё раз.")
	}
	if uid == "" {
		return r.SendMessage(ctx, ev.ChatID, "Bybit UID очищен.")
	}
	return r.SendMessage(ctx, ev.ChatID, "Bybit UID сохранён.")
}

func (r *RealBotAdapter) finalizeCalculator(ctx context.Context, ev model.Event, fields map[string]string) error {
	amount, err := strconv.Atoi(fields[fieldAmount])
	if err != nil {
		return r.SendMessage(ctx, ev.ChatID, "⚠️ Введите целое число.")
	}
	// A wrong price is worse than no price: abort on any fetch failure.
	settings, err := r.client.PublicSettings(ctx)
	if err != nil {
		return r.SendMessage(ctx, ev.ChatID, "❌ Ошибка получения курса. Попробуйте позже.")
	}
	stock, err := r.client.StockSummary(ctx)
	if err != nil {
		return r.SendMessage(ctx, ev.ChatID, "❌ Ошибка получения курса. Попробуйте позже.")
	}
	text, price := calculatorView(amount, settings.Rate, stock.RobuxAvailable)
	return r.SendButtons(ctx, ev.ChatID, text, calculatorResultKeyboard(fields[fieldAmount], price))
}

func (r *RealBotAdapter) finalizeAdminSetting(ctx context.Context, ev model.Event, fields map[string]string) error {
	patch := model.StoreSettings{fields[fieldKey]: coerceSettingValue(fields[fieldValue])}
	if err := r.client.AdminUpdateSettings(ctx, ev.UserID, patch); err != nil {
		return r.SendButtons(ctx, ev.ChatID, "Не удалось сохранить настройку. Попробуйте позже.", adminBackKeyboard())
	}
	text := fmt.Sprintf("Настройка <code>%s</code> обновлена.", fields[fieldKey])
	return r.SendButtons(ctx, ev.ChatID, text, adminBackKeyboard())
}

func (r *RealBotAdapter) finalizeAdminSearch(ctx context.Context, ev model.Event, fields map[string]string) error {
	users, err := r.client.AdminUsers(ctx, ev.UserID, fields[fieldQuery])
	if err != nil {
		return r.SendButtons(ctx, ev.ChatID, "Не удалось выполнить поиск. Попробуйте позже.", adminBackKeyboard())
	}
	return r.SendButtons(ctx, ev.ChatID, adminUsersView(users), adminBackKeyboard())
}

// coerceSettingValue keeps booleans and numbers typed on the wire; the
// backend stores settings as JSON.
func coerceSettingValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}

// backendReason extracts the backend's message for rejections that carry one.
func backendReason(err error, fallback string) string {
	var be *backend.Error
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}
