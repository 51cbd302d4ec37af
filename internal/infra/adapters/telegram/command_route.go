// File: internal/infra/adapters/telegram/command_route.go
package telegram

import (
	"context"
	"strings"

	"telegram-robux-store/internal/backend"
	"telegram-robux-store/internal/domain/model"
)

type cmdHandler func(ctx context.Context, ev model.Event, args string) error

func (r *RealBotAdapter) cmdRoutes() map[string]cmdHandler {
	return map[string]cmdHandler{
		"/start": r.startCmdRoute,
		"/help":  r.helpCmdRoute,
		"/admin": r.adminCmdRoute,
	}
}

// handleMessage dispatches a plain message: commands first, then the flow
// engine. Text that matches neither is answered with the menu so the user
// is never left without a next step.
func (r *RealBotAdapter) handleMessage(ctx context.Context, ev model.Event) error {
	log := r.log.With().Int64("tg_id", ev.UserID).Logger()

	if ev.IsCommand() {
		cmd, args := splitCommand(ev.Text)
		if h, ok := r.cmdRoutes()[cmd]; ok {
			// A command always interrupts whatever flow was in progress.
			if err := r.engine.Cancel(ctx, ev.UserID); err != nil {
				log.Warn().Err(err).Msg("failed to clear session on command")
			}
			return h(ctx, ev, args)
		}
		return r.SendMessage(ctx, ev.ChatID, "Неизвестная команда. Используйте /start.")
	}

	handled, err := r.engine.HandleInput(ctx, ev)
	if err != nil {
		log.Error().Err(err).Msg("flow input error")
		return r.SendMessage(ctx, ev.ChatID, "Что-то пошло не так. Попробуйте ещё раз.")
	}
	if handled {
		return nil
	}
	return r.sendMainMenu(ctx, ev, "Выберите действие:")
}

// splitCommand strips the @botname suffix group chats append.
func splitCommand(text string) (cmd, args string) {
	cmd, args, _ = strings.Cut(strings.TrimSpace(text), " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), strings.TrimSpace(args)
}

func (r *RealBotAdapter) startCmdRoute(ctx context.Context, ev model.Event, args string) error {
	p := backend.SyncUserParams{
		TgID:      ev.UserID,
		Username:  ev.Username,
		FirstName: ev.FirstName,
	}
	// /start ref_<id> is the referral deep link payload.
	if ref, ok := strings.CutPrefix(args, "ref_"); ok && ref != "" {
		p.ReferrerID = ref
	}

	profile, err := r.client.SyncUser(ctx, p)
	if err != nil {
		r.log.Error().Err(err).Int64("tg_id", ev.UserID).Msg("user sync failed")
		return r.SendMessage(ctx, ev.ChatID, "Сервис временно недоступен. Попробуйте позже.")
	}
	return r.SendButtons(ctx, ev.ChatID, welcomeText, mainMenuKeyboard(profile.IsAdmin()))
}

func (r *RealBotAdapter) helpCmdRoute(ctx context.Context, ev model.Event, _ string) error {
	settings, err := r.client.PublicSettings(ctx)
	if err != nil {
		return r.SendButtons(ctx, ev.ChatID, helpView("", ""), backKeyboard())
	}
	return r.SendButtons(ctx, ev.ChatID, helpView(settings.SupportLink, settings.FaqURL), backKeyboard())
}

func (r *RealBotAdapter) adminCmdRoute(ctx context.Context, ev model.Event, _ string) error {
	ok, err := r.isAdmin(ctx, ev.UserID)
	if err != nil {
		return r.SendMessage(ctx, ev.ChatID, "Сервис временно недоступен. Попробуйте позже.")
	}
	if !ok {
		return r.SendMessage(ctx, ev.ChatID, "Команда недоступна.")
	}
	return r.SendButtons(ctx, ev.ChatID, "<b>🛠 Админ-панель</b>", adminMenuKeyboard())
}

// sendMainMenu resolves the admin flag from the backend profile; a fetch
// failure degrades to the plain user menu rather than blocking.
func (r *RealBotAdapter) sendMainMenu(ctx context.Context, ev model.Event, text string) error {
	isAdmin, _ := r.isAdmin(ctx, ev.UserID)
	return r.respond(ctx, ev, text, mainMenuKeyboard(isAdmin))
}

func (r *RealBotAdapter) isAdmin(ctx context.Context, tgID int64) (bool, error) {
	me, err := r.client.Me(ctx, tgID)
	if err != nil {
		return false, err
	}
	return me.IsAdmin(), nil
}
