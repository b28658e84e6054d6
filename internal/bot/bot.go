package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ordercrm/internal/model"
	"ordercrm/internal/service"
)

// Bot is the chat entry point: it hands users a deep link into the web
// app with their identity embedded. All real interaction happens in
// the web app; the bot only issues the link.
type Bot struct {
	api       *tgbotapi.BotAPI
	dir       *service.Directory
	webAppURL string
}

func New(token, webAppURL string, dir *service.Directory) (*Bot, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is not set")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}

	return &Bot{
		api:       api,
		dir:       dir,
		webAppURL: webAppURL,
	}, nil
}

// DeepLink builds the web-app URL carrying the caller's identity as
// the uid query parameter.
func DeepLink(base, uid string) string {
	return strings.TrimRight(base, "/") + "/?uid=" + url.QueryEscape(uid)
}

// Run polls for updates until ctx is cancelled. Only /start is
// recognized; every other command draws a generic reply.
func (b *Bot) Run(ctx context.Context) {
	slog.Info("bot started", "username", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		msg := update.Message
		if msg == nil || msg.From == nil || !msg.IsCommand() {
			continue
		}

		switch msg.Command() {
		case "start":
			b.handleStart(msg)
		default:
			b.reply(msg.Chat.ID, "Unknown command. Use /start.")
		}
	}

	slog.Info("bot stopped")
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	uid := strconv.FormatInt(msg.From.ID, 10)
	role := b.dir.RoleFor(uid)

	text := "Welcome to the order CRM. Open the app with the button below."
	if role == model.RoleNone {
		text += "\n\nYou have no role assigned yet. Contact an administrator."
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Open CRM", DeepLink(b.webAppURL, uid)),
		),
	)

	if _, err := b.api.Send(reply); err != nil {
		slog.Error("failed to send start reply", "chat_id", msg.Chat.ID, "error", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.Error("failed to send reply", "chat_id", chatID, "error", err)
	}
}
