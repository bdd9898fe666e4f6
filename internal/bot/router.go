package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/apperr"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/logger"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/metrics"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = "MarineFit bot commands:\n" +
	"/start - link this chat to your MarineFit account\n" +
	"/help - show this message\n\n" +
	"Training decisions are delivered here once your chat is linked."

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// ChatLinker binds a Telegram chat to the user registered under a handle.
type ChatLinker interface {
	LinkChat(ctx context.Context, telegramName string, chatID int64) (*models.User, error)
}

type command func(ctx context.Context, msg *tgbotapi.Message) string

// Router dispatches incoming messages by command and answers in the same chat.
type Router struct {
	sender   Sender
	users    ChatLinker
	commands map[string]command
}

func NewRouter(sender Sender, users ChatLinker) *Router {
	r := &Router{
		sender: sender,
		users:  users,
	}
	r.commands = map[string]command{
		"start": r.start,
		"help":  r.help,
	}
	return r
}

func (r *Router) Handle(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		metrics.RecordBotUpdate("ignored")
		return
	}

	name := msg.Command()
	cmd, ok := r.commands[name]
	if !ok {
		metrics.RecordBotUpdate("unknown")
		r.reply(msg.Chat.ID, helpText)
		return
	}

	metrics.RecordBotUpdate(name)
	r.reply(msg.Chat.ID, cmd(ctx, msg))
}

func (r *Router) start(ctx context.Context, msg *tgbotapi.Message) string {
	if msg.From == nil || msg.From.UserName == "" {
		return "Please set a Telegram username in your profile settings and send /start again."
	}

	u, err := r.users.LinkChat(ctx, msg.From.UserName, msg.Chat.ID)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return fmt.Sprintf("@%s is not registered yet. Ask your coach to add you, then send /start again.", msg.From.UserName)
	case err != nil:
		logger.WithFields(map[string]interface{}{
			"telegram_name": msg.From.UserName,
			"chat_id":       msg.Chat.ID,
		}).Errorw("failed to link telegram chat", "error", err)
		return "Something went wrong, please try again later."
	}

	return fmt.Sprintf("Hi, %s! This chat is now linked to your account. Training decisions will arrive here.", u.FullName)
}

func (r *Router) help(context.Context, *tgbotapi.Message) string {
	return helpText
}

func (r *Router) reply(chatID int64, text string) {
	if _, err := r.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.Error("failed to reply to telegram message", "chat_id", chatID, "error", err)
	}
}
