package notify

import (
	"context"
	"strconv"
	"strings"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/logger"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/metrics"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	resultSent     = "sent"
	resultFailed   = "failed"
	resultRejected = "rejected"
)

// Sender is the part of *tgbotapi.BotAPI used to deliver messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Service struct {
	sender Sender
}

// New returns a notifier. A nil sender is allowed: every notification is then
// rejected, which is how the service runs with the bot disabled.
func New(sender Sender) *Service {
	return &Service{sender: sender}
}

// Notify sends an HTML message to destination, which is either a numeric chat
// id or a Telegram username. It never returns an error; the outcome is logged
// and counted instead.
func (s *Service) Notify(ctx context.Context, destination, message string) bool {
	destination = strings.TrimSpace(destination)
	if destination == "" || strings.TrimSpace(message) == "" {
		logger.Warn("notification rejected: empty destination or message", "destination", destination)
		metrics.RecordNotification(resultRejected)
		return false
	}
	if s.sender == nil {
		logger.Warn("notification rejected: telegram bot is not configured", "destination", destination)
		metrics.RecordNotification(resultRejected)
		return false
	}
	if err := ctx.Err(); err != nil {
		logger.Warn("notification dropped", "destination", destination, "error", err)
		metrics.RecordNotification(resultFailed)
		return false
	}

	msg := newMessage(destination, message)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := s.sender.Send(msg); err != nil {
		logger.Error("failed to send telegram notification", "destination", destination, "error", err)
		metrics.RecordNotification(resultFailed)
		return false
	}

	logger.Debug("telegram notification sent", "destination", destination)
	metrics.RecordNotification(resultSent)
	return true
}

// NotifyUser prefers the chat linked through /start and falls back to the
// user's handle.
func (s *Service) NotifyUser(ctx context.Context, u *models.User, message string) bool {
	if u == nil {
		metrics.RecordNotification(resultRejected)
		return false
	}
	if u.ChatID != nil {
		return s.Notify(ctx, strconv.FormatInt(*u.ChatID, 10), message)
	}
	return s.Notify(ctx, u.TelegramName, message)
}

func newMessage(destination, text string) tgbotapi.MessageConfig {
	if chatID, err := strconv.ParseInt(destination, 10, 64); err == nil {
		return tgbotapi.NewMessage(chatID, text)
	}
	if !strings.HasPrefix(destination, "@") {
		destination = "@" + destination
	}
	return tgbotapi.NewMessageToChannel(destination, text)
}
