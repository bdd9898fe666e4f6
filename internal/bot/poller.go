package bot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/logger"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/metrics"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UpdatesFetcher is the part of *tgbotapi.BotAPI used for long polling.
type UpdatesFetcher interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

type Handler interface {
	Handle(ctx context.Context, update tgbotapi.Update)
}

type Poller struct {
	api     UpdatesFetcher
	handler Handler
	offsets OffsetStore
	timeout int

	newBackOff func() backoff.BackOff
}

// NewPoller builds a long-polling loop. timeout is the getUpdates long poll in
// seconds.
func NewPoller(api UpdatesFetcher, handler Handler, offsets OffsetStore, timeout int) *Poller {
	return &Poller{
		api:        api,
		handler:    handler,
		offsets:    offsets,
		timeout:    timeout,
		newBackOff: defaultBackOff,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = time.Minute
	b.MaxElapsedTime = 0
	return b
}

// Run polls until ctx is cancelled. Transient failures are retried with
// exponential backoff; a rejected token or an unknown bot ends the loop with
// an error.
func (p *Poller) Run(ctx context.Context) error {
	offset, err := p.offsets.Load(ctx)
	if err != nil {
		logger.Warn("starting bot from the latest update", "error", err)
		offset = 0
	}

	logger.Info("bot poller started", "offset", offset, "timeout", p.timeout)
	defer logger.Info("bot poller stopped")

	for {
		if ctx.Err() != nil {
			return nil
		}

		updates, err := p.poll(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		for _, update := range updates {
			if ctx.Err() != nil {
				return nil
			}
			logger.Debugf("bot update %d received", update.UpdateID)
			p.handler.Handle(ctx, update)

			offset = update.UpdateID + 1
			if err := p.offsets.Save(ctx, offset); err != nil {
				logger.Warn("bot offset not persisted", "offset", offset, "error", err)
			}
		}
	}
}

func (p *Poller) poll(ctx context.Context, offset int) ([]tgbotapi.Update, error) {
	cfg := tgbotapi.NewUpdate(offset)
	cfg.Timeout = p.timeout

	var updates []tgbotapi.Update
	op := func() error {
		got, err := p.api.GetUpdates(cfg)
		if err != nil {
			if isFatal(err) {
				return backoff.Permanent(err)
			}
			metrics.RecordBotPollError()
			logger.Warn("telegram getUpdates failed, retrying", "error", err)
			return err
		}
		updates = got
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(p.newBackOff(), ctx)); err != nil {
		return nil, fmt.Errorf("poll telegram updates: %w", err)
	}
	return updates, nil
}

// isFatal reports whether Telegram rejected the bot itself, in which case
// retrying cannot help.
func isFatal(err error) bool {
	var code int

	var ptr *tgbotapi.Error
	var val tgbotapi.Error
	switch {
	case errors.As(err, &ptr):
		code = ptr.Code
	case errors.As(err, &val):
		code = val.Code
	default:
		return false
	}
	return code == http.StatusUnauthorized || code == http.StatusNotFound
}
