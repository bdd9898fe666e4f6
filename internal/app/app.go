// Package app assembles the service: storage, HTTP API and the Telegram bot,
// with their start and stop hooks.
package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/bot"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/config"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/db"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/logger"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/notify"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/server"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/store"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/training"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/user"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Options(
	fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
		// constructors are not called when the graph is only validated
		if l == nil {
			return fxevent.NopLogger
		}
		return &fxevent.ZapLogger{Logger: l}
	}),
	fx.Provide(
		config.Load,
		newLogger,
		newDatabase,
		newGorm,
		newRedis,
		newBotAPI,
		newSender,

		newUserStore,
		newTrainingStore,
		user.NewRepository,
		newUserService,
		user.NewHandler,

		training.NewRepository,
		training.NewScheduleRepository,
		notify.New,
		newTrainingService,
		training.NewHandler,

		newServer,
		newOffsetStore,
	),
	fx.Invoke(registerServer, registerBot),
)

func newLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	l, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.Set(l)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// stdout and stderr return EINVAL on sync when they are not files
			_ = logger.Sync()
			return nil
		},
	})
	return l, nil
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config) (*sqlx.DB, error) {
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		database.Close()
		return nil, err
	}
	logger.Info("database ready", "migrations", cfg.MigrationsPath)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return database.Close()
		},
	})
	return database, nil
}

func newGorm(database *sqlx.DB, cfg *config.Config) (*gorm.DB, error) {
	return db.OpenGorm(database, cfg.LogLevel)
}

func newRedis(lc fx.Lifecycle, cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client
}

// newBotAPI returns nil when the bot is disabled.
func newBotAPI(cfg *config.Config) (*tgbotapi.BotAPI, error) {
	if !cfg.Bot.Enabled {
		return nil, nil
	}
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, err
	}
	api.Debug = cfg.Bot.Debug
	logger.Info("telegram bot authorized", "username", api.Self.UserName)
	return api, nil
}

func newSender(api *tgbotapi.BotAPI) notify.Sender {
	if api == nil {
		return nil
	}
	return api
}

func newUserStore(g *gorm.DB) store.Store[models.User] {
	return store.New[models.User](g, "full_name")
}

func newTrainingStore(g *gorm.DB) store.Store[models.Training] {
	return store.New[models.Training](g, "date")
}

func newUserService(repo user.Repository, cfg *config.Config) user.Service {
	if cfg.APIKeyHash == "" {
		logger.Warn("API_KEY_HASH is empty, token issuing is disabled; generate one with cmd/hashkey")
	}
	return user.NewService(repo, cfg.JWTSecret, cfg.APIKeyHash)
}

func newTrainingService(repo training.Repository, users user.Repository, schedule training.ScheduleReader, notifier *notify.Service) training.Service {
	return training.NewService(repo, users, schedule, notifier)
}

func newServer(cfg *config.Config, database *sqlx.DB, users *user.Handler, trainings *training.Handler) *server.Server {
	return server.New(cfg, database, users, trainings)
}

func newOffsetStore(client *redis.Client) bot.OffsetStore {
	return bot.NewRedisOffsetStore(client)
}

func registerServer(lc fx.Lifecycle, sd fx.Shutdowner, srv *server.Server, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				logger.Infof("HTTP server listening on :%s", cfg.Port)
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.WithError(err).Error("HTTP server failed")
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("HTTP server stopping")
			return srv.Shutdown(ctx)
		},
	})
}

func registerBot(lc fx.Lifecycle, sd fx.Shutdowner, cfg *config.Config, api *tgbotapi.BotAPI, users user.Repository, offsets bot.OffsetStore) {
	if api == nil {
		logger.Info("telegram bot disabled")
		return
	}

	poller := bot.NewPoller(api, bot.NewRouter(api, users), offsets, cfg.Bot.PollTimeout)

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				if err := poller.Run(runCtx); err != nil {
					logger.WithError(err).Error("telegram bot stopped")
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			// an in-flight long poll only returns after its timeout
			select {
			case <-done:
			case <-ctx.Done():
				logger.Warn("telegram bot did not stop in time")
			}
			return nil
		},
	})
}
