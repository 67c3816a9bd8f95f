package app

import (
	"context"
	"errors"
	"fmt"

	"uptime-monitor/config"
	middle "uptime-monitor/internals/middleware"
	"uptime-monitor/internals/modules/alert"
	"uptime-monitor/internals/modules/check"
	"uptime-monitor/internals/modules/executor"
	"uptime-monitor/internals/modules/result"
	"uptime-monitor/internals/modules/rotation"
	"uptime-monitor/internals/modules/scheduler"
	"uptime-monitor/internals/modules/token"
	"uptime-monitor/internals/modules/user"
	"uptime-monitor/internals/security"
	"uptime-monitor/internals/store"
	"uptime-monitor/pkg/checklog"
	"uptime-monitor/pkg/db"
	"uptime-monitor/pkg/filestore"
	"uptime-monitor/pkg/rabbitmq"
	"uptime-monitor/pkg/redisstore"
	"uptime-monitor/pkg/sms"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

type Container struct {
	Logger    *zerolog.Logger
	Records   store.Store
	Logs      *checklog.Store
	Scheduler *scheduler.Scheduler
	Rotator   *rotation.Rotator
	AlertSvc  *alert.Service

	userHandler  *user.Handler
	tokenHandler *token.Handler
	checkHandler *check.Handler
	authMW       *middle.AuthMiddleware

	// infra, closed on shutdown
	redisClient *redisstore.Client
	dbPool      *pgxpool.Pool
	amqpConn    *amqp091.Connection
	publisher   *rabbitmq.Publisher
}

func NewContainer(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Container, error) {
	c := &Container{Logger: logger}
	fs := afero.NewOsFs()

	records, err := c.openStore(ctx, cfg, fs)
	if err != nil {
		c.Shutdown()
		return nil, err
	}
	c.Records = records

	logs, err := checklog.New(fs, cfg.Log.Dir)
	if err != nil {
		c.Shutdown()
		return nil, fmt.Errorf("open check logs: %w", err)
	}
	c.Logs = logs

	sender, err := c.openSender(cfg)
	if err != nil {
		c.Shutdown()
		return nil, err
	}

	guard, err := c.openGuard(ctx, cfg)
	if err != nil {
		c.Shutdown()
		return nil, err
	}

	// monitoring core
	checkRepo := check.NewRepository(records)
	c.AlertSvc = alert.NewService(sender, cfg.Alert.WorkerCount, cfg.Alert.QueueSize, logger)
	processor := result.NewProcessor(checkRepo, logs, c.AlertSvc, logger)
	exec := executor.NewExecutor(cfg.Executor.MaxConcurrent, processor, logger)
	c.Scheduler = scheduler.NewScheduler(ctx, &cfg.Scheduler, checkRepo, guard, exec, logger)
	c.Rotator = rotation.NewRotator(ctx, &cfg.Rotation, logs, logger)

	// CRUD api
	validate := validator.New(validator.WithRequiredStructEnabled())
	tokenizer := security.NewTokenService(&cfg.Auth)

	userSvc := user.NewService(user.NewRepository(records), checkRepo, logger)
	tokenSvc := token.NewService(token.NewRepository(records), userSvc, tokenizer)
	checkSvc := check.NewService(checkRepo, userSvc, cfg.Checks.MaxPerUser, logger)

	c.userHandler = user.NewHandler(userSvc, validate)
	c.tokenHandler = token.NewHandler(tokenSvc, validate)
	c.checkHandler = check.NewHandler(checkSvc, validate)
	c.authMW = middle.NewAuthMiddleware(tokenSvc)

	return c, nil
}

func (c *Container) openStore(ctx context.Context, cfg *config.Config, fs afero.Fs) (store.Store, error) {
	switch cfg.Store.Driver {
	case "redis":
		client, err := c.redis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis record store")
		return client, nil

	case "postgres":
		pool, err := db.ConnectToDB(ctx, &cfg.DB, c.Logger)
		if err != nil {
			return nil, err
		}
		c.dbPool = pool
		rs := db.NewRecordStore(pool, c.Logger)
		if err := rs.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate records table: %w", err)
		}
		c.Logger.Info().Msg("using postgres record store")
		return rs, nil

	default:
		fsStore, err := filestore.New(fs, cfg.Store.Dir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		c.Logger.Info().Str("dir", cfg.Store.Dir).Msg("using file record store")
		return fsStore, nil
	}
}

func (c *Container) openSender(cfg *config.Config) (alert.Sender, error) {
	switch cfg.Alert.Driver {
	case "sms":
		return sms.NewClient(&cfg.Twilio), nil

	case "rabbitmq":
		conn, err := rabbitmq.NewConnection(&cfg.RabbitMQ, c.Logger)
		if err != nil {
			return nil, err
		}
		c.amqpConn = conn
		if err := rabbitmq.SetupTopology(conn, &cfg.RabbitMQ); err != nil {
			return nil, fmt.Errorf("rabbitmq topology: %w", err)
		}
		pub, err := rabbitmq.NewPublisher(conn, cfg.RabbitMQ.ExchangeName, cfg.RabbitMQ.RoutingKey)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq publisher: %w", err)
		}
		c.publisher = pub
		return pub, nil

	default:
		return alert.NewLogSender(c.Logger), nil
	}
}

func (c *Container) openGuard(ctx context.Context, cfg *config.Config) (scheduler.Guard, error) {
	if cfg.Inflight.Driver != "redis" {
		return scheduler.NewLocalGuard(), nil
	}
	client, err := c.redis(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return redisstore.NewInflightGuard(client, cfg.Inflight.TTL), nil
}

// redis connects once and is shared by the record store and the guard.
func (c *Container) redis(ctx context.Context, cfg *config.Config) (*redisstore.Client, error) {
	if c.redisClient != nil {
		return c.redisClient, nil
	}
	client, err := redisstore.New(ctx, &cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	c.redisClient = client
	return client, nil
}

// Shutdown releases infrastructure. Background loops must be stopped first.
func (c *Container) Shutdown() error {
	var errs []error

	if c.publisher != nil {
		errs = append(errs, c.publisher.Close())
	}
	if c.amqpConn != nil {
		errs = append(errs, c.amqpConn.Close())
	}
	if c.redisClient != nil {
		errs = append(errs, c.redisClient.Close())
	}
	if c.dbPool != nil {
		c.dbPool.Close()
	}
	return errors.Join(errs...)
}
