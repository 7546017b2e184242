package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/regform/modules/registration"
	"github.com/dmitrymomot/regform/modules/registration/migrations"
	"github.com/dmitrymomot/regform/pkg/blob"
	"github.com/dmitrymomot/regform/pkg/config"
	"github.com/dmitrymomot/regform/pkg/email"
	"github.com/dmitrymomot/regform/pkg/httpserver"
	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/mongo"
	"github.com/dmitrymomot/regform/pkg/pg"
	"github.com/dmitrymomot/regform/pkg/redis"
)

// backend is an opened storage driver. checks holds the readiness probes
// of its connections, close releases them.
type backend struct {
	storage registration.Storage
	checks  map[string]httpserver.Check
	close   func(ctx context.Context)
}

func noClose(context.Context) {}

// openBackend connects the driver selected by cfg.Driver. Driver settings
// are loaded only for the selected driver.
func openBackend(ctx context.Context, cfg registration.Config, log *slog.Logger) (*backend, error) {
	log = log.With(logger.Storage(cfg.Driver))

	switch cfg.Driver {
	case registration.DriverMemory:
		return &backend{storage: registration.NewMemoryStorage(), close: noClose}, nil

	case registration.DriverFile:
		store, err := blob.NewLocal(cfg.FileDir)
		if err != nil {
			return nil, err
		}
		return &backend{
			storage: registration.NewBlobStorage(store, cfg.KeyPrefix),
			checks:  map[string]httpserver.Check{"file": store.Ping},
			close:   noClose,
		}, nil

	case registration.DriverS3:
		var s3Cfg blob.S3Config
		if err := config.Load(&s3Cfg); err != nil {
			return nil, err
		}
		store, err := blob.NewS3(ctx, s3Cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			storage: registration.NewBlobStorage(store, cfg.KeyPrefix),
			checks:  map[string]httpserver.Check{"s3": store.Ping},
			close:   noClose,
		}, nil

	case registration.DriverRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, redisCfg, log)
		if err != nil {
			return nil, err
		}
		return &backend{
			storage: registration.NewRedisStorage(client, cfg.KeyPrefix),
			checks:  map[string]httpserver.Check{"redis": redis.Healthcheck(client)},
			close: func(ctx context.Context) {
				if err := client.Close(); err != nil {
					log.ErrorContext(ctx, "failed to close redis client", logger.Error(err))
				}
			},
		}, nil

	case registration.DriverPostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, pgCfg, log)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx, pool, pgCfg, migrations.FS, log); err != nil {
			pool.Close()
			return nil, err
		}
		return &backend{
			storage: registration.NewPostgresStorage(pool),
			checks:  map[string]httpserver.Check{"postgres": pg.Healthcheck(pool)},
			close:   func(context.Context) { pool.Close() },
		}, nil

	case registration.DriverMongo:
		var mongoCfg mongo.Config
		if err := config.Load(&mongoCfg); err != nil {
			return nil, err
		}
		db, err := mongo.Database(ctx, mongoCfg, log)
		if err != nil {
			return nil, err
		}
		client := db.Client()
		return &backend{
			storage: registration.NewMongoStorage(db.Collection(cfg.MongoCollection)),
			checks:  map[string]httpserver.Check{"mongo": mongo.Healthcheck(client)},
			close: func(ctx context.Context) {
				if err := client.Disconnect(ctx); err != nil {
					log.ErrorContext(ctx, "failed to disconnect mongo client", logger.Error(err))
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", registration.ErrUnknownDriver, cfg.Driver)
}

// newNotifier returns the confirmation notifier. Without a Postmark token
// mails are written to disk instead of sent.
func newNotifier(cfg registration.Config, log *slog.Logger) (registration.Notifier, error) {
	if !cfg.SendConfirmation {
		return registration.NoopNotifier{}, nil
	}

	var mailCfg email.Config
	if err := config.Load(&mailCfg); err != nil {
		return nil, err
	}

	var sender email.Sender = email.NewDevSender(mailCfg.DevOutputDir)
	if mailCfg.PostmarkServerToken != "" {
		s, err := email.NewPostmarkSender(mailCfg)
		if err != nil {
			return nil, err
		}
		sender = s
	}
	return registration.NewEmailNotifier(sender, log), nil
}
