// Package app owns the process-wide resources: database handles, the socket
// registry and the optional archive. It replaces package-level globals.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/yoockh/coachify/config"
	"github.com/yoockh/coachify/internal/realtime"
	"github.com/yoockh/coachify/internal/storage"
)

type App struct {
	Config *config.Config
	Log    *logrus.Logger

	DB      *gorm.DB
	Mongo   *mongo.Client
	MongoDB *mongo.Database
	Redis   *redis.Client

	Registry *realtime.Registry
	// Archive is nil when no bucket is configured.
	Archive storage.Uploader

	closers []func() error
}

// New connects every backing store and prepares schemas and indexes.
func New(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log, Registry: realtime.NewRegistry()}

	db, err := config.InitPostgres(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	a.DB = db
	a.Track(func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})
	if err := config.MigratePostgres(db); err != nil {
		a.Close()
		return nil, fmt.Errorf("postgres migrate: %w", err)
	}
	log.Info("PostgreSQL connected")

	mc, err := config.InitMongo(ctx, cfg.Mongo)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("mongo: %w", err)
	}
	a.Mongo = mc
	a.MongoDB = mc.Database(cfg.Mongo.Database)
	a.Track(func() error { return mc.Disconnect(context.Background()) })
	if err := config.EnsureMongoIndexes(ctx, a.MongoDB); err != nil {
		a.Close()
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}
	log.Info("MongoDB connected")

	if cfg.Redis.Addr != "" {
		rdb, err := config.InitRedis(ctx, cfg.Redis)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.Redis = rdb
		a.Track(rdb.Close)
		log.Info("Redis connected")
	} else {
		log.Warn("REDIS_ADDR not set; using in-process cache")
	}

	if cfg.Storage.GCSBucket != "" {
		up, err := storage.NewGCSUploader(ctx, cfg.Storage.GCSBucket, cfg.Storage.CredentialsFile)
		if err != nil {
			log.WithError(err).Warn("audio archive disabled")
		} else {
			a.Archive = up
			a.Track(up.Close)
		}
	}

	return a, nil
}

// Track registers a resource to be released by Close.
func (a *App) Track(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close disconnects open sockets, then releases resources in reverse order.
func (a *App) Close() error {
	if a.Registry != nil {
		a.Registry.CloseAll()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
