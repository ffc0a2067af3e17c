package configs

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-seller-ms/app/models/migrations"
	"github.com/Rakhulsr/go-seller-ms/app/repositories"
	"github.com/Rakhulsr/go-seller-ms/app/repositories/memstore"
	"github.com/Rakhulsr/go-seller-ms/app/repositories/mongostore"
	"github.com/sirupsen/logrus"
)

// OpenStore opens the backend selected by STORE_DRIVER. The returned close
// func releases its connections.
func OpenStore(ctx context.Context, cfg ENV, log *logrus.Logger) (*repositories.Store, func() error, error) {
	switch cfg.StoreDriver {
	case StoreMemory:
		log.Warn("using in-memory store; data is lost on exit")
		return memstore.New(), func() error { return nil }, nil

	case StoreMongo:
		client, err := OpenMongo(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		closeFn := func() error { return client.Disconnect(context.Background()) }
		return mongostore.New(db), closeFn, nil

	default:
		db, err := OpenConnection(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewGormStore(db), sqlDB.Close, nil
	}
}

// Migrate prepares the schema (SQL) or indexes (Mongo) of the configured backend.
func Migrate(ctx context.Context, cfg ENV, log *logrus.Logger) error {
	switch cfg.StoreDriver {
	case StoreMemory:
		return nil

	case StoreMongo:
		client, err := OpenMongo(cfg, log)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())
		if err := mongostore.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase)); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}

	default:
		db, err := OpenConnection(cfg, log)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		if err := migrations.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}
	log.WithField("driver", cfg.StoreDriver).Info("migration finished")
	return nil
}
