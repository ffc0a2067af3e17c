package configs

import (
	"context"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-seller-ms/app/repositories/mongostore"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OpenMongo connects with the decimal-aware registry and verifies the
// connection with a ping.
func OpenMongo(cfg ENV, log logrus.FieldLogger) (*mongo.Client, error) {
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is empty")
	}

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).
		SetRegistry(mongostore.Registry()).
		SetMaxPoolSize(50).
		SetMinPoolSize(10).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	ctxPing, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelPing()

	if err := client.Ping(ctxPing, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.WithField("database", cfg.MongoDatabase).Info("connected to MongoDB")
	return client, nil
}
