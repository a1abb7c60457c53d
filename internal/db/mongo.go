package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

// MongoDB wraps a connected client and the application database.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	// Transactions is true when the deployment is a replica set or sharded cluster.
	Transactions bool
}

// NewMongoDB connects to uri, pings the primary and checks for transaction support.
func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	m := &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
	}
	m.Transactions = supportsTransactions(ctx, client)
	logger.Info().Str("database", dbName).Bool("transactions", m.Transactions).Msg("Connected to MongoDB")
	return m, nil
}

func supportsTransactions(ctx context.Context, client *mongo.Client) bool {
	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}
	err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello)
	if err != nil {
		logger.Warn().Err(err).Msg("Could not determine mongo topology, assuming standalone")
		return false
	}
	return hello.SetName != "" || hello.Msg == "isdbgrid"
}

// Close disconnects the client.
func (m *MongoDB) Close() {
	if m.Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.Client.Disconnect(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
	}
}

// WithTransaction runs fn inside a multi-document transaction.
func (m *MongoDB) WithTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := m.Client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
