package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the unique username index on each principal
// collection. The index is the authority on duplicate usernames: the
// service-level existence check cannot close the race window between its
// lookup and the insert.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	usernameIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, coll := range []string{authorsCollection, readersCollection, adminsCollection} {
		if _, err := db.Collection(coll).Indexes().CreateOne(ctx, usernameIndex); err != nil {
			return fmt.Errorf("create username index on %s: %w", coll, err)
		}
	}

	authorIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "author_id", Value: 1}},
	}
	if _, err := db.Collection(booksCollection).Indexes().CreateOne(ctx, authorIndex); err != nil {
		return fmt.Errorf("create author index on %s: %w", booksCollection, err)
	}

	return nil
}
