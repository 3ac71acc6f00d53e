// Package mongo implements the blob store on a MongoDB collection. One
// document per key holds the value and a version counter; updates filter on
// the expected version and inserts rely on the unique _id.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Anusha-2024/Mini-Journal/internal/config"
	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

type blobDoc struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	Version   int64     `bson:"version"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Store is a MongoDB-backed blob store.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open connects using cfg.URI and pings the primary.
func Open(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Read returns the blob under key, or domain.ErrNotFound.
func (s *Store) Read(ctx context.Context, key string) (domain.Blob, error) {
	var doc blobDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		return domain.Blob{}, mapError(err, key)
	}
	return domain.Blob{Value: doc.Value, ETag: strconv.FormatInt(doc.Version, 10)}, nil
}

// Write inserts (expected == "") or replaces the document whose version
// equals expected.
func (s *Store) Write(ctx context.Context, key string, value []byte, expected string) (string, error) {
	now := time.Now().UTC()

	if expected == "" {
		_, err := s.coll.InsertOne(ctx, blobDoc{Key: key, Value: value, Version: 1, UpdatedAt: now})
		if err != nil {
			return "", mapError(err, key)
		}
		return "1", nil
	}

	version, err := strconv.ParseInt(expected, 10, 64)
	if err != nil {
		return "", fmt.Errorf("key %q: etag %q: %w", key, expected, domain.ErrConflict)
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": key, "version": version},
		bson.M{"$set": bson.M{"value": value, "version": version + 1, "updatedAt": now}},
	)
	if err != nil {
		return "", mapError(err, key)
	}
	if res.MatchedCount == 0 {
		return "", fmt.Errorf("key %q: %w", key, domain.ErrConflict)
	}
	return strconv.FormatInt(version+1, 10), nil
}

// Ping checks the primary.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func mapError(err error, key string) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("key %q: %w", key, domain.ErrConflict)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("key %q: %w", key, err)
	}
	return fmt.Errorf("mongo: key %q: %w", key, err)
}
