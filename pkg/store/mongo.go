package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures the MongoDB snapshot store.
type MongoConfig struct {
	URI        string
	Database   string // defaults to "artistnode"
	Collection string // defaults to "snapshots"
}

// MongoStore keeps snapshots in a MongoDB collection, one document per site
// key. Suited to deployments that already run MongoDB for durable storage.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoSnapshot is the stored document shape. The site key doubles as the
// document ID so Put is a natural upsert.
type mongoSnapshot struct {
	Key       string    `bson:"_id"`
	Document  []byte    `bson:"document"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	database := cfg.Database
	if database == "" {
		database = "artistnode"
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "snapshots"
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, key string) (*Snapshot, error) {
	var doc mongoSnapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find snapshot: %w", err)
	}
	return &Snapshot{Key: doc.Key, Document: doc.Document, UpdatedAt: doc.UpdatedAt}, nil
}

func (s *MongoStore) Put(ctx context.Context, snap *Snapshot) error {
	if snap.Key == "" {
		return ErrEmptyKey
	}
	doc := mongoSnapshot{Key: snap.Key, Document: snap.Document, UpdatedAt: snap.UpdatedAt}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": snap.Key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

func (s *MongoStore) Keys(ctx context.Context) ([]string, error) {
	raw, err := s.coll.Distinct(ctx, "_id", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for _, v := range raw {
		if key, ok := v.(string); ok {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
