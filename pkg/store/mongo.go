package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flowpad/flowpad/pkg/diagram"
)

const (
	defaultMongoDatabase   = "flowpad"
	defaultMongoCollection = "diagrams"
)

// mongoDocument wraps a state with its key and bookkeeping fields.
// The diagram.State bson tags define the embedded document shape.
type mongoDocument struct {
	Key       string        `bson:"_id"`
	State     diagram.State `bson:"state"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// MongoStore persists diagrams as documents keyed by _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg Config) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := cfg.MongoDatabase
	if db == "" {
		db = defaultMongoDatabase
	}
	coll := cfg.MongoCollection
	if coll == "" {
		coll = defaultMongoCollection
	}
	return &MongoStore{client: client, coll: client.Database(db).Collection(coll)}, nil
}

func (m *MongoStore) Load(ctx context.Context, key string) (*diagram.State, error) {
	var doc mongoDocument
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	s := diagram.NewState(doc.State.Direction, doc.State.Theme)
	s.Replace(&doc.State)
	return s, nil
}

func (m *MongoStore) Save(ctx context.Context, key string, s *diagram.State) error {
	doc := mongoDocument{Key: key, State: *s.Clone(), UpdatedAt: time.Now().UTC()}
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert: %w", err)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, key string) error {
	if _, err := m.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

func (m *MongoStore) Close() error {
	return m.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
