package drafts

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meridian/starchart/pkg/galaxy"
)

const (
	defaultDatabase   = "starchart"
	defaultCollection = "drafts"
)

// MongoStore persists drafts in a MongoDB collection so every console
// replica sees the same set.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = defaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = defaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Create(ctx context.Context, name string, cfg galaxy.GenerationConfig) (*Draft, error) {
	draft, err := newDraft(name, cfg)
	if err != nil {
		return nil, err
	}
	if _, err := s.coll.InsertOne(ctx, draft); err != nil {
		return nil, fmt.Errorf("insert draft: %w", err)
	}
	return draft, nil
}

func (s *MongoStore) Get(ctx context.Context, id uuid.UUID) (*Draft, error) {
	var d Draft
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find draft: %w", err)
	}
	return &d, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Draft, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer cursor.Close(ctx)

	var drafts []Draft
	if err := cursor.All(ctx, &drafts); err != nil {
		return nil, fmt.Errorf("decode drafts: %w", err)
	}
	return drafts, nil
}

func (s *MongoStore) Update(ctx context.Context, id uuid.UUID, cfg galaxy.GenerationConfig) (*Draft, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := prepareConfig(current.Name, &cfg); err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"config":     cfg,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d Draft
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&d)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("update draft: %w", err)
	}
	return &d, nil
}

func (s *MongoStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
