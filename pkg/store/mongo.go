package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/kinship/pkg/graph"
)

// Default MongoDB names.
const (
	DefaultDatabase   = "kinship"
	DefaultCollection = "layouts"
)

// MongoConfig selects a MongoDB deployment.
type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// MongoStore is a Store backed by a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// NewMongoStore connects to cfg.URI, pings the server and makes sure the
// root index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo: no uri")
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI).SetServerSelectionTimeout(10*time.Second))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
		now:    time.Now,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "root", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("root_created"),
	})
	if err != nil {
		return fmt.Errorf("mongo index: %w", err)
	}
	return nil
}

// Save implements [Store]. Saving a layout with an existing id replaces it.
func (s *MongoStore) Save(ctx context.Context, l *graph.Layout) (string, error) {
	if err := prepare(l, s.now()); err != nil {
		return "", err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": l.ID}, l, options.Replace().SetUpsert(true))
	if err != nil {
		return "", fmt.Errorf("save layout %s: %w", l.ID, err)
	}
	return l.ID, nil
}

// Get implements [Store].
func (s *MongoStore) Get(ctx context.Context, id string) (*graph.Layout, error) {
	var l graph.Layout
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get layout %s: %w", id, err)
	}
	return &l, nil
}

// summaryDoc is the projection List reads.
type summaryDoc struct {
	Summary `bson:",inline"`
	NodeIDs []struct {
		ID string `bson:"id"`
	} `bson:"nodes"`
}

// List implements [Store].
func (s *MongoStore) List(ctx context.Context, root string, limit int) ([]Summary, error) {
	filter := bson.M{}
	if root != "" {
		filter["root"] = root
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(normalizeLimit(limit))).
		SetProjection(bson.M{"_id": 1, "root": 1, "language": 1, "input_hash": 1, "created_at": 1, "nodes.id": 1})

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer cur.Close(ctx)

	var out []Summary
	for cur.Next(ctx) {
		var doc summaryDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode layout summary: %w", err)
		}
		doc.Summary.Nodes = len(doc.NodeIDs)
		out = append(out, doc.Summary)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	return out, nil
}

// Delete implements [Store].
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete layout %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close implements [Store].
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
