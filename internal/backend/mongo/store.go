// Package mongo is a MongoDB record store for published agents. Each table
// maps to a collection of the same name.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/youruser/soulcard/internal/agent"
	"github.com/youruser/soulcard/internal/publish"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

// Open connects to uri and pings the primary.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Store{client: client, db: client.Database(database), now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// Insert stores rec under a fresh ObjectID hex string.
func (s *Store) Insert(ctx context.Context, table string, rec agent.Record) (agent.Record, error) {
	rec.ID = primitive.NewObjectID().Hex()
	rec.CreatedAt = s.now().UTC().Truncate(time.Millisecond)
	if _, err := s.db.Collection(table).InsertOne(ctx, rec); err != nil {
		return agent.Record{}, fmt.Errorf("insert agent: %w", err)
	}
	return rec, nil
}

// List returns documents newest first.
func (s *Store) List(ctx context.Context, table string, opts agent.ListOptions) ([]agent.Record, error) {
	find := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if opts.Limit > 0 {
		find.SetLimit(int64(opts.Limit))
	}
	cur, err := s.db.Collection(table).Find(ctx, bson.D{}, find)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	out := []agent.Record{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode agents: %w", err)
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, table, id string) (agent.Record, error) {
	var rec agent.Record
	err := s.db.Collection(table).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return agent.Record{}, fmt.Errorf("%w: %s", agent.ErrNotFound, id)
	}
	if err != nil {
		return agent.Record{}, fmt.Errorf("get agent: %w", err)
	}
	return rec, nil
}

var _ publish.RecordStore = (*Store)(nil)
