// Package mongodb implements kvstorage.KVStore on a MongoDB collection.
// Each key is one document: {_id: key, value: <blob>, updated_at: time}.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"menukeeper/internal/kvstorage"
)

type record struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store implements kvstorage.KVStore against one collection.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ kvstorage.KVStore = (*Store)(nil)

// Connect dials uri, verifies the connection and returns a Store for
// database.table.
func Connect(ctx context.Context, uri, database, table string) (*Store, error) {
	if err := kvstorage.ValidateTableName(table); err != nil {
		return nil, err
	}
	if database == "" {
		return nil, fmt.Errorf("mongodb database name cannot be empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{
		client:     client,
		collection: client.Database(database).Collection(table),
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Set stores a value for the given key.
func (s *Store) Set(ctx context.Context, key string, value []byte, opts kvstorage.SetOptions) error {
	if err := kvstorage.ValidateKey(key); err != nil {
		return err
	}
	doc := record{Key: key, Value: value, UpdatedAt: time.Now().UTC()}

	if opts.FailIfExists {
		if _, err := s.collection.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("key %q: %w", key, kvstorage.ErrAlreadyExists)
			}
			return fmt.Errorf("insert key %q: %w", key, err)
		}
		return nil
	}

	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert key %q: %w", key, err)
	}
	return nil
}

// Get retrieves the value for the given key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := kvstorage.ValidateKey(key); err != nil {
		return nil, err
	}
	var doc record
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("key %q: %w", key, kvstorage.ErrKeyNotFound)
		}
		return nil, fmt.Errorf("find key %q: %w", key, err)
	}
	return doc.Value, nil
}

// Update replaces the value for an existing key.
func (s *Store) Update(ctx context.Context, key string, value []byte) error {
	if err := kvstorage.ValidateKey(key); err != nil {
		return err
	}
	doc := record{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	res, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc)
	if err != nil {
		return fmt.Errorf("replace key %q: %w", key, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("key %q: %w", key, kvstorage.ErrKeyNotFound)
	}
	return nil
}

// Delete removes a key and its value.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := kvstorage.ValidateKey(key); err != nil {
		return err
	}
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return fmt.Errorf("delete key %q: %w", key, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("key %q: %w", key, kvstorage.ErrKeyNotFound)
	}
	return nil
}

// List returns all keys in the collection, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	cur, err := s.collection.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer cur.Close(ctx)

	var keys []string
	for cur.Next(ctx) {
		var doc struct {
			Key string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode key: %w", err)
		}
		keys = append(keys, doc.Key)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}
