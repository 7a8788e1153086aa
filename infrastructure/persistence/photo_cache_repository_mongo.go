package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flickr-embed/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const photoCacheCollection = "flickr_photo_cache"

type photoCacheDocument struct {
	Key       string    `bson:"_id"`
	Data      []byte    `bson:"data"`
	ExpiresAt time.Time `bson:"expires_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// PhotoCacheRepositoryMongo stores metadata in a collection with a TTL index
// on expires_at. Mongo's TTL monitor runs about once a minute, so reads also
// check the expiry.
type PhotoCacheRepositoryMongo struct {
	client     *mongo.Client
	collection *mongo.Collection
	now        func() time.Time
}

func NewPhotoCacheRepositoryMongo(client *mongo.Client, database string) *PhotoCacheRepositoryMongo {
	return &PhotoCacheRepositoryMongo{
		client:     client,
		collection: client.Database(database).Collection(photoCacheCollection),
		now:        time.Now,
	}
}

// EnsurePhotoCacheIndexes creates the TTL index that expires documents at
// their expires_at time.
func (r *PhotoCacheRepositoryMongo) EnsurePhotoCacheIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetName("idx_flickr_photo_cache_expires_at").SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("create flickr_photo_cache ttl index: %w", err)
	}
	return nil
}

func (r *PhotoCacheRepositoryMongo) Get(ctx context.Context, key string) ([]byte, error) {
	var doc photoCacheDocument
	if err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return r.fromDocument(doc), nil
}

func (r *PhotoCacheRepositoryMongo) Set(ctx context.Context, key string, value []byte, expiry model.Expiry) error {
	doc, ok := r.toDocument(key, value, expiry)
	if !ok {
		return model.ErrEntryExpired
	}
	_, err := r.collection.ReplaceOne(ctx, bson.D{{Key: "_id", Value: key}}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *PhotoCacheRepositoryMongo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *PhotoCacheRepositoryMongo) toDocument(key string, value []byte, expiry model.Expiry) (photoCacheDocument, bool) {
	now := r.now().UTC()
	if expiry.Remaining(now) <= 0 {
		return photoCacheDocument{}, false
	}
	return photoCacheDocument{
		Key:       key,
		Data:      value,
		ExpiresAt: expiry.Deadline(now).UTC(),
		UpdatedAt: now,
	}, true
}

func (r *PhotoCacheRepositoryMongo) fromDocument(doc photoCacheDocument) []byte {
	if !r.now().Before(doc.ExpiresAt) {
		return nil
	}
	return doc.Data
}
