package persistence

import (
	"context"
	"testing"
	"time"

	"flickr-embed/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestPhotoCacheRepositoryMongo_Documents(t *testing.T) {
	repo := &PhotoCacheRepositoryMongo{now: clockAt(fixedNow)}

	doc, ok := repo.toDocument("flickrapi:photo:1", []byte(`{"title":"a"}`), model.ExpireIn(10*time.Minute))
	require.True(t, ok)
	assert.Equal(t, photoCacheDocument{
		Key:       "flickrapi:photo:1",
		Data:      []byte(`{"title":"a"}`),
		ExpiresAt: fixedNow.Add(10 * time.Minute),
		UpdatedAt: fixedNow,
	}, doc)
	assert.Equal(t, []byte(`{"title":"a"}`), repo.fromDocument(doc))

	_, ok = repo.toDocument("k", []byte("v"), model.ExpireAt(fixedNow.Add(-time.Minute)))
	assert.False(t, ok)
	assert.ErrorIs(t, repo.Set(context.Background(), "k", []byte("v"), model.ExpireAt(fixedNow)), model.ErrEntryExpired)

	repo.now = clockAt(fixedNow.Add(10 * time.Minute))
	assert.Nil(t, repo.fromDocument(doc))
}

func TestPhotoCacheRepositoryMongo_DocumentBSON(t *testing.T) {
	repo := &PhotoCacheRepositoryMongo{now: clockAt(fixedNow)}
	doc, ok := repo.toDocument("k", []byte("v"), model.ExpireIn(time.Minute))
	require.True(t, ok)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "k", m["_id"])
	assert.Contains(t, m, "expires_at")
	assert.Contains(t, m, "data")

	var back photoCacheDocument
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, doc.Data, back.Data)
	assert.True(t, doc.ExpiresAt.Equal(back.ExpiresAt))
}
