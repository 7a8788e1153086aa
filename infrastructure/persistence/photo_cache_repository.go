package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"flickr-embed/domain/model"
	"flickr-embed/infrastructure/logger"
)

// EnsurePhotoCacheSchema creates the table for caching Flickr metadata if not exists
func EnsurePhotoCacheSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS flickr_photo_cache (
        cache_key TEXT PRIMARY KEY,
        data JSONB NOT NULL,
        expires_at TIMESTAMPTZ NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create flickr_photo_cache table: %w", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_flickr_photo_cache_expires_at ON flickr_photo_cache(expires_at)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_flickr_photo_cache_expires_at")
	}
	return nil
}

// PhotoCacheRepository is a PostgreSQL-backed metadata cache. Rows carry an
// absolute expires_at; expired rows read as a miss and are overwritten on
// the next store.
type PhotoCacheRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewPhotoCacheRepository(db *sql.DB) *PhotoCacheRepository {
	return &PhotoCacheRepository{db: db, now: time.Now}
}

func (r *PhotoCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if r.db == nil {
		return nil, nil
	}
	row := r.db.QueryRowContext(ctx, `SELECT data, expires_at FROM flickr_photo_cache WHERE cache_key=$1`, key)
	var raw []byte
	var expiresAt time.Time
	if err := row.Scan(&raw, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if !r.now().Before(expiresAt) {
		return nil, nil
	}
	return raw, nil
}

func (r *PhotoCacheRepository) Set(ctx context.Context, key string, value []byte, expiry model.Expiry) error {
	if r.db == nil {
		return nil
	}
	now := r.now().UTC()
	if expiry.Remaining(now) <= 0 {
		return model.ErrEntryExpired
	}
	q := `INSERT INTO flickr_photo_cache(cache_key, data, expires_at, updated_at)
          VALUES ($1,$2,$3,$4)
          ON CONFLICT (cache_key) DO UPDATE SET data=EXCLUDED.data, expires_at=EXCLUDED.expires_at, updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, key, value, expiry.Deadline(now).UTC(), now)
	return err
}

func (r *PhotoCacheRepository) Ping(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("db is nil")
	}
	return r.db.PingContext(ctx)
}
