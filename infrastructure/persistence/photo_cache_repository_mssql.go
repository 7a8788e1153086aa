package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"flickr-embed/domain/model"
	"flickr-embed/infrastructure/logger"
)

// EnsurePhotoCacheSchemaMSSQL creates the cache table on MSSQL if not exists
func EnsurePhotoCacheSchemaMSSQL(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db is nil")
	}
	ddl := `IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'dbo.flickr_photo_cache') AND type in (N'U'))
BEGIN
    CREATE TABLE dbo.flickr_photo_cache (
        cache_key NVARCHAR(256) NOT NULL PRIMARY KEY,
        data NVARCHAR(MAX) NOT NULL,
        expires_at DATETIMEOFFSET NOT NULL,
        updated_at DATETIMEOFFSET NOT NULL
    );
END`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create flickr_photo_cache table (mssql): %w", err)
	}
	if _, err := db.Exec(`IF NOT EXISTS (SELECT * FROM sys.indexes WHERE name = 'idx_flickr_photo_cache_expires_at' AND object_id = OBJECT_ID('dbo.flickr_photo_cache'))
CREATE INDEX idx_flickr_photo_cache_expires_at ON dbo.flickr_photo_cache(expires_at)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_flickr_photo_cache_expires_at (mssql)")
	}
	return nil
}

// PhotoCacheRepositoryMSSQL implements the metadata cache on MSSQL
type PhotoCacheRepositoryMSSQL struct {
	db  *sql.DB
	now func() time.Time
}

func NewPhotoCacheRepositoryMSSQL(db *sql.DB) *PhotoCacheRepositoryMSSQL {
	return &PhotoCacheRepositoryMSSQL{db: db, now: time.Now}
}

func (r *PhotoCacheRepositoryMSSQL) Get(ctx context.Context, key string) ([]byte, error) {
	if r.db == nil {
		return nil, nil
	}
	row := r.db.QueryRowContext(ctx, `SELECT data, expires_at FROM dbo.flickr_photo_cache WHERE cache_key=@p1`, key)
	var raw string
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
	return []byte(raw), nil
}

func (r *PhotoCacheRepositoryMSSQL) Set(ctx context.Context, key string, value []byte, expiry model.Expiry) error {
	if r.db == nil {
		return nil
	}
	now := r.now().UTC()
	if expiry.Remaining(now) <= 0 {
		return model.ErrEntryExpired
	}
	q := `MERGE dbo.flickr_photo_cache AS target
USING (SELECT @p1 AS cache_key) AS src
ON (target.cache_key = src.cache_key)
WHEN MATCHED THEN UPDATE SET data=@p2, expires_at=@p3, updated_at=@p4
WHEN NOT MATCHED THEN INSERT (cache_key, data, expires_at, updated_at)
VALUES (@p1, @p2, @p3, @p4);`
	_, err := r.db.ExecContext(ctx, q, key, string(value), expiry.Deadline(now).UTC(), now)
	return err
}

func (r *PhotoCacheRepositoryMSSQL) Ping(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("db is nil")
	}
	return r.db.PingContext(ctx)
}
