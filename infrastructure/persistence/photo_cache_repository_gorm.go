package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flickr-embed/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PhotoCacheEntry is the gorm row for the MySQL metadata cache.
type PhotoCacheEntry struct {
	CacheKey  string    `gorm:"column:cache_key;primaryKey;size:191"`
	Data      []byte    `gorm:"column:data;type:longblob;not null"`
	ExpiresAt time.Time `gorm:"column:expires_at;index:idx_flickr_photo_cache_expires_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (PhotoCacheEntry) TableName() string {
	return "flickr_photo_cache"
}

// PhotoCacheRepositoryGorm implements the metadata cache through gorm.
type PhotoCacheRepositoryGorm struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPhotoCacheRepositoryGorm(db *gorm.DB) *PhotoCacheRepositoryGorm {
	return &PhotoCacheRepositoryGorm{db: db, now: time.Now}
}

// EnsureSchema migrates the cache table.
func (r *PhotoCacheRepositoryGorm) EnsureSchema() error {
	if err := r.db.AutoMigrate(&PhotoCacheEntry{}); err != nil {
		return fmt.Errorf("migrate flickr_photo_cache: %w", err)
	}
	return nil
}

func (r *PhotoCacheRepositoryGorm) Get(ctx context.Context, key string) ([]byte, error) {
	var entry PhotoCacheEntry
	err := r.db.WithContext(ctx).Where("cache_key = ?", key).Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !r.now().Before(entry.ExpiresAt) {
		return nil, nil
	}
	return entry.Data, nil
}

func (r *PhotoCacheRepositoryGorm) Set(ctx context.Context, key string, value []byte, expiry model.Expiry) error {
	now := r.now().UTC()
	if expiry.Remaining(now) <= 0 {
		return model.ErrEntryExpired
	}
	entry := PhotoCacheEntry{
		CacheKey:  key,
		Data:      value,
		ExpiresAt: expiry.Deadline(now).UTC(),
		UpdatedAt: now,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at", "updated_at"}),
		}).
		Create(&entry).Error
}

func (r *PhotoCacheRepositoryGorm) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
