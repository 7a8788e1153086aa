package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flickr-embed/domain/model"
	"flickr-embed/domain/repository"
	"flickr-embed/infrastructure/logger"
	"flickr-embed/infrastructure/metrics"

	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/singleflight"
)

// IMetadataFetcher returns photo metadata for a photo id.
type IMetadataFetcher interface {
	Fetch(ctx context.Context, photoID string) (*model.PhotoMetadata, error)
}

const (
	defaultNamespace = "flickrapi"
	defaultExpiry    = 10 * time.Minute
)

// FetcherConfig controls cache key derivation and expiry.
type FetcherConfig struct {
	Namespace string
	Expiry    model.Expiry
	// Backend labels cache metrics.
	Backend string
	// SingleFlight coalesces concurrent misses for the same key.
	SingleFlight bool
}

// PhotoMetadataFetcher is a cache-aside reader in front of the Flickr client.
type PhotoMetadataFetcher struct {
	flickr repository.IFlickr
	cache  repository.IPhotoCache // optional
	cfg    FetcherConfig
	group  *singleflight.Group
}

// NewPhotoMetadataFetcher creates a fetcher. cache may be nil, in which case
// every call goes to the remote service.
func NewPhotoMetadataFetcher(flickr repository.IFlickr, cache repository.IPhotoCache, cfg FetcherConfig) *PhotoMetadataFetcher {
	if cfg.Namespace == "" {
		cfg.Namespace = defaultNamespace
	}
	if cfg.Expiry.IsZero() {
		cfg.Expiry = model.ExpireIn(defaultExpiry)
	}
	f := &PhotoMetadataFetcher{flickr: flickr, cache: cache, cfg: cfg}
	if cfg.SingleFlight {
		f.group = &singleflight.Group{}
	}
	return f
}

// DeriveCacheKey returns the cache key for a photo id within namespace.
func DeriveCacheKey(namespace, photoID string) string {
	return fmt.Sprintf("%s:photo:%s", namespace, photoID)
}

// Fetch returns cached metadata when present, otherwise loads it from Flickr
// and stores it. A failed cache write does not fail the fetch.
func (f *PhotoMetadataFetcher) Fetch(ctx context.Context, photoID string) (*model.PhotoMetadata, error) {
	key := DeriveCacheKey(f.cfg.Namespace, photoID)

	if meta := f.lookup(ctx, key); meta != nil {
		metrics.CacheHits.WithLabelValues(f.cfg.Backend).Inc()
		return meta, nil
	}
	metrics.CacheMisses.WithLabelValues(f.cfg.Backend).Inc()

	if f.group == nil {
		return f.load(ctx, photoID, key)
	}
	// The shared load must not die with whichever caller started it.
	loadCtx := context.WithoutCancel(ctx)
	v, err, shared := f.group.Do(key, func() (interface{}, error) {
		return f.load(loadCtx, photoID, key)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.GetLogger().WithField("key", key).Debug("Coalesced concurrent metadata fetch")
	}
	return v.(*model.PhotoMetadata), nil
}

func (f *PhotoMetadataFetcher) lookup(ctx context.Context, key string) *model.PhotoMetadata {
	if f.cache == nil {
		return nil
	}
	raw, err := f.cache.Get(ctx, key)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"key": key, "error": err}).Warn("Metadata cache read failed")
		return nil
	}
	if raw == nil {
		return nil
	}
	var meta model.PhotoMetadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"key": key, "error": err}).Warn("Discarding undecodable cache entry")
		return nil
	}
	return &meta
}

func (f *PhotoMetadataFetcher) load(ctx context.Context, photoID, key string) (*model.PhotoMetadata, error) {
	logger.GetLogger().WithField("photo_id", photoID).Debug("Fetching photo metadata from Flickr")

	info, err := f.flickr.GetPhotoInfo(ctx, photoID)
	if err != nil || info == nil {
		metrics.RemoteFetches.WithLabelValues("not_found").Inc()
		return nil, model.NewNotFoundError(photoID, err)
	}
	sizes, err := f.flickr.GetPhotoSizes(ctx, photoID)
	if err != nil || len(sizes) == 0 {
		metrics.RemoteFetches.WithLabelValues("not_found").Inc()
		return nil, model.NewNotFoundError(photoID, err)
	}
	metrics.RemoteFetches.WithLabelValues("ok").Inc()

	meta := &model.PhotoMetadata{Title: info.Title, LinkURL: info.LinkURL, Sizes: sizes}
	f.store(ctx, key, meta)
	return meta, nil
}

func (f *PhotoMetadataFetcher) store(ctx context.Context, key string, meta *model.PhotoMetadata) {
	if f.cache == nil {
		return
	}
	raw, err := json.Marshal(meta)
	if err == nil {
		err = f.cache.Set(ctx, key, raw, f.cfg.Expiry)
	}
	if err != nil {
		metrics.CacheWriteFailures.WithLabelValues(f.cfg.Backend).Inc()
		logger.GetLogger().WithFields(map[string]interface{}{"key": key, "error": err}).Warn("Metadata cache write failed")
		sentry.CaptureException(fmt.Errorf("cache write %s: %w", key, err))
	}
}
