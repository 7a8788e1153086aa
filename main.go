package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flickr-embed/domain/model"
	"flickr-embed/domain/repository"
	"flickr-embed/infrastructure/cache"
	"flickr-embed/infrastructure/clients/flickr"
	"flickr-embed/infrastructure/configuration"
	"flickr-embed/infrastructure/logger"
	"flickr-embed/infrastructure/persistence"
	httpHandler "flickr-embed/interfaces/http"
	"flickr-embed/interfaces/markup"
	"flickr-embed/interfaces/tag"
	"flickr-embed/server"
	"flickr-embed/usecase"

	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

// photoCache is what every cache backend provides.
type photoCache interface {
	repository.IPhotoCache
	repository.IPinger
}

func recoverPanic() {
	if err := recover(); err != nil {
		sentry.CurrentHub().Recover(err)
		sentry.Flush(2 * time.Second)
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")
	configuration.Normalize(&configuration.C)
	app := configuration.C.App

	if dsn := configuration.C.Sentry.DSN; dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Environment: configuration.C.Sentry.Environment,
		}); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Sentry initialization failed")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	expiry, err := configuration.C.CacheExpiry()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Invalid cache expiry configuration")
		os.Exit(1)
	}

	backend, photoStore, closeCache := InitiatePhotoCache(ctx, configuration.C.Cache.Backend)
	defer closeCache()

	flickrConfig := configuration.C.Flickr
	flickrClient := flickr.NewFlickrClient(&flickr.Config{
		APIKey:    flickrConfig.APIKey,
		APISecret: flickrConfig.APISecret,
		Endpoint:  flickrConfig.Endpoint,
		Timeout:   time.Duration(flickrConfig.TimeoutSeconds) * time.Second,
	}, nil)

	fetcher := usecase.NewPhotoMetadataFetcher(flickrClient, photoStore, usecase.FetcherConfig{
		Namespace:    configuration.C.Cache.Namespace,
		Expiry:       expiry,
		Backend:      backend,
		SingleFlight: configuration.C.Cache.SingleFlight,
	})
	embedUsecase := usecase.NewEmbedUsecase(usecase.EmbedConfig{
		APIKey:   flickrConfig.APIKey,
		Defaults: configuration.C.EmbedDefaults(),
	}, fetcher, markup.NewImageLinkRenderer())

	registry := tag.NewRegistry()
	if err := registry.Register("flickr", func(ctx context.Context, inv tag.Invocation) string {
		return embedUsecase.Render(ctx, inv.Body, inv.Direction)
	}); err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot register flickr tag")
		os.Exit(1)
	}

	direction := model.ParseDirection(configuration.C.Embed.Direction)
	embedHandler := httpHandler.NewEmbedHandler(registry, embedUsecase, direction)
	healthHandler := httpHandler.NewHealthHandler(backend, photoStore)
	router := server.InitiateRouter(embedHandler, healthHandler, app.SecretKey, app.AllowOrigins)

	g, ctx := errgroup.WithContext(ctx)

	port := app.Port
	logger.GetLogger().WithFields(map[string]interface{}{
		"port":    port,
		"tls":     app.TLSEnabled,
		"backend": backend,
		"tags":    registry.Names(),
	}).Info("Starting application")
	httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		if app.TLSEnabled {
			cert := app.TLSCertFile
			key := app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
			} else {
				logger.GetLogger().WithFields(map[string]interface{}{"cert": cert, "key": key}).Info("Serving HTTPS")
				if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			}
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// InitiatePhotoCache opens the configured cache backend. Any backend that
// cannot be reached falls back to the in-process cache so tags keep
// rendering. The returned func releases the backend's connections.
func InitiatePhotoCache(ctx context.Context, backend string) (string, photoCache, func()) {
	c, closeFn, err := openPhotoCache(ctx, backend)
	if err == nil {
		logger.GetLogger().WithField("backend", backend).Info("Photo cache connected")
		return backend, c, closeFn
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"backend": backend,
		"error":   err,
	}).Warn("Photo cache backend not available - falling back to memory")
	sentry.CaptureException(err)
	return configuration.BackendMemory, cache.NewMemoryPhotoCache(time.Minute, nil), func() {}
}

func openPhotoCache(ctx context.Context, backend string) (photoCache, func(), error) {
	noop := func() {}
	switch backend {
	case configuration.BackendMemory:
		return cache.NewMemoryPhotoCache(time.Minute, nil), noop, nil

	case configuration.BackendRedis:
		rc := configuration.C.RedisClient
		client, err := cache.NewCache(ctx, fmt.Sprintf("%s:%s", rc.Host, rc.Port), rc.Username, rc.Password)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return cache.NewRedisPhotoCache(client), func() { _ = client.Close() }, nil

	case configuration.BackendPostgres:
		db, err := persistence.NewPostgreSQLDB()
		if err != nil {
			return nil, nil, err
		}
		if err := persistence.EnsurePhotoCacheSchema(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return persistence.NewPhotoCacheRepository(db), func() { _ = db.Close() }, nil

	case configuration.BackendMSSQL:
		db, err := persistence.NewMSSQLDB()
		if err != nil {
			return nil, nil, err
		}
		if err := persistence.EnsurePhotoCacheSchemaMSSQL(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return persistence.NewPhotoCacheRepositoryMSSQL(db), func() { _ = db.Close() }, nil

	case configuration.BackendMySQL:
		db, err := persistence.NewRepositories()
		if err != nil {
			return nil, nil, err
		}
		repo := persistence.NewPhotoCacheRepositoryGorm(db)
		if err := repo.EnsureSchema(); err != nil {
			return nil, nil, err
		}
		closeFn := noop
		if sqlDB, err := db.DB(); err == nil {
			closeFn = func() { _ = sqlDB.Close() }
		}
		return repo, closeFn, nil

	case configuration.BackendMongo:
		mc := configuration.C.Database.Mongo
		client, err := persistence.NewMongoDb(mc.Host, mc.Port, mc.User, mc.Password, "")
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}
		repo := persistence.NewPhotoCacheRepositoryMongo(client, mc.Name)
		if err := repo.Ping(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		if err := repo.EnsurePhotoCacheIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
		return repo, closeFn, nil
	}

	return nil, nil, fmt.Errorf("unknown cache backend %q", backend)
}
