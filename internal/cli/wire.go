package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mwarrick/digital-business-card-sub004/pkg/audit"
	"github.com/mwarrick/digital-business-card-sub004/pkg/cache"
	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
	"github.com/mwarrick/digital-business-card-sub004/pkg/config"
	"github.com/mwarrick/digital-business-card-sub004/pkg/fonts"
	"github.com/mwarrick/digital-business-card-sub004/pkg/httputil"
	"github.com/mwarrick/digital-business-card-sub004/pkg/media"
	"github.com/mwarrick/digital-business-card-sub004/pkg/pipeline"
	"github.com/mwarrick/digital-business-card-sub004/pkg/qr"
)

// app is the set of backends built from a Config.
type app struct {
	cfg    config.Config
	store  card.Store
	cache  cache.Cache
	runner *pipeline.Runner
}

// Close releases the store, the recorder and the cache.
func (a *app) Close() error {
	err := a.runner.Close()
	if cerr := a.cache.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// openApp connects every backend named in cfg. On error, whatever was
// already opened is closed.
func openApp(ctx context.Context, cfg config.Config, logger *log.Logger) (_ *app, err error) {
	store, err := card.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("open card store: %w", err)
	}
	defer func() {
		if err != nil {
			store.Close()
		}
	}()

	ch, err := openCache(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	defer func() {
		if err != nil {
			ch.Close()
		}
	}()

	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Cache.Prefix)
	client := httputil.NewClient(httputil.WithCache(ch, keyer))

	rec, err := openRecorder(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open audit: %w", err)
	}

	compositor := qr.NewCompositor(qrProvider(cfg, client),
		qr.WithTimeout(cfg.QR.Timeout),
		qr.WithCache(ch, keyer),
		qr.WithLogger(logger),
	)
	resolver := fonts.NewResolver(fonts.WithDir(cfg.Fonts.Dir), fonts.WithSystemFonts(cfg.Fonts.System))

	runner := pipeline.NewRunner(store,
		pipeline.WithQR(compositor),
		pipeline.WithQRHost(cfg.QR.Host),
		pipeline.WithMedia(media.NewLoader(cfg.Media.Dir, media.WithClient(client), media.WithCache(ch, keyer))),
		pipeline.WithFonts(resolver),
		pipeline.WithRecorder(rec),
		pipeline.WithLogger(logger),
	)

	return &app{cfg: cfg, store: store, cache: ch, runner: runner}, nil
}

// openCache returns the asset cache selected by cfg.Cache.Backend.
func openCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		client, err := cache.DialRedis(ctx, cfg.CacheRedisOptions())
		if err != nil {
			return nil, err
		}
		return cache.NewRedisCache(client, cfg.Cache.Prefix), nil
	default:
		dir, err := cacheDir(cfg)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// cacheDir returns the configured file cache directory, falling back to
// the XDG cache directory.
func cacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return config.CacheDir()
}

func qrProvider(cfg config.Config, client *httputil.Client) qr.Provider {
	switch cfg.QR.Provider {
	case config.ProviderRemote:
		return qr.NewRemoteProvider(client, cfg.QR.Endpoint)
	case config.ProviderFallback:
		return qr.NewFallbackProvider(qr.NewRemoteProvider(client, cfg.QR.Endpoint), qr.NewLocalProvider())
	default:
		return qr.NewLocalProvider()
	}
}

func openRecorder(ctx context.Context, cfg config.Config, logger *log.Logger) (audit.Recorder, error) {
	switch cfg.Audit.Backend {
	case config.AuditNone:
		return audit.NopRecorder{}, nil
	case config.AuditMongo:
		return audit.DialMongoRecorder(ctx, cfg.Audit.MongoURI, cfg.Audit.MongoDatabase, cfg.Audit.MongoCollection)
	default:
		return audit.NewLogRecorder(logger), nil
	}
}
