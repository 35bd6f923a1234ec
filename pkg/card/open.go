package card

import (
	"context"

	"github.com/mwarrick/digital-business-card-sub004/pkg/cache"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

// Backend names a Store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
	BackendMongo  Backend = "mongo"
)

// OpenOptions selects and configures a Store backend.
type OpenOptions struct {
	Backend Backend
	Dir     string
	Redis   cache.RedisOptions
	Prefix  string
	Mongo   MongoOptions

	// Seed adds the sample card to memory stores.
	Seed bool
}

// Open creates the Store described by opts. An empty backend opens a
// memory store.
func Open(ctx context.Context, opts OpenOptions) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		if opts.Seed {
			return NewMemoryStore(Sample()), nil
		}
		return NewMemoryStore(), nil
	case BackendFile:
		if opts.Dir == "" {
			return nil, errs.New(errs.ErrCodeInvalidConfig, "file store requires a directory")
		}
		return NewFileStore(opts.Dir)
	case BackendRedis:
		client, err := cache.DialRedis(ctx, opts.Redis)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect redis %s", opts.Redis.Addr)
		}
		return NewRedisStore(client, opts.Prefix), nil
	case BackendMongo:
		s, err := DialMongo(ctx, opts.Mongo)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeNetwork, err, "connect mongo")
		}
		return s, nil
	default:
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unknown store backend %q", opts.Backend)
	}
}
