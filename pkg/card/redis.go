package card

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
)

// DefaultRedisPrefix namespaces card keys.
const DefaultRedisPrefix = "nametag:card:"

// RedisStore keeps each record as a JSON string under prefix+id.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an open client. An empty prefix uses DefaultRedisPrefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, id string) (*Record, error) {
	if err := errs.ValidateCardID(id); err != nil {
		return nil, err
	}
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "redis get card %s", id)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "decode card %s", id)
	}
	return &rec, nil
}

// List implements Store. It walks the keyspace with SCAN so large
// databases are not blocked.
func (s *RedisStore) List(ctx context.Context) ([]Record, error) {
	var (
		out    []Record
		cursor uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		if len(keys) > 0 {
			vals, err := s.client.MGet(ctx, keys...).Result()
			if err != nil {
				return nil, err
			}
			for _, v := range vals {
				str, ok := v.(string)
				if !ok {
					continue
				}
				var rec Record
				if json.Unmarshal([]byte(str), &rec) == nil {
					out = append(out, rec)
				}
			}
		}
		if cursor = next; cursor == 0 {
			break
		}
	}
	sortByID(out)
	return out, nil
}

// Put implements Store.
func (s *RedisStore) Put(ctx context.Context, rec *Record) error {
	if err := errs.ValidateCardID(rec.ID); err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+rec.ID, data, 0).Err()
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
