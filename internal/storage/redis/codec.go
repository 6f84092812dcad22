package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMissing is returned by Load when the key does not exist.
var ErrMissing = errors.New("key does not exist")

// Load reads a JSON record, watching its key when the session is transactional.
func Load(ctx context.Context, s *Session, key string, v any) error {
	if err := s.Watch(ctx, key); err != nil {
		return err
	}
	data, err := s.Cmd().Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMissing
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

// LoadAll reads every record listed in the sorted set index, in score order.
func LoadAll[T any](ctx context.Context, s *Session, index string, keyOf func(id string) string) ([]T, error) {
	ids, err := s.Cmd().ZRange(ctx, index, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading index %s: %w", index, err)
	}
	all := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return all, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyOf(id)
	}
	values, err := s.Cmd().MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading records of %s: %w", index, err)
	}
	for i, raw := range values {
		str, ok := raw.(string)
		if !ok {
			// removed between ZRANGE and MGET
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(str), &v); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", keys[i], err)
		}
		all = append(all, v)
	}
	return all, nil
}

// Encode marshals a record for a queued SET.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	return data, nil
}

// NextID increments the sequence key. Ids burnt by aborted transactions are not reused.
func NextID(ctx context.Context, s *Session, seq string) (int64, error) {
	id, err := s.Cmd().Incr(ctx, seq).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing %s: %w", seq, err)
	}
	return id, nil
}

func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
