package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// MaxAttempts bounds how many times Atomic reruns a transaction whose watched keys changed.
const MaxAttempts = 10

var ErrConflict = errors.New("too many concurrent updates")

// Reads is the subset of commands repositories run before MULTI.
// Both *redis.Client and *redis.Tx implement it.
type Reads interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	ZRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	SCard(ctx context.Context, key string) *redis.IntCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

/* Session é o equivalente a um *sql.Tx para o Redis.
 * Fora de Atomic as leituras vão direto para o client.
 * Dentro de Atomic as leituras fazem WATCH das chaves e as escritas ficam enfileiradas
 * até o MULTI/EXEC final. Se alguma chave observada mudar, o EXEC falha com redis.TxFailedErr
 * e a função inteira roda de novo, até MaxAttempts vezes.
 */
type Session struct {
	client *redis.Client
	tx     *redis.Tx
	queued []func(pipe redis.Pipeliner)
}

func (s *Session) Cmd() Reads {
	if s.tx != nil {
		return s.tx
	}
	return s.client
}

// Watch adds keys to the running transaction; outside Atomic it does nothing.
func (s *Session) Watch(ctx context.Context, keys ...string) error {
	if s.tx == nil {
		return nil
	}
	if err := s.tx.Watch(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("watching %v: %w", keys, err)
	}
	return nil
}

// Queue defers a write to the EXEC of the surrounding Atomic call.
func (s *Session) Queue(write func(pipe redis.Pipeliner)) {
	s.queued = append(s.queued, write)
}

// Atomic runs fn in an optimistic transaction, or inline when the session already is one.
func (s *Session) Atomic(ctx context.Context, fn func(ctx context.Context, s *Session) error) error {
	if s.tx != nil {
		return fn(ctx, s)
	}
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		err := s.client.Watch(ctx, func(tx *redis.Tx) error {
			inner := &Session{client: s.client, tx: tx}
			if err := fn(ctx, inner); err != nil {
				return err
			}
			return inner.exec(ctx)
		})
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w: gave up after %d attempts", ErrConflict, MaxAttempts)
}

func (s *Session) exec(ctx context.Context) error {
	if len(s.queued) == 0 {
		return nil
	}
	_, err := s.tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, write := range s.queued {
			write(pipe)
		}
		return nil
	})
	return err
}
