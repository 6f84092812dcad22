package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookredis "github.com/luuzuriaga/bookstore/book/redis"
	customerredis "github.com/luuzuriaga/bookstore/customer/redis"
	storage "github.com/luuzuriaga/bookstore/internal/storage/redis"
	"github.com/luuzuriaga/bookstore/sale"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of the sale store
 * sale:{id}                  JSON record
 * sales                      sorted set of ids
 * sales:seq                  id sequence
 * sales:by-book:{id}         reverse index consulted by book deletes
 * sales:by-customer:{id}     reverse index consulted by customer deletes
 */

const (
	seqKey   = "sales:seq"
	indexKey = "sales"
)

func Key(id int64) string {
	return "sale:" + storage.FormatID(id)
}

func keyOf(id string) string {
	return "sale:" + id
}

type record struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customerId"`
	BookID     int64     `json:"bookId"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (r record) toSale() sale.Sale {
	return sale.Sale{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		BookID:     r.BookID,
		Quantity:   r.Quantity,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

type Repository struct {
	S *storage.Session
}

func NewRepository(s *storage.Session) *Repository {
	return &Repository{S: s}
}

func (r *Repository) Select(ctx context.Context, id int64) (sale.Sale, error) {
	var rec record
	err := storage.Load(ctx, r.S, Key(id), &rec)
	if errors.Is(err, storage.ErrMissing) {
		return sale.Sale{}, sale.ErrNotFound
	}
	if err != nil {
		return sale.Sale{}, fmt.Errorf("selecting sale: %w", err)
	}
	return rec.toSale(), nil
}

func (r *Repository) SelectAll(ctx context.Context) ([]sale.Sale, error) {
	recs, err := storage.LoadAll[record](ctx, r.S, indexKey, keyOf)
	if err != nil {
		return nil, fmt.Errorf("selecting sales: %w", err)
	}
	all := make([]sale.Sale, 0, len(recs))
	for _, rec := range recs {
		all = append(all, rec.toSale())
	}
	return all, nil
}

// Insert queues the record and both reverse indexes into the surrounding transaction.
func (r *Repository) Insert(ctx context.Context, s sale.Sale) (int64, error) {
	var id int64
	err := r.S.Atomic(ctx, func(ctx context.Context, sess *storage.Session) error {
		var err error
		id, err = storage.NextID(ctx, sess, seqKey)
		if err != nil {
			return err
		}
		data, err := storage.Encode(record{
			ID:         id,
			CustomerID: s.CustomerID,
			BookID:     s.BookID,
			Quantity:   s.Quantity,
			CreatedAt:  s.CreatedAt,
		})
		if err != nil {
			return err
		}
		member := storage.FormatID(id)
		sess.Queue(func(pipe redis.Pipeliner) {
			pipe.Set(ctx, Key(id), data, 0)
			pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(id), Member: member})
			pipe.SAdd(ctx, bookredis.SalesKey(s.BookID), member)
			pipe.SAdd(ctx, customerredis.SalesKey(s.CustomerID), member)
		})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("inserting sale: %w", err)
	}
	return id, nil
}
