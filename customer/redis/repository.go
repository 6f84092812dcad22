package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/luuzuriaga/bookstore/customer"
	storage "github.com/luuzuriaga/bookstore/internal/storage/redis"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of customer.Repository
 * customer:{id}              JSON record
 * customer:email:{email}     id of the customer owning the email; watched to keep emails unique
 * customers                  sorted set of ids
 * customers:seq              id sequence
 * sales:by-customer:{id}     set of sale ids, written by the sale repository
 */

const (
	seqKey   = "customers:seq"
	indexKey = "customers"
)

func Key(id int64) string {
	return "customer:" + storage.FormatID(id)
}

func keyOf(id string) string {
	return "customer:" + id
}

func EmailKey(email string) string {
	return "customer:email:" + email
}

func SalesKey(id int64) string {
	return "sales:by-customer:" + storage.FormatID(id)
}

type record struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r record) toCustomer() customer.Customer {
	return customer.Customer{ID: r.ID, Name: r.Name, Email: r.Email}
}

type Repository struct {
	S *storage.Session
}

func NewRepository(s *storage.Session) *Repository {
	return &Repository{S: s}
}

func (r *Repository) Select(ctx context.Context, id int64) (customer.Customer, error) {
	var rec record
	err := storage.Load(ctx, r.S, Key(id), &rec)
	if errors.Is(err, storage.ErrMissing) {
		return customer.Customer{}, customer.ErrNotFound
	}
	if err != nil {
		return customer.Customer{}, fmt.Errorf("selecting customer: %w", err)
	}
	return rec.toCustomer(), nil
}

func (r *Repository) SelectByEmail(ctx context.Context, email string) (customer.Customer, error) {
	id, found, err := emailOwner(ctx, r.S, email)
	if err != nil {
		return customer.Customer{}, fmt.Errorf("selecting customer by email: %w", err)
	}
	if !found {
		return customer.Customer{}, customer.ErrNotFound
	}
	return r.Select(ctx, id)
}

func (r *Repository) SelectAll(ctx context.Context) ([]customer.Customer, error) {
	recs, err := storage.LoadAll[record](ctx, r.S, indexKey, keyOf)
	if err != nil {
		return nil, fmt.Errorf("selecting customers: %w", err)
	}
	all := make([]customer.Customer, 0, len(recs))
	for _, rec := range recs {
		all = append(all, rec.toCustomer())
	}
	return all, nil
}

func (r *Repository) Insert(ctx context.Context, c customer.Customer) (int64, error) {
	var id int64
	err := r.S.Atomic(ctx, func(ctx context.Context, s *storage.Session) error {
		_, taken, err := emailOwner(ctx, s, c.Email)
		if err != nil {
			return err
		}
		if taken {
			return customer.DuplicateEmail(c.Email)
		}
		id, err = storage.NextID(ctx, s, seqKey)
		if err != nil {
			return err
		}
		data, err := storage.Encode(record{ID: id, Name: c.Name, Email: c.Email})
		if err != nil {
			return err
		}
		s.Queue(func(pipe redis.Pipeliner) {
			pipe.Set(ctx, Key(id), data, 0)
			pipe.Set(ctx, EmailKey(c.Email), id, 0)
			pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(id), Member: storage.FormatID(id)})
		})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("inserting customer: %w", err)
	}
	return id, nil
}

func (r *Repository) Update(ctx context.Context, c customer.Customer) error {
	err := r.S.Atomic(ctx, func(ctx context.Context, s *storage.Session) error {
		var current record
		err := storage.Load(ctx, s, Key(c.ID), &current)
		if errors.Is(err, storage.ErrMissing) {
			return customer.ErrNotFound
		}
		if err != nil {
			return err
		}
		owner, taken, err := emailOwner(ctx, s, c.Email)
		if err != nil {
			return err
		}
		if taken && owner != c.ID {
			return customer.DuplicateEmail(c.Email)
		}
		data, err := storage.Encode(record{ID: c.ID, Name: c.Name, Email: c.Email})
		if err != nil {
			return err
		}
		s.Queue(func(pipe redis.Pipeliner) {
			pipe.Set(ctx, Key(c.ID), data, 0)
			if current.Email != c.Email {
				pipe.Del(ctx, EmailKey(current.Email))
				pipe.Set(ctx, EmailKey(c.Email), c.ID, 0)
			}
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	err := r.S.Atomic(ctx, func(ctx context.Context, s *storage.Session) error {
		if err := s.Watch(ctx, SalesKey(id)); err != nil {
			return err
		}
		var current record
		err := storage.Load(ctx, s, Key(id), &current)
		if errors.Is(err, storage.ErrMissing) {
			return customer.ErrNotFound
		}
		if err != nil {
			return err
		}
		sales, err := s.Cmd().SCard(ctx, SalesKey(id)).Result()
		if err != nil {
			return err
		}
		if sales > 0 {
			return customer.ErrHasSales
		}
		s.Queue(func(pipe redis.Pipeliner) {
			pipe.Del(ctx, Key(id), EmailKey(current.Email))
			pipe.ZRem(ctx, indexKey, storage.FormatID(id))
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}
	return nil
}

func emailOwner(ctx context.Context, s *storage.Session, email string) (int64, bool, error) {
	key := EmailKey(email)
	if err := s.Watch(ctx, key); err != nil {
		return 0, false, err
	}
	raw, err := s.Cmd().Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading %s: %w", key, err)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parsing %s: %w", key, err)
	}
	return id, true, nil
}
