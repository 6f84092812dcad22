package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/luuzuriaga/bookstore/book"
	storage "github.com/luuzuriaga/bookstore/internal/storage/redis"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of book.Repository
 * book:{id}            JSON record
 * books                sorted set of ids (score = id), keeps SelectAll ordered
 * books:seq            id sequence
 * sales:by-book:{id}   set of sale ids, written by the sale repository
 */

const (
	seqKey   = "books:seq"
	indexKey = "books"
)

func Key(id int64) string {
	return "book:" + storage.FormatID(id)
}

func keyOf(id string) string {
	return "book:" + id
}

// SalesKey lists the sales of a book; a non empty set blocks Delete.
func SalesKey(id int64) string {
	return "sales:by-book:" + storage.FormatID(id)
}

type record struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
}

func toRecord(b book.Book) record {
	return record{ID: b.ID, Title: b.Title, Author: b.Author, Price: b.Price, Stock: b.Stock}
}

func (r record) toBook() book.Book {
	return book.Book{ID: r.ID, Title: r.Title, Author: r.Author, Price: r.Price, Stock: r.Stock}
}

type Repository struct {
	S *storage.Session
}

func NewRepository(s *storage.Session) *Repository {
	return &Repository{S: s}
}

func (r *Repository) Select(ctx context.Context, id int64) (book.Book, error) {
	var rec record
	err := storage.Load(ctx, r.S, Key(id), &rec)
	if errors.Is(err, storage.ErrMissing) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return rec.toBook(), nil
}

// SelectForUpdate watches the book key: a concurrent change aborts the EXEC and the sale reruns.
func (r *Repository) SelectForUpdate(ctx context.Context, id int64) (book.Book, error) {
	return r.Select(ctx, id)
}

func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	recs, err := storage.LoadAll[record](ctx, r.S, indexKey, keyOf)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	books := make([]book.Book, 0, len(recs))
	for _, rec := range recs {
		books = append(books, rec.toBook())
	}
	return books, nil
}

func (r *Repository) Insert(ctx context.Context, b book.Book) (int64, error) {
	var id int64
	err := r.S.Atomic(ctx, func(ctx context.Context, s *storage.Session) error {
		var err error
		id, err = storage.NextID(ctx, s, seqKey)
		if err != nil {
			return err
		}
		b.ID = id
		data, err := storage.Encode(toRecord(b))
		if err != nil {
			return err
		}
		s.Queue(func(pipe redis.Pipeliner) {
			pipe.Set(ctx, Key(id), data, 0)
			pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(id), Member: storage.FormatID(id)})
		})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("inserting book: %w", err)
	}
	return id, nil
}

func (r *Repository) Update(ctx context.Context, b book.Book) error {
	err := r.S.Atomic(ctx, func(ctx context.Context, s *storage.Session) error {
		var current record
		err := storage.Load(ctx, s, Key(b.ID), &current)
		if errors.Is(err, storage.ErrMissing) {
			return book.ErrNotFound
		}
		if err != nil {
			return err
		}
		data, err := storage.Encode(toRecord(b))
		if err != nil {
			return err
		}
		s.Queue(func(pipe redis.Pipeliner) {
			pipe.Set(ctx, Key(b.ID), data, 0)
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("updating book: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	err := r.S.Atomic(ctx, func(ctx context.Context, s *storage.Session) error {
		if err := s.Watch(ctx, Key(id), SalesKey(id)); err != nil {
			return err
		}
		exists, err := s.Cmd().Exists(ctx, Key(id)).Result()
		if err != nil {
			return err
		}
		if exists == 0 {
			return book.ErrNotFound
		}
		sales, err := s.Cmd().SCard(ctx, SalesKey(id)).Result()
		if err != nil {
			return err
		}
		if sales > 0 {
			return book.ErrHasSales
		}
		s.Queue(func(pipe redis.Pipeliner) {
			pipe.Del(ctx, Key(id))
			pipe.ZRem(ctx, indexKey, storage.FormatID(id))
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}
