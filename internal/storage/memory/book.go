package memory

import (
	"context"

	"github.com/luuzuriaga/bookstore/book"
)

type BookRepository struct {
	s *Store
}

func (r *BookRepository) Select(ctx context.Context, id int64) (book.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return b, nil
}

func (r *BookRepository) SelectAll(ctx context.Context) ([]book.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.books), nil
}

func (r *BookRepository) Insert(ctx context.Context, b book.Book) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.bookSeq++
	b.ID = r.s.bookSeq
	r.s.books[b.ID] = b
	return b.ID, nil
}

func (r *BookRepository) Update(ctx context.Context, b book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[b.ID]; !ok {
		return book.ErrNotFound
	}
	r.s.books[b.ID] = b
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[id]; !ok {
		return book.ErrNotFound
	}
	if r.s.bookHasSales(id) {
		return book.ErrHasSales
	}
	delete(r.s.books, id)
	return nil
}
