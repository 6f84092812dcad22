package sale

import (
	"context"
	"fmt"
	"time"

	"github.com/luuzuriaga/bookstore/internal/apperr"
	"github.com/rs/zerolog"
)

type UseCase interface {
	Register(ctx context.Context, customerID, bookID int64, quantity int) (Sale, error)
	List(ctx context.Context) ([]Sale, error)
	Get(ctx context.Context, id int64) (Sale, error)
}

type Service struct {
	Repo       Reader
	Transactor Transactor
	// Now stamps new sales; tests replace it with a fixed clock.
	Now    func() time.Time
	Logger zerolog.Logger
}

func NewService(repo Reader, transactor Transactor, logger zerolog.Logger) *Service {
	return &Service{
		Repo:       repo,
		Transactor: transactor,
		Now:        func() time.Time { return time.Now().UTC() },
		Logger:     logger,
	}
}

func (s *Service) Register(ctx context.Context, customerID, bookID int64, quantity int) (Sale, error) {
	if quantity <= 0 {
		return Sale{}, InvalidQuantity(quantity)
	}
	var registered Sale
	err := s.Transactor.WithinTx(ctx, func(ctx context.Context, tx Tx) error {
		if _, err := tx.Customers().Select(ctx, customerID); err != nil {
			return fmt.Errorf("selecting customer: %w", err)
		}
		b, err := tx.Books().SelectForUpdate(ctx, bookID)
		if err != nil {
			return fmt.Errorf("selecting book: %w", err)
		}
		if !b.HasStock(quantity) {
			return InsufficientStock(b.Title)
		}
		b.Stock -= quantity
		if err := tx.Books().Update(ctx, b); err != nil {
			return fmt.Errorf("updating stock: %w", err)
		}
		registered = Sale{
			CustomerID: customerID,
			BookID:     bookID,
			Quantity:   quantity,
			CreatedAt:  s.Now(),
		}
		id, err := tx.Sales().Insert(ctx, registered)
		if err != nil {
			return fmt.Errorf("inserting sale: %w", err)
		}
		registered.ID = id
		return nil
	})
	if err != nil {
		if !apperr.IsValidation(err) && !apperr.IsNotFound(err) {
			s.Logger.Error().Err(err).
				Int64("customer_id", customerID).
				Int64("book_id", bookID).
				Int("quantity", quantity).
				Msg("sale registration failed")
		}
		return Sale{}, fmt.Errorf("registering sale: %w", err)
	}
	s.Logger.Debug().
		Int64("sale_id", registered.ID).
		Int64("book_id", bookID).
		Int("quantity", quantity).
		Msg("sale registered")
	return registered, nil
}

func (s *Service) List(ctx context.Context) ([]Sale, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting sales: %w", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Sale, error) {
	sl, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Sale{}, fmt.Errorf("selecting sale: %w", err)
	}
	return sl, nil
}
