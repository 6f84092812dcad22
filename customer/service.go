package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type UseCase interface {
	Create(ctx context.Context, name, email string) (Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Get(ctx context.Context, id int64) (Customer, error)
	Update(ctx context.Context, id int64, name, email string) (Customer, error)
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		Repo: repo,
	}
}

func (s *Service) Create(ctx context.Context, name, email string) (Customer, error) {
	c := Customer{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
	if err := s.checkEmail(ctx, c); err != nil {
		return Customer{}, err
	}
	id, err := s.Repo.Insert(ctx, c)
	if err != nil {
		return Customer{}, fmt.Errorf("inserting customer: %w", err)
	}
	c.ID = id
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting customers: %w", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Customer, error) {
	c, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Customer{}, fmt.Errorf("selecting customer: %w", err)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, name, email string) (Customer, error) {
	c := Customer{
		ID:    id,
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
	if _, err := s.Repo.Select(ctx, id); err != nil {
		return Customer{}, fmt.Errorf("selecting customer: %w", err)
	}
	if err := s.checkEmail(ctx, c); err != nil {
		return Customer{}, err
	}
	if err := s.Repo.Update(ctx, c); err != nil {
		return Customer{}, fmt.Errorf("updating customer: %w", err)
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.Repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}
	return nil
}

// checkEmail rejects an empty email and one owned by a different customer.
func (s *Service) checkEmail(ctx context.Context, c Customer) error {
	if c.Email == "" {
		return ErrEmailRequired
	}
	owner, err := s.Repo.SelectByEmail(ctx, c.Email)
	switch {
	case errors.Is(err, ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("selecting customer by email: %w", err)
	case owner.ID != c.ID:
		return DuplicateEmail(c.Email)
	}
	return nil
}
