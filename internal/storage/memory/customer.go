package memory

import (
	"context"

	"github.com/luuzuriaga/bookstore/customer"
)

type CustomerRepository struct {
	s *Store
}

func (r *CustomerRepository) Select(ctx context.Context, id int64) (customer.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return customer.Customer{}, customer.ErrNotFound
	}
	return c, nil
}

func (r *CustomerRepository) SelectByEmail(ctx context.Context, email string) (customer.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.emailOwner(email)
	if !ok {
		return customer.Customer{}, customer.ErrNotFound
	}
	return c, nil
}

func (r *CustomerRepository) SelectAll(ctx context.Context) ([]customer.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.customers), nil
}

func (r *CustomerRepository) Insert(ctx context.Context, c customer.Customer) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.emailOwner(c.Email); taken {
		return 0, customer.DuplicateEmail(c.Email)
	}
	r.s.custSeq++
	c.ID = r.s.custSeq
	r.s.customers[c.ID] = c
	return c.ID, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c customer.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return customer.ErrNotFound
	}
	if owner, taken := r.s.emailOwner(c.Email); taken && owner.ID != c.ID {
		return customer.DuplicateEmail(c.Email)
	}
	r.s.customers[c.ID] = c
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[id]; !ok {
		return customer.ErrNotFound
	}
	if r.s.customerHasSales(id) {
		return customer.ErrHasSales
	}
	delete(r.s.customers, id)
	return nil
}
