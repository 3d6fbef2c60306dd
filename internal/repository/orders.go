package repository

import (
	"teadesk-system/internal/domain"
	"teadesk-system/internal/storage"
)

type OrdersRepositoryInterface interface {
	// List returns the company's full order collection, empty when
	// none has ever been written.
	List(company string) []domain.Order
	// Replace overwrites the collection wholesale.
	Replace(company string, orders []domain.Order) error
	// Update runs fn inside the company's orders write lock: the
	// read-modify-write cycle cannot interleave with another writer.
	// fn returning an error aborts without writing.
	Update(company string, fn func([]domain.Order) ([]domain.Order, error)) error
}

type OrdersRepository struct {
	store    *storage.Store
	resolver *storage.Resolver
	locks    *storage.Locks
}

func NewOrdersRepository(store *storage.Store, resolver *storage.Resolver, locks *storage.Locks) OrdersRepositoryInterface {
	return &OrdersRepository{store: store, resolver: resolver, locks: locks}
}

func (or *OrdersRepository) key(company string) string {
	return storage.SanitizeCompany(company) + "/orders"
}

func (or *OrdersRepository) List(company string) []domain.Order {
	path := or.resolver.Resolve(company).Orders
	return storage.ReadJSON(or.store, path, []domain.Order{})
}

func (or *OrdersRepository) Replace(company string, orders []domain.Order) error {
	release := or.locks.Acquire(or.key(company))
	defer release()
	return storage.WriteJSON(or.store, or.resolver.Resolve(company).Orders, orders)
}

func (or *OrdersRepository) Update(company string, fn func([]domain.Order) ([]domain.Order, error)) error {
	release := or.locks.Acquire(or.key(company))
	defer release()

	path := or.resolver.Resolve(company).Orders
	orders := storage.ReadJSON(or.store, path, []domain.Order{})
	next, err := fn(orders)
	if err != nil {
		return err
	}
	return storage.WriteJSON(or.store, path, next)
}
