package repository

import (
	"teadesk-system/internal/storage"
)

// Repository aggregates the typed collection accessors. All three
// share one keyed lock set so write serialization spans every path
// into a given (company, collection) document.
type Repository struct {
	Orders OrdersRepositoryInterface
	Desks  DesksRepositoryInterface
	Menu   MenuRepositoryInterface
}

func New(store *storage.Store, resolver *storage.Resolver) *Repository {
	locks := storage.NewLocks()
	return &Repository{
		Orders: NewOrdersRepository(store, resolver, locks),
		Desks:  NewDesksRepository(store, resolver, locks),
		Menu:   NewMenuRepository(store, resolver, locks),
	}
}
