package repository

import (
	"teadesk-system/internal/domain"
	"teadesk-system/internal/storage"
)

type MenuRepositoryInterface interface {
	// Get resolves the menu tree, first structurally-valid hit wins:
	// company document, then the legacy shared document, then the
	// built-in default.
	Get(company string) domain.Menu
	Put(company string, m domain.Menu) error
	// UploadsDir is the company's upload area for extracted images.
	UploadsDir(company string) string
}

type MenuRepository struct {
	store    *storage.Store
	resolver *storage.Resolver
	locks    *storage.Locks
}

func NewMenuRepository(store *storage.Store, resolver *storage.Resolver, locks *storage.Locks) MenuRepositoryInterface {
	return &MenuRepository{store: store, resolver: resolver, locks: locks}
}

func (mr *MenuRepository) key(company string) string {
	return storage.SanitizeCompany(company) + "/menu"
}

func (mr *MenuRepository) Get(company string) domain.Menu {
	if m := storage.ReadJSON[domain.Menu](mr.store, mr.resolver.Resolve(company).Menu, nil); m.Valid() {
		return m
	}
	if m := storage.ReadJSON[domain.Menu](mr.store, mr.resolver.LegacyMenuPath(), nil); m.Valid() {
		return m
	}
	return domain.DefaultMenu()
}

func (mr *MenuRepository) Put(company string, m domain.Menu) error {
	release := mr.locks.Acquire(mr.key(company))
	defer release()
	return storage.WriteJSON(mr.store, mr.resolver.Resolve(company).Menu, m)
}

func (mr *MenuRepository) UploadsDir(company string) string {
	return mr.resolver.Resolve(company).Uploads
}
