package repository

import (
	"strconv"

	"teadesk-system/internal/domain"
	"teadesk-system/internal/storage"
)

type DesksRepositoryInterface interface {
	Get(company string) domain.DeskRegistry
	Put(company string, reg domain.DeskRegistry) error
	Update(company string, fn func(domain.DeskRegistry) (domain.DeskRegistry, error)) error
}

type DesksRepository struct {
	store    *storage.Store
	resolver *storage.Resolver
	locks    *storage.Locks
}

func NewDesksRepository(store *storage.Store, resolver *storage.Resolver, locks *storage.Locks) DesksRepositoryInterface {
	return &DesksRepository{store: store, resolver: resolver, locks: locks}
}

func (dr *DesksRepository) key(company string) string {
	return storage.SanitizeCompany(company) + "/desks"
}

func (dr *DesksRepository) Get(company string) domain.DeskRegistry {
	return dr.read(company)
}

func (dr *DesksRepository) read(company string) domain.DeskRegistry {
	path := dr.resolver.Resolve(company).Desks
	reg := storage.ReadJSON[*domain.DeskRegistry](dr.store, path, nil)
	if reg == nil {
		return seedRegistry()
	}
	if reg.Desks == nil {
		// document exists but was saved without the desks key
		reg.Desks = map[string]domain.DeskInfo{}
	}
	return *reg
}

func (dr *DesksRepository) Put(company string, reg domain.DeskRegistry) error {
	release := dr.locks.Acquire(dr.key(company))
	defer release()
	if reg.Desks == nil {
		reg.Desks = map[string]domain.DeskInfo{}
	}
	return storage.WriteJSON(dr.store, dr.resolver.Resolve(company).Desks, reg)
}

func (dr *DesksRepository) Update(company string, fn func(domain.DeskRegistry) (domain.DeskRegistry, error)) error {
	release := dr.locks.Acquire(dr.key(company))
	defer release()

	next, err := fn(dr.read(company))
	if err != nil {
		return err
	}
	if next.Desks == nil {
		next.Desks = map[string]domain.DeskInfo{}
	}
	return storage.WriteJSON(dr.store, dr.resolver.Resolve(company).Desks, next)
}

func seedRegistry() domain.DeskRegistry {
	reg := domain.DeskRegistry{
		NumDesks: domain.DefaultDeskCount,
		Desks:    make(map[string]domain.DeskInfo, domain.DefaultDeskCount),
	}
	for i := 1; i <= domain.DefaultDeskCount; i++ {
		reg.Desks[strconv.Itoa(i)] = domain.DeskInfo{}
	}
	return reg
}
