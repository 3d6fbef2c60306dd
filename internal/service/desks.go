package service

import (
	"strconv"

	"teadesk-system/internal/domain"
	"teadesk-system/internal/repository"
)

type DeskServiceInterface interface {
	Get(company string) domain.DeskRegistry
	SaveDesk(company, deskID string, info domain.DeskInfo) (domain.DeskRegistry, error)
	SaveAll(company string, reg domain.DeskRegistry) (domain.DeskRegistry, error)
}

type DeskService struct {
	db repository.DesksRepositoryInterface
}

func NewDeskService(db repository.DesksRepositoryInterface) DeskServiceInterface {
	return &DeskService{db: db}
}

func (ds *DeskService) Get(company string) domain.DeskRegistry {
	return ds.db.Get(company)
}

func (ds *DeskService) SaveDesk(company, deskID string, info domain.DeskInfo) (domain.DeskRegistry, error) {
	if deskID == "" {
		return domain.DeskRegistry{}, domain.Invalid("desk id is required")
	}
	var saved domain.DeskRegistry
	err := ds.db.Update(company, func(reg domain.DeskRegistry) (domain.DeskRegistry, error) {
		reg.Desks[deskID] = info
		reg.NumDesks = bumpNumDesks(reg.NumDesks, deskID)
		saved = reg
		return reg, nil
	})
	if err != nil {
		return domain.DeskRegistry{}, err
	}
	return saved, nil
}

func (ds *DeskService) SaveAll(company string, reg domain.DeskRegistry) (domain.DeskRegistry, error) {
	if reg.Desks == nil {
		reg.Desks = map[string]domain.DeskInfo{}
	}
	for id := range reg.Desks {
		reg.NumDesks = bumpNumDesks(reg.NumDesks, id)
	}
	if err := ds.db.Put(company, reg); err != nil {
		return domain.DeskRegistry{}, err
	}
	return reg, nil
}

// bumpNumDesks keeps the counter monotonically non-decreasing when a
// numerically larger desk id is written. Non-numeric ids leave it
// untouched.
func bumpNumDesks(current int, deskID string) int {
	n, err := strconv.Atoi(deskID)
	if err != nil || n <= current {
		return current
	}
	return n
}
