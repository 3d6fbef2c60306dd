package service

import (
	"context"

	"teadesk-system/internal/common/logger"
	"teadesk-system/internal/domain"
	"teadesk-system/internal/repository"
	"teadesk-system/internal/storage"
)

// EventPublisher pushes order lifecycle events to the dashboard feed.
// A nil publisher disables events; a publish failure never fails the
// request, the on-disk document is the source of truth.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev domain.OrderEvent) error
}

type Service struct {
	Orders OrderServiceInterface
	Desks  DeskServiceInterface
	Menu   MenuServiceInterface
}

func New(repo *repository.Repository, store *storage.Store, pub EventPublisher, lg *logger.Logger) *Service {
	return &Service{
		Orders: NewOrderService(repo.Orders, pub, lg),
		Desks:  NewDeskService(repo.Desks),
		Menu:   NewMenuService(repo.Menu, store, lg),
	}
}
