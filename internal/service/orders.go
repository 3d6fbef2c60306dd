package service

import (
	"context"
	"fmt"
	"time"

	"teadesk-system/internal/common/logger"
	"teadesk-system/internal/domain"
	"teadesk-system/internal/repository"
	"teadesk-system/internal/storage"
)

const publishTimeout = 5 * time.Second

type OrderServiceInterface interface {
	List(company string) []domain.Order
	Get(company, id string) (domain.Order, error)
	Create(company string, p domain.OrderPayload) (domain.Order, error)
	Update(company, id string, upd domain.OrderUpdate) (domain.Order, error)
	Rate(company, id string, req domain.RatingRequest) (domain.Order, error)
	BulkReplace(company string, payloads []domain.OrderPayload) (int, error)
	Delete(company, id string) (domain.Order, error)
	Clear(company string) error
}

type OrderService struct {
	db  repository.OrdersRepositoryInterface
	pub EventPublisher
	lg  *logger.Logger
}

func NewOrderService(db repository.OrdersRepositoryInterface, pub EventPublisher, lg *logger.Logger) OrderServiceInterface {
	return &OrderService{db: db, pub: pub, lg: lg}
}

func (or *OrderService) List(company string) []domain.Order {
	return or.db.List(company)
}

func (or *OrderService) Get(company, id string) (domain.Order, error) {
	for _, o := range or.db.List(company) {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
}

func (or *OrderService) Create(company string, p domain.OrderPayload) (domain.Order, error) {
	var created domain.Order
	err := or.db.Update(company, func(orders []domain.Order) ([]domain.Order, error) {
		o, err := normalizeCreate(p, orders)
		if err != nil {
			return nil, err
		}
		created = o
		return append(orders, o), nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	or.publish(company, created)
	return created, nil
}

func (or *OrderService) Update(company, id string, upd domain.OrderUpdate) (domain.Order, error) {
	var updated domain.Order
	statusChanged := false
	err := or.db.Update(company, func(orders []domain.Order) ([]domain.Order, error) {
		for i, o := range orders {
			if o.ID != id {
				continue
			}
			merged := mergeUpdate(o, upd)
			merged.ID = o.ID
			statusChanged = merged.Status != o.Status
			orders[i] = merged
			updated = merged
			return orders, nil
		}
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return domain.Order{}, err
	}
	if statusChanged {
		or.publish(company, updated)
	}
	return updated, nil
}

func (or *OrderService) Rate(company, id string, req domain.RatingRequest) (domain.Order, error) {
	if req.Stars < 1 || req.Stars > 5 {
		return domain.Order{}, domain.Invalid("stars must be between 1 and 5")
	}
	var rated domain.Order
	err := or.db.Update(company, func(orders []domain.Order) ([]domain.Order, error) {
		for i, o := range orders {
			if o.ID != id {
				continue
			}
			o.Rating = &domain.Rating{Stars: req.Stars, Review: req.Review, Timestamp: nowISO()}
			orders[i] = o
			rated = o
			return orders, nil
		}
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return domain.Order{}, err
	}
	return rated, nil
}

// BulkReplace normalizes each payload against the batch built so far
// and swaps the whole collection. Payloads that fail normalization are
// skipped; the count of persisted orders is returned.
func (or *OrderService) BulkReplace(company string, payloads []domain.OrderPayload) (int, error) {
	count := 0
	err := or.db.Update(company, func([]domain.Order) ([]domain.Order, error) {
		next := make([]domain.Order, 0, len(payloads))
		for _, p := range payloads {
			o, err := normalizeCreate(p, next)
			if err != nil {
				or.lg.Warn("bulk_replace_skip", err, map[string]any{"company": storage.SanitizeCompany(company)})
				continue
			}
			next = append(next, o)
		}
		count = len(next)
		return next, nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (or *OrderService) Delete(company, id string) (domain.Order, error) {
	var removed domain.Order
	err := or.db.Update(company, func(orders []domain.Order) ([]domain.Order, error) {
		for i, o := range orders {
			if o.ID != id {
				continue
			}
			removed = o
			return append(orders[:i], orders[i+1:]...), nil
		}
		return nil, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	})
	if err != nil {
		return domain.Order{}, err
	}
	return removed, nil
}

func (or *OrderService) Clear(company string) error {
	return or.db.Replace(company, []domain.Order{})
}

func (or *OrderService) publish(company string, o domain.Order) {
	if or.pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	ev := domain.OrderEvent{
		Company:    storage.SanitizeCompany(company),
		OrderID:    o.ID,
		Desk:       o.Desk,
		Items:      o.Items,
		Status:     o.Status,
		TeaboyName: o.TeaboyName,
		Timestamp:  nowISO(),
	}
	if err := or.pub.PublishOrderEvent(ctx, ev); err != nil {
		or.lg.Error("order_event_publish_failed", err, map[string]any{"order_id": o.ID, "status": o.Status})
	}
}
