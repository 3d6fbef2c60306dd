package service

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"teadesk-system/internal/domain"
)

// normalizeCreate coerces a loosely-typed order payload into the
// canonical stored record, checking it against the existing
// collection for id conflicts.
func normalizeCreate(p domain.OrderPayload, existing []domain.Order) (domain.Order, error) {
	// 1. Derive items from itemsDetailed when no items array came in
	items, ok := itemsFrom(p.Items)
	details := detailsFrom(p.ItemsDetailed)
	if !ok && len(p.ItemsDetailed) > 0 {
		items = expandDetails(details)
	}

	// 2-3. Coerce desk, force items to an empty sequence
	desk, hasDesk := asString(p.Desk)
	if items == nil {
		items = []string{}
	}

	// 4. Caller-supplied id is coerced, otherwise one is generated
	id, hasID := asString(p.ID)
	if !hasID || id == "" {
		id = generateOrderID(existing)
	}

	// 5. Validation: empty items is fine, a missing desk is not
	if id == "" {
		return domain.Order{}, domain.Invalid("order id is empty")
	}
	if !hasDesk {
		return domain.Order{}, domain.Invalid("desk is required")
	}

	// 6. Duplicate ids conflict, nothing is written
	for _, o := range existing {
		if o.ID == id {
			return domain.Order{}, fmt.Errorf("order %s: %w", id, domain.ErrConflict)
		}
	}

	// 7. Defaults
	ts := p.Timestamp
	if ts == "" {
		ts = nowISO()
	}
	status := p.Status
	if status == "" {
		status = domain.StatusPending
	}

	// 8. The dashboard sends the staff name under serviceAreaName
	teaboy := p.TeaboyName
	if teaboy == "" {
		teaboy = p.ServiceAreaName
	}

	return domain.Order{
		ID:            id,
		Desk:          desk,
		Items:         items,
		ItemsDetailed: details,
		Status:        status,
		Timestamp:     ts,
		TeaboyName:    teaboy,
	}, nil
}

// mergeUpdate lays upd's supplied fields over cur. The id is pinned to
// the stored record; startedAt/completedAt are backfilled on status
// transitions when the payload did not carry them.
func mergeUpdate(cur domain.Order, upd domain.OrderUpdate) domain.Order {
	if desk, ok := asString(upd.Desk); ok {
		cur.Desk = desk
	}
	if upd.Items != nil {
		items := *upd.Items
		if items == nil {
			items = []string{}
		}
		cur.Items = items
	}
	if upd.StartedAt != nil {
		cur.StartedAt = *upd.StartedAt
	}
	if upd.CompletedAt != nil {
		cur.CompletedAt = *upd.CompletedAt
	}
	if upd.TeaboyName != nil {
		cur.TeaboyName = *upd.TeaboyName
	}
	if upd.ServiceAreaName != nil && cur.TeaboyName == "" {
		cur.TeaboyName = *upd.ServiceAreaName
	}
	if upd.Status != nil {
		cur.Status = *upd.Status
		switch cur.Status {
		case domain.StatusInProgress:
			if cur.StartedAt == "" {
				cur.StartedAt = nowISO()
			}
		case domain.StatusCompleted:
			if cur.CompletedAt == "" {
				cur.CompletedAt = nowISO()
			}
		}
	}
	return cur
}

// generateOrderID produces ORD-<epoch millis>-<0..9999>, retrying
// until the candidate is absent from the existing collection.
func generateOrderID(existing []domain.Order) string {
	taken := make(map[string]struct{}, len(existing))
	for _, o := range existing {
		taken[o.ID] = struct{}{}
	}
	for {
		id := fmt.Sprintf("ORD-%d-%d", time.Now().UnixMilli(), rand.Intn(10000))
		if _, dup := taken[id]; !dup {
			return id
		}
	}
}

// itemsFrom accepts the payload's items field only when it actually is
// a sequence; elements are coerced to strings, non-coercible ones are
// skipped.
func itemsFrom(v any) ([]string, bool) {
	switch seq := v.(type) {
	case []string:
		return append([]string{}, seq...), true
	case []any:
		items := make([]string, 0, len(seq))
		for _, e := range seq {
			if s, ok := asString(e); ok {
				items = append(items, s)
			}
		}
		return items, true
	default:
		return nil, false
	}
}

func detailsFrom(payload []domain.ItemDetailPayload) []domain.OrderItemDetail {
	if len(payload) == 0 {
		return nil
	}
	details := make([]domain.OrderItemDetail, 0, len(payload))
	for _, d := range payload {
		name := firstString(d.Name, d.Value, d.ID)
		if name == "" {
			// no usable display name, skip the row
			continue
		}
		id, _ := asString(d.ID)
		value, _ := asString(d.Value)
		qty, _ := asInt(d.Quantity)
		details = append(details, domain.OrderItemDetail{ID: id, Name: name, Value: value, Quantity: qty})
	}
	return details
}

// expandDetails turns each detail row into quantity repeated copies of
// its name. Non-positive quantities contribute nothing.
func expandDetails(details []domain.OrderItemDetail) []string {
	items := []string{}
	for _, d := range details {
		for i := 0; i < d.Quantity; i++ {
			items = append(items, d.Name)
		}
	}
	return items
}

func firstString(candidates ...any) string {
	for _, c := range candidates {
		if s, ok := asString(c); ok && s != "" {
			return s
		}
	}
	return ""
}

// asString coerces the JSON scalar types the client is known to send.
// ok is false for nil and for non-scalar values.
func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func nowISO() string { return time.Now().UTC().Format(time.RFC3339) }
