package domain

// OrderEvent is the message published to the orders exchange on order
// creation and status changes, consumed by the staff dashboard feed.
type OrderEvent struct {
	Company    string   `json:"company"`
	OrderID    string   `json:"order_id"`
	Desk       string   `json:"desk"`
	Items      []string `json:"items"`
	Status     string   `json:"status"`
	TeaboyName string   `json:"teaboy_name,omitempty"`
	Timestamp  string   `json:"timestamp"`
}
