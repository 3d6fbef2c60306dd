package domain

// OrderPayload is the loosely-typed shape the web client submits.
// Fields the client is known to send with inconsistent types (numbers
// for desk ids, missing items arrays) are decoded as `any` and coerced
// by the normalizer.
type OrderPayload struct {
	ID              any                 `json:"id"`
	Desk            any                 `json:"desk"`
	Items           any                 `json:"items"`
	ItemsDetailed   []ItemDetailPayload `json:"itemsDetailed"`
	Status          string              `json:"status"`
	Timestamp       string              `json:"timestamp"`
	TeaboyName      string              `json:"teaboyName"`
	ServiceAreaName string              `json:"serviceAreaName"`
}

// ItemDetailPayload mirrors the dashboard's detailed item rows. The
// display name may arrive under name, value or id.
type ItemDetailPayload struct {
	ID       any `json:"id"`
	Name     any `json:"name"`
	Value    any `json:"value"`
	Quantity any `json:"quantity"`
}

// OrderUpdate carries a partial modification of an existing order.
// Absent fields (nil pointers) leave the stored value untouched.
type OrderUpdate struct {
	Desk            any       `json:"desk"`
	Items           *[]string `json:"items"`
	Status          *string   `json:"status"`
	StartedAt       *string   `json:"startedAt"`
	CompletedAt     *string   `json:"completedAt"`
	TeaboyName      *string   `json:"teaboyName"`
	ServiceAreaName *string   `json:"serviceAreaName"`
}

type RatingRequest struct {
	Stars  int    `json:"stars"`
	Review string `json:"review"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}
