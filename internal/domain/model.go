package domain

// Order statuses as stored on disk and exposed over the API.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

type Order struct {
	ID            string            `json:"id"`
	Desk          string            `json:"desk"`
	Items         []string          `json:"items"`
	ItemsDetailed []OrderItemDetail `json:"itemsDetailed,omitempty"`
	Status        string            `json:"status"`
	Timestamp     string            `json:"timestamp"`
	StartedAt     string            `json:"startedAt,omitempty"`
	CompletedAt   string            `json:"completedAt,omitempty"`
	TeaboyName    string            `json:"teaboyName,omitempty"`
	Rating        *Rating           `json:"rating,omitempty"`
}

type OrderItemDetail struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Value    string `json:"value,omitempty"`
	Quantity int    `json:"quantity"`
}

type Rating struct {
	Stars     int    `json:"stars"`
	Review    string `json:"review,omitempty"`
	Timestamp string `json:"timestamp"`
}

// DeskRegistry is one company's desk configuration document.
type DeskRegistry struct {
	NumDesks int                 `json:"numDesks"`
	Desks    map[string]DeskInfo `json:"desks"`
}

type DeskInfo struct {
	Building string `json:"building"`
	Floor    string `json:"floor"`
	TeaBoy   string `json:"teaBoy"`
}

// DefaultDeskCount is the number of empty desks seeded for a company
// that has never saved a desk registry.
const DefaultDeskCount = 12
