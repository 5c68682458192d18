package order

import "time"

// Order lifecycle statuses (closed set).
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var statuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusDelivered: true,
	StatusCancelled: true,
}

func ValidStatus(s string) bool { return statuses[s] }

type Order struct {
	ID          string    `json:"id"`
	TotalAmount string    `json:"total_amount"` // NUMERIC -> string
	TotalItems  int       `json:"total_items"`
	Status      string    `json:"status"`
	Paid        bool      `json:"paid"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Item struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"` // snapshot at creation, never recomputed
	// Name comes from the product catalog at read time; it is not persisted.
	Name string `json:"name,omitempty"`
}
