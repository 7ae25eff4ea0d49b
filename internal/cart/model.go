package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID          uint
	UserID      uint
	ProductID   uint
	ProductName string
	ProductKind string
	UnitPrice   decimal.Decimal
	Quantity    int
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AddToCartParams struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

type UpdateQuantityParams struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

type RemoveParams struct {
	UserID    uint
	ProductID uint
}

// SnapshotItem is one frozen line of the checkout snapshot.
type SnapshotItem struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Snapshot is the full cart state captured at checkout time.
type Snapshot struct {
	Items      []SnapshotItem  `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
	CapturedAt time.Time       `json:"captured_at"`
}
