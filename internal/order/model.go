package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusCancelled  Status = "cancelled"
	StatusTimeout    Status = "timeout"
	StatusError      Status = "error"
)

// Terminal reports whether the order can no longer change status.
func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled, StatusTimeout:
		return true
	}
	return false
}

type Order struct {
	ID          uint
	UserID      uint
	ReferenceID string
	Status      Status
	Total       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []OrderItem
}

type OrderItem struct {
	ID          uint
	OrderID     uint
	ProductID   uint
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Descriptor is everything the checkout screen needs to collect a PIX
// payment: the copy-paste code, the QR render, the fallback link, the
// step-by-step instructions and the expiration of the charge.
type Descriptor struct {
	OrderID      uint      `json:"order_id"`
	ReferenceID  string    `json:"reference_id"`
	PaymentID    string    `json:"payment_id"`
	PayableCode  string    `json:"payable_code"`
	QRImageURL   string    `json:"qr_image_url,omitempty"`
	PaymentLink  string    `json:"payment_link,omitempty"`
	Amount       string    `json:"amount"`
	Instructions []string  `json:"instructions"`
	ExpiresAt    time.Time `json:"expires_at"`
}
