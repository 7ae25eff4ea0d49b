package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the payment lifecycle as the storefront sees it. The provider
// reports pending/processing/approved/rejected/cancelled; idle, timeout and
// error exist only on our side of the fence.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusCancelled  Status = "cancelled"
	StatusTimeout    Status = "timeout"
	StatusError      Status = "error"
)

// Terminal reports whether no further status change is expected.
func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled, StatusTimeout:
		return true
	}
	return false
}

type Payment struct {
	ID          uint
	OrderID     uint
	ReferenceID string
	PaymentID   string
	PayableCode string
	QRImageURL  string
	PaymentLink string
	Amount      decimal.Decimal
	Status      Status
	Method      string
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ChargeItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// ChargeResponse carries everything the checkout needs to show the PIX
// payment screen: the copy-paste code, the rendered QR, the fallback link
// and the expiration of the code.
type ChargeResponse struct {
	PaymentID   string          `json:"payment_id"`
	ReferenceID string          `json:"reference_id"`
	Amount      decimal.Decimal `json:"amount"`
	Status      Status          `json:"status"`
	PayableCode string          `json:"payable_code"`
	QRImageURL  string          `json:"qr_image_url,omitempty"`
	PaymentLink string          `json:"payment_link,omitempty"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

type ChargeStatus struct {
	Status Status
	PaidAt *time.Time
}
