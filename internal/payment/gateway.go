package payment

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

type Gateway interface {
	CreateCharge(
		ctx context.Context,
		referenceID string,
		payerEmail string,
		amount decimal.Decimal,
		items []ChargeItem,
	) (*ChargeResponse, error)
	GetChargeStatus(ctx context.Context, paymentID string) (*ChargeStatus, error)
	CancelCharge(ctx context.Context, paymentID string) error
	VerifySignature(r *http.Request) error
}

// StatusChecker is the slice of the gateway the poller needs.
type StatusChecker interface {
	GetChargeStatus(ctx context.Context, paymentID string) (*ChargeStatus, error)
}
