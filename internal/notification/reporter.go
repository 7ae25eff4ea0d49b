package notification

import (
	"context"
	"fmt"

	"minecart-be/internal/cache"
	"minecart-be/internal/payment"
)

// Reporter turns poll outcomes into persisted notifications and cache
// invalidations. It is the storefront's status surface for the payment
// confirmation flow.
type Reporter struct {
	notifier Service
	views    cache.Invalidator
}

func NewReporter(notifier Service, views cache.Invalidator) *Reporter {
	return &Reporter{notifier: notifier, views: views}
}

func (r *Reporter) PaymentApproved(ctx context.Context, c payment.Charge, attempts int) {
	// one invalidation per scope: the paid order must show up in the order
	// history and the cart view must drop the purchased items
	r.views.Invalidate(cache.ScopeOrders, c.UserID)
	r.views.Invalidate(cache.ScopeCart, c.UserID)

	_ = r.notifier.Notify(ctx, c.UserID, SeveritySuccess, TypePaymentApproved,
		"Pagamento aprovado! Seu pedido já está disponível para download.",
		PaymentApprovedData{OrderID: c.OrderID},
	)
}

func (r *Reporter) PaymentFailed(ctx context.Context, c payment.Charge, status payment.Status) {
	msg := "Pagamento recusado. Tente novamente ou use outro método."
	if status == payment.StatusCancelled {
		msg = "Pagamento cancelado."
	}

	_ = r.notifier.Notify(ctx, c.UserID, SeverityDestructive, TypePaymentFailed,
		msg,
		PaymentFailedData{OrderID: c.OrderID, Status: string(status)},
	)
}

func (r *Reporter) PollTimedOut(ctx context.Context, c payment.Charge, attempts int) {
	_ = r.notifier.Notify(ctx, c.UserID, SeverityDestructive, TypePollTimeout,
		"Não conseguimos confirmar o pagamento. Verifique o status em Meus Pedidos.",
		PollTimeoutData{OrderID: c.OrderID, Attempts: attempts},
	)
}

func (r *Reporter) StatusCheckFailed(ctx context.Context, c payment.Charge, attempt int, err error) {
	_ = r.notifier.Notify(ctx, c.UserID, SeverityInfo, TypeStatusCheckError,
		fmt.Sprintf("Erro ao verificar o status do pagamento (tentativa %d). Vamos tentar de novo.", attempt),
		StatusCheckErrorData{OrderID: c.OrderID, Attempt: attempt},
	)
}
