package order

import (
	"context"
	"fmt"

	"minecart-be/internal/cache"
	"minecart-be/internal/cart"
	"minecart-be/internal/logger"
	"minecart-be/internal/payment"
	"minecart-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const ordersPageSize = 20

// Watcher starts a background status watch for a charge. Satisfied by the
// payment poller.
type Watcher interface {
	Watch(ctx context.Context, c payment.Charge, onComplete func()) (context.CancelFunc, error)
}

type Service interface {
	Checkout(ctx context.Context, userID uint, snap *cart.Snapshot) (*Descriptor, error)
	GetOrders(ctx context.Context, userID uint, page int) ([]*Order, error)
	GetOrderDetail(ctx context.Context, userID, orderID uint, isAdmin bool) (*Order, error)
	MarkAsPaid(ctx context.Context, referenceID string) error
	MarkAsFailed(ctx context.Context, referenceID string) error
}

type service struct {
	repo        Repository
	paymentRepo payment.Repository
	paymentGate payment.Gateway
	watcher     Watcher
	carts       cart.Service
	views       *cache.Store
}

func NewService(
	repo Repository,
	payRepo payment.Repository,
	payGate payment.Gateway,
	watcher Watcher,
	carts cart.Service,
	views *cache.Store,
) Service {
	return &service{
		repo:        repo,
		paymentRepo: payRepo,
		paymentGate: payGate,
		watcher:     watcher,
		carts:       carts,
		views:       views,
	}
}

// Checkout turns a cart snapshot into a pending order with a PIX charge
// attached. The charge is watched in the background until the gateway
// reports a terminal status.
func (s *service) Checkout(ctx context.Context, userID uint, snap *cart.Snapshot) (*Descriptor, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Uint("user_id", userID),
	)

	// 1. Auth guard before anything touches the gateway
	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	// 2. Validate the snapshot against itself
	if snap == nil || len(snap.Items) == 0 {
		return nil, cart.ErrCartEmpty
	}

	total := decimal.Zero
	items := make([]OrderItem, 0, len(snap.Items))
	chargeItems := make([]payment.ChargeItem, 0, len(snap.Items))

	for _, it := range snap.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidSnapshot)
		}
		if it.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: negative unit price", ErrInvalidSnapshot)
		}

		subtotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
		total = total.Add(subtotal)

		items = append(items, OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    subtotal,
		})
		chargeItems = append(chargeItems, payment.ChargeItem{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
		})
	}

	if !total.Equal(snap.Total) {
		log.Warn("snapshot total mismatch",
			zap.String("client_total", snap.Total.String()),
			zap.String("computed_total", total.String()),
		)
		return nil, ErrTotalMismatch
	}

	// 3. Persist order + line items in one transaction
	order := &Order{
		UserID:      userID,
		ReferenceID: utils.GenerateOrderReference(),
		Status:      StatusPending,
		Total:       total,
		Items:       items,
	}
	if err := s.repo.CreateOrderTx(ctx, order); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}
	s.views.Invalidate(cache.ScopeOrders, userID)

	// 4. Open the PIX charge
	payerEmail := utils.GetUserEmailFromContext(ctx)
	resp, err := s.paymentGate.CreateCharge(ctx, order.ReferenceID, payerEmail, total, chargeItems)
	if err != nil {
		log.Error("failed to create pix charge",
			zap.String("reference_id", order.ReferenceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	// 5. Persist the charge
	p := &payment.Payment{
		OrderID:     order.ID,
		ReferenceID: order.ReferenceID,
		PaymentID:   resp.PaymentID,
		PayableCode: resp.PayableCode,
		QRImageURL:  resp.QRImageURL,
		PaymentLink: resp.PaymentLink,
		Amount:      resp.Amount,
		Status:      resp.Status,
		Method:      "PIX_COPIA_E_COLA",
		ExpiresAt:   resp.ExpiresAt,
	}
	if err := s.paymentRepo.SavePayment(ctx, p); err != nil {
		log.Error("failed to save payment", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
	}

	// 6. Watch the charge in the background. The watch outlives the request,
	// so it must not inherit the request's cancellation.
	charge := payment.Charge{
		OrderID:     order.ID,
		UserID:      userID,
		ReferenceID: order.ReferenceID,
		PaymentID:   resp.PaymentID,
	}
	wctx := context.WithoutCancel(ctx)
	if _, err := s.watcher.Watch(wctx, charge, func() {
		if err := s.carts.ClearCart(wctx, userID); err != nil {
			logger.L().Warn("failed to clear cart after payment",
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
		}
	}); err != nil {
		log.Warn("charge watch not started",
			zap.String("payment_id", resp.PaymentID),
			zap.Error(err),
		)
	}

	log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.String("reference_id", order.ReferenceID),
		zap.String("total", total.StringFixed(2)),
	)

	amount := utils.FormatBRL(total)
	return &Descriptor{
		OrderID:      order.ID,
		ReferenceID:  order.ReferenceID,
		PaymentID:    resp.PaymentID,
		PayableCode:  resp.PayableCode,
		QRImageURL:   resp.QRImageURL,
		PaymentLink:  resp.PaymentLink,
		Amount:       amount,
		Instructions: payment.InstructionsFor(p.Method, amount, resp.PayableCode),
		ExpiresAt:    resp.ExpiresAt,
	}, nil
}

func (s *service) GetOrders(ctx context.Context, userID uint, page int) ([]*Order, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	if page < 1 {
		page = 1
	}

	key := fmt.Sprintf("page:%d", page)
	if v, ok := s.views.Get(cache.ScopeOrders, userID, key); ok {
		if orders, ok := v.([]*Order); ok {
			return orders, nil
		}
	}

	orders, err := s.repo.GetOrders(ctx, userID, ordersPageSize, (page-1)*ordersPageSize)
	if err != nil {
		return nil, err
	}
	s.views.Set(cache.ScopeOrders, userID, key, orders)
	return orders, nil
}

func (s *service) GetOrderDetail(ctx context.Context, userID, orderID uint, isAdmin bool) (*Order, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	order, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

// MarkAsPaid flips the order to approved. Idempotent: a second call for an
// already approved order is a no-op, so the poller and the webhook can both
// land without conflict.
func (s *service) MarkAsPaid(ctx context.Context, referenceID string) error {
	order, err := s.repo.GetByReferenceID(ctx, referenceID)
	if err != nil {
		return err
	}
	if order.Status == StatusApproved {
		return nil
	}

	if err := s.repo.UpdateStatusByReferenceID(ctx, referenceID, StatusApproved); err != nil {
		return err
	}
	s.settlePayment(ctx, referenceID, payment.StatusApproved)
	s.views.Invalidate(cache.ScopeOrders, order.UserID)

	logger.FromCtx(ctx).Info("order marked as paid",
		zap.String("reference_id", referenceID),
	)
	return nil
}

// MarkAsFailed flips the order to rejected unless it already reached a
// terminal status.
func (s *service) MarkAsFailed(ctx context.Context, referenceID string) error {
	order, err := s.repo.GetByReferenceID(ctx, referenceID)
	if err != nil {
		return err
	}
	if order.Status.Terminal() {
		return nil
	}

	if err := s.repo.UpdateStatusByReferenceID(ctx, referenceID, StatusRejected); err != nil {
		return err
	}
	s.settlePayment(ctx, referenceID, payment.StatusRejected)
	s.views.Invalidate(cache.ScopeOrders, order.UserID)

	logger.FromCtx(ctx).Info("order marked as failed",
		zap.String("reference_id", referenceID),
	)
	return nil
}

// settlePayment mirrors the terminal order status onto the payments row so
// status reads stay truthful after the watch ends. The order flip is the
// source of truth, so a failure here only logs.
func (s *service) settlePayment(ctx context.Context, referenceID string, status payment.Status) {
	if err := s.paymentRepo.UpdatePaymentStatusByReference(ctx, referenceID, status); err != nil {
		logger.FromCtx(ctx).Warn("failed to settle payment row",
			zap.String("reference_id", referenceID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}

var _ payment.Finalizer = Service(nil)
