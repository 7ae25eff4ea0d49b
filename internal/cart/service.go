package cart

import (
	"context"
	"time"

	"minecart-be/internal/cache"
	"minecart-be/internal/logger"
	"minecart-be/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	AddToCart(ctx context.Context, params AddToCartParams) (*CartItem, error)
	GetCart(ctx context.Context, userID uint) ([]*CartItem, error)
	UpdateCartQuantity(ctx context.Context, params UpdateQuantityParams) error
	RemoveFromCart(ctx context.Context, params RemoveParams) error
	ClearCart(ctx context.Context, userID uint) error
	Snapshot(ctx context.Context, userID uint) (*Snapshot, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
	views       cache.Invalidator
}

// NewService creates a new cart service
func NewService(repo Repository, productRepo product.Repository, views cache.Invalidator) Service {
	return &service{repo: repo, productRepo: productRepo, views: views}
}

// AddToCart adds a product to a user's cart, merging quantities on repeat adds.
func (s *service) AddToCart(ctx context.Context, params AddToCartParams) (*CartItem, error) {
	if params.UserID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	if params.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	// 1. Only active products can be added
	p, err := s.productRepo.GetByID(ctx, params.ProductID, true)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	// 2. Merge with an existing line if present
	existing, err := s.repo.GetCartItemByUserAndProduct(ctx, params.UserID, params.ProductID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		finalQty := existing.Quantity + params.Quantity
		if err := s.repo.UpdateCartItemQuantity(ctx, existing.ID, finalQty); err != nil {
			return nil, err
		}
		existing.Quantity = finalQty
		s.views.Invalidate(cache.ScopeCart, params.UserID)
		return existing, nil
	}

	// 3. New line: unit price is captured at add time
	item, err := s.repo.CreateCartItem(ctx, params, p.Price.StringFixed(2))
	if err != nil {
		return nil, err
	}

	s.views.Invalidate(cache.ScopeCart, params.UserID)
	return item, nil
}

func (s *service) GetCart(ctx context.Context, userID uint) ([]*CartItem, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	return s.repo.GetCartRows(ctx, userID)
}

// UpdateCartQuantity updates the quantity of a product line; zero or less removes it.
func (s *service) UpdateCartQuantity(ctx context.Context, params UpdateQuantityParams) error {
	if params.UserID == 0 {
		return ErrUserNotAuthenticated
	}

	defer s.views.Invalidate(cache.ScopeCart, params.UserID)

	if params.Quantity <= 0 {
		return s.repo.RemoveFromCart(ctx, RemoveParams{
			UserID:    params.UserID,
			ProductID: params.ProductID,
		})
	}

	return s.repo.UpdateCartQuantity(ctx, params)
}

func (s *service) RemoveFromCart(ctx context.Context, params RemoveParams) error {
	if params.UserID == 0 {
		return ErrUserNotAuthenticated
	}

	if err := s.repo.RemoveFromCart(ctx, params); err != nil {
		return err
	}
	s.views.Invalidate(cache.ScopeCart, params.UserID)
	return nil
}

func (s *service) ClearCart(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}

	if err := s.repo.ClearCart(ctx, userID); err != nil {
		return err
	}
	s.views.Invalidate(cache.ScopeCart, userID)
	return nil
}

// Snapshot freezes the cart for checkout. The total is recomputed here;
// every subtotal and the grand total are rounded to two decimal places.
func (s *service) Snapshot(ctx context.Context, userID uint) (*Snapshot, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Snapshot"),
		zap.Uint("user_id", userID),
	)

	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}

	rows, err := s.repo.GetCartRows(ctx, userID)
	if err != nil {
		log.Error("failed to load cart rows", zap.Error(err))
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrCartEmpty
	}

	items := make([]SnapshotItem, 0, len(rows))
	total := decimal.Zero

	for _, r := range rows {
		if r.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}

		subtotal := r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity))).Round(2)
		total = total.Add(subtotal)

		items = append(items, SnapshotItem{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			UnitPrice:   r.UnitPrice,
			Quantity:    r.Quantity,
			Subtotal:    subtotal,
		})
	}

	log.Info("cart snapshot captured",
		zap.Int("item_count", len(items)),
		zap.String("total", total.StringFixed(2)),
	)

	return &Snapshot{
		Items:      items,
		Total:      total.Round(2),
		Currency:   "BRL",
		CapturedAt: time.Now(),
	}, nil
}
