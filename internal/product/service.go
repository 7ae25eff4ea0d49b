package product

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"minecart-be/internal/cache"
	"minecart-be/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, sellerID uint, input NewProductInput) (*Product, error)
	Update(ctx context.Context, sellerID uint, productID uint, input UpdateProductInput) (*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
}

type service struct {
	repo  Repository
	views *cache.Store
}

func NewService(repo Repository, views *cache.Store) Service {
	return &service{repo: repo, views: views}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	s := slugCleaner.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	// short random suffix keeps slugs unique without a retry loop
	return s + "-" + uuid.NewString()[:8]
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return price.Round(2), nil
}

func (s *service) Create(ctx context.Context, sellerID uint, input NewProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.Uint("seller_id", sellerID),
	)

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrEmptyName
	}
	if !input.Kind.Valid() {
		return nil, ErrInvalidKind
	}

	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, err
	}

	p := &Product{
		Slug:        slugify(input.Name),
		Name:        input.Name,
		Description: input.Description,
		Kind:        input.Kind,
		Price:       price,
		SellerID:    sellerID,
		ImageURL:    input.ImageURL,
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	s.views.InvalidateScope(cache.ScopeProducts)

	log.Info("product created", zap.Uint("product_id", created.ID), zap.String("slug", created.Slug))
	return created, nil
}

func (s *service) Update(ctx context.Context, sellerID uint, productID uint, input UpdateProductInput) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID, false)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	if p.SellerID != sellerID {
		return nil, ErrNotProductOwner
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrEmptyName
		}
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		price, err := parsePrice(*input.Price)
		if err != nil {
			return nil, err
		}
		p.Price = price
	}
	if input.ImageURL != nil {
		p.ImageURL = input.ImageURL
	}
	if input.Active != nil {
		p.Active = *input.Active
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.views.InvalidateScope(cache.ScopeProducts)
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	key := listKey(filter)
	if v, ok := s.views.Get(cache.ScopeProducts, 0, key); ok {
		return v.([]*Product), nil
	}

	out, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	s.views.Set(cache.ScopeProducts, 0, key, out)
	return out, nil
}

func listKey(f ListFilter) string {
	kind, search := "", ""
	if f.Kind != nil {
		kind = string(*f.Kind)
	}
	if f.Search != nil {
		search = *f.Search
	}
	return fmt.Sprintf("list:%s:%s:%d:%d", kind, search, f.Limit, f.Page)
}
