package product

import (
	"context"
	"testing"

	"minecart-be/internal/cache"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Product) (*Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint, onlyActive bool) (*Product, error) {
	args := m.Called(ctx, id, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Product), args.Error(1)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(new(MockRepository), cache.NewStore(8))

	t.Run("EmptyName", func(t *testing.T) {
		_, err := svc.Create(context.Background(), 1, NewProductInput{Name: "  ", Kind: KindSkin, Price: "1.00"})
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("BadKind", func(t *testing.T) {
		_, err := svc.Create(context.Background(), 1, NewProductInput{Name: "x", Kind: Kind("posters"), Price: "1.00"})
		assert.ErrorIs(t, err, ErrInvalidKind)
	})

	t.Run("BadPrice", func(t *testing.T) {
		_, err := svc.Create(context.Background(), 1, NewProductInput{Name: "x", Kind: KindSkin, Price: "-1"})
		assert.ErrorIs(t, err, ErrInvalidPrice)

		_, err = svc.Create(context.Background(), 1, NewProductInput{Name: "x", Kind: KindSkin, Price: "abc"})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestCreateSuccess(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *Product) bool {
		return p.Name == "Creeper Skin" && p.Kind == KindSkin &&
			p.Price.Equal(decimal.RequireFromString("15.99")) && p.SellerID == 9
	})).Return(&Product{ID: 1, Name: "Creeper Skin"}, nil)

	svc := NewService(repo, cache.NewStore(8))
	p, err := svc.Create(context.Background(), 9, NewProductInput{
		Name: "Creeper Skin", Kind: KindSkin, Price: "15.99",
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(1), p.ID)
	repo.AssertExpectations(t)
}

func TestUpdateOwnership(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, uint(3), false).
		Return(&Product{ID: 3, SellerID: 9}, nil)

	svc := NewService(repo, cache.NewStore(8))
	_, err := svc.Update(context.Background(), 5, 3, UpdateProductInput{})

	assert.ErrorIs(t, err, ErrNotProductOwner)
}

func TestListUsesViewCache(t *testing.T) {
	repo := new(MockRepository)
	filter := ListFilter{Limit: 20, Page: 1}
	repo.On("List", mock.Anything, filter).
		Return([]*Product{{ID: 1}}, nil).Once()

	svc := NewService(repo, cache.NewStore(8))

	first, err := svc.List(context.Background(), filter)
	assert.NoError(t, err)

	// second call must be served from cache, repo hit exactly once
	second, err := svc.List(context.Background(), filter)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "List", 1)
}
