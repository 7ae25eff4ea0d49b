package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "slug", "name", "description", "kind", "price",
		"seller_id", "image_url", "active", "created_at", "updated_at",
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := productRows().
			AddRow(1, "creeper-skin-ab12cd34", "Creeper Skin", "a classic", "skin", "15.99",
				9, nil, true, time.Now(), time.Now())

		mock.ExpectQuery("INSERT INTO products").
			WillReturnRows(rows)

		p, err := repo.Create(context.Background(), &Product{
			Slug: "creeper-skin-ab12cd34", Name: "Creeper Skin", Kind: KindSkin,
			Price: decimal.RequireFromString("15.99"), SellerID: 9,
		})
		assert.NoError(t, err)
		assert.Equal(t, uint(1), p.ID)
		assert.True(t, p.Active)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO products").
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), &Product{})
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Found", func(t *testing.T) {
		rows := productRows().
			AddRow(3, "desert-temple-map-x1", "Desert Temple", "", "map", "12.50",
				9, nil, true, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
			WithArgs(uint(3)).
			WillReturnRows(rows)

		p, err := repo.GetByID(context.Background(), 3, true)
		assert.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, KindMap, p.Kind)
		assert.True(t, p.Price.Equal(decimal.RequireFromString("12.50")))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
			WithArgs(uint(99)).
			WillReturnRows(productRows())

		p, err := repo.GetByID(context.Background(), 99, true)
		assert.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), &Product{ID: 3, Name: "Desert Temple v2"})
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), &Product{ID: 99})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	kind := KindSkin

	rows := productRows().
		AddRow(1, "creeper-skin-a", "Creeper Skin", "", "skin", "15.99", 9, nil, true, time.Now(), time.Now()).
		AddRow(2, "enderman-skin-b", "Enderman Skin", "", "skin", "9.90", 9, nil, true, time.Now(), time.Now())

	mock.ExpectQuery("SELECT (.+) FROM products WHERE active = TRUE AND kind").
		WillReturnRows(rows)

	out, err := repo.List(context.Background(), ListFilter{Kind: &kind, Limit: 20, Page: 1})
	assert.NoError(t, err)
	assert.Len(t, out, 2)
}
