package cart

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	GetCartItemByUserAndProduct(ctx context.Context, userID, productID uint) (*CartItem, error)
	CreateCartItem(ctx context.Context, params AddToCartParams, unitPrice string) (*CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, cartItemID uint, quantity int) error
	UpdateCartQuantity(ctx context.Context, params UpdateQuantityParams) error
	RemoveFromCart(ctx context.Context, params RemoveParams) error
	ClearCart(ctx context.Context, userID uint) error
	GetCartRows(ctx context.Context, userID uint) ([]*CartItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCartItemByUserAndProduct(ctx context.Context, userID, productID uint) (*CartItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, quantity, unit_price, created_at, updated_at
		FROM carts
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)

	var item CartItem
	err := row.Scan(
		&item.ID, &item.UserID, &item.ProductID,
		&item.Quantity, &item.UnitPrice, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) CreateCartItem(ctx context.Context, params AddToCartParams, unitPrice string) (*CartItem, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, product_id, quantity, unit_price, created_at, updated_at
	`, params.UserID, params.ProductID, params.Quantity, unitPrice)

	var item CartItem
	err := row.Scan(
		&item.ID, &item.UserID, &item.ProductID,
		&item.Quantity, &item.UnitPrice, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) UpdateCartItemQuantity(ctx context.Context, cartItemID uint, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
	`, quantity, cartItemID)
	if err != nil {
		return err
	}
	return ensureAffected(res)
}

func (r *repository) UpdateCartQuantity(ctx context.Context, params UpdateQuantityParams) error {
	if params.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE user_id = $2 AND product_id = $3
	`, params.Quantity, params.UserID, params.ProductID)
	if err != nil {
		return err
	}
	return ensureAffected(res)
}

func (r *repository) RemoveFromCart(ctx context.Context, params RemoveParams) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM carts
		WHERE user_id = $1 AND product_id = $2
	`, params.UserID, params.ProductID)
	if err != nil {
		return err
	}
	return ensureAffected(res)
}

func (r *repository) ClearCart(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}

func (r *repository) GetCartRows(ctx context.Context, userID uint) ([]*CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.id, c.user_id, c.product_id, p.name, p.kind,
			c.quantity, c.unit_price, p.image_url, c.created_at, c.updated_at
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		var item CartItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.ProductName, &item.ProductKind,
			&item.Quantity, &item.UnitPrice, &item.ImageURL, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func ensureAffected(res sql.Result) error {
	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("no matching cart item found")
	}
	return nil
}
