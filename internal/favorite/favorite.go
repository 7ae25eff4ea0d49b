package favorite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"minecart-be/internal/product"
)

var ErrUserNotAuthenticated = errors.New("user not authenticated")

type Favorite struct {
	ID        uint
	UserID    uint
	ProductID uint
	CreatedAt time.Time

	Product *product.Product
}

type Repository interface {
	Add(ctx context.Context, userID, productID uint) error
	Remove(ctx context.Context, userID, productID uint) error
	ListByUser(ctx context.Context, userID uint) ([]*Favorite, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Add(ctx context.Context, userID, productID uint) error {
	// repeat adds are idempotent
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, userID, productID)
	return err
}

func (r *repository) Remove(ctx context.Context, userID, productID uint) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM favorites WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	return err
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Favorite, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT f.id, f.user_id, f.product_id, f.created_at,
		       p.id, p.slug, p.name, p.description, p.kind, p.price,
		       p.seller_id, p.image_url, p.active, p.created_at, p.updated_at
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Favorite
	for rows.Next() {
		f := Favorite{Product: &product.Product{}}
		p := f.Product
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.ProductID, &f.CreatedAt,
			&p.ID, &p.Slug, &p.Name, &p.Description, &p.Kind, &p.Price,
			&p.SellerID, &p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

type Service interface {
	Add(ctx context.Context, userID, productID uint) error
	Remove(ctx context.Context, userID, productID uint) error
	List(ctx context.Context, userID uint) ([]*Favorite, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Add(ctx context.Context, userID, productID uint) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}
	return s.repo.Add(ctx, userID, productID)
}

func (s *service) Remove(ctx context.Context, userID, productID uint) error {
	if userID == 0 {
		return ErrUserNotAuthenticated
	}
	return s.repo.Remove(ctx, userID, productID)
}

func (s *service) List(ctx context.Context, userID uint) ([]*Favorite, error) {
	if userID == 0 {
		return nil, ErrUserNotAuthenticated
	}
	return s.repo.ListByUser(ctx, userID)
}
