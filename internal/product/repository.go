package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"minecart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uint, onlyActive bool) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, slug, name, description, kind, price, seller_id, image_url, active, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Slug, &p.Name, &p.Description, &p.Kind, &p.Price,
		&p.SellerID, &p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (slug, name, description, kind, price, seller_id, image_url, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		RETURNING `+productColumns,
		p.Slug, p.Name, p.Description, p.Kind, p.Price, p.SellerID, p.ImageURL,
	)
	return scanProduct(row)
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, image_url = $4, active = $5, updated_at = NOW()
		WHERE id = $6
	`, p.Name, p.Description, p.Price, p.ImageURL, p.Active, p.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uint, onlyActive bool) (*Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if onlyActive {
		q += ` AND active = TRUE`
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug = $1 AND active = TRUE`, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	log := logger.FromCtx(ctx)

	var (
		conds = []string{"active = TRUE"}
		args  []any
	)

	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	q := fmt.Sprintf(
		`SELECT %s FROM products WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, strings.Join(conds, " AND "), len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("db: failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
