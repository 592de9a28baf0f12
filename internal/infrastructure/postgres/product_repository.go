package postgres

import (
	"context"
	"errors"

	domain "shopfolders/backend/internal/domain/product"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProductRepository persists products in PostgreSQL.
type ProductRepository struct {
	db dbtx
}

// NewProductRepository constructs a pool-bound repository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: pool}
}

// GetByID fetches a product by id.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const query = `
SELECT id, title, image_url, created_at
FROM products WHERE id = $1
`
	row := r.db.QueryRow(ctx, query, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// GetByIDs fetches every product whose id appears in ids. Missing ids are not
// an error; they are simply absent from the result.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `
SELECT id, title, image_url, created_at
FROM products WHERE id = ANY($1)
`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// UpsertIfAbsent inserts the product unless a row with its id already exists,
// then returns the stored record. The primary key on id is the serialization
// point: a concurrent writer that loses the insert race falls through to the
// read and proceeds with the winner's row.
func (r *ProductRepository) UpsertIfAbsent(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	const query = `
INSERT INTO products (id, title, image_url)
VALUES ($1, $2, $3)
ON CONFLICT (id) DO NOTHING
`
	if _, err := r.db.Exec(ctx, query, p.ID, p.Title, p.ImageURL); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, p.ID)
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.ImageURL,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
