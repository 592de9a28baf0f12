package postgres

import (
	"context"
	"errors"

	domain "shopfolders/backend/internal/domain/collection"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CollectionRepository persists collections and their membership rows in
// PostgreSQL.
type CollectionRepository struct {
	db dbtx
}

// NewCollectionRepository constructs a pool-bound repository.
func NewCollectionRepository(pool *pgxpool.Pool) *CollectionRepository {
	return &CollectionRepository{db: pool}
}

// Create inserts a new collection row and fills in the assigned id.
func (r *CollectionRepository) Create(ctx context.Context, c *domain.Collection) error {
	const query = `
INSERT INTO collections (name, priority, created_at)
VALUES ($1, $2, $3)
RETURNING id
`
	return r.db.QueryRow(ctx, query, c.Name, c.Priority, c.CreatedAt).Scan(&c.ID)
}

// UpdateFields rewrites name and priority for an existing collection.
func (r *CollectionRepository) UpdateFields(ctx context.Context, c *domain.Collection) error {
	const query = `
UPDATE collections
SET name = $2, priority = $3
WHERE id = $1
`
	ct, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Priority)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceMembership discards the collection's membership rows and installs
// productIDs in order. Run it through Database.InTx together with the field
// update so readers never observe the gap between delete and insert.
func (r *CollectionRepository) ReplaceMembership(ctx context.Context, collectionID int64, productIDs []string) error {
	const del = `DELETE FROM collection_products WHERE collection_id = $1`
	if _, err := r.db.Exec(ctx, del, collectionID); err != nil {
		return err
	}

	const insert = `
INSERT INTO collection_products (collection_id, product_id, position)
VALUES ($1, $2, $3)
`
	for i, productID := range productIDs {
		if _, err := r.db.Exec(ctx, insert, collectionID, productID, i); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a collection; its membership rows go with it by cascade.
func (r *CollectionRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM collections WHERE id = $1`
	ct, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID fetches a collection together with its member ids in stored order.
// One statement reads both the row and its membership, so the result is a
// single snapshot even while a concurrent save commits in between.
func (r *CollectionRepository) GetByID(ctx context.Context, id int64) (*domain.Collection, error) {
	const query = `
SELECT c.id, c.name, c.priority, c.created_at,
       COALESCE(array_agg(cp.product_id ORDER BY cp.position) FILTER (WHERE cp.product_id IS NOT NULL), '{}'::text[])
FROM collections c
LEFT JOIN collection_products cp ON cp.collection_id = c.id
WHERE c.id = $1
GROUP BY c.id, c.name, c.priority, c.created_at
`
	var c domain.Collection
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Priority, &c.CreatedAt, &c.ProductIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListAll returns every collection with its membership count.
func (r *CollectionRepository) ListAll(ctx context.Context) ([]*domain.Summary, error) {
	const query = `
SELECT c.id, c.name, c.priority, c.created_at, COUNT(cp.product_id)
FROM collections c
LEFT JOIN collection_products cp ON cp.collection_id = c.id
GROUP BY c.id, c.name, c.priority, c.created_at
ORDER BY c.id ASC
`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*domain.Summary
	for rows.Next() {
		var s domain.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Priority, &s.CreatedAt, &s.ProductCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}
