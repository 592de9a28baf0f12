package product

import "context"

// Repository defines persistence behaviours for products.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	// GetByIDs returns the products for the given ids in unspecified order;
	// ids without a matching row are simply absent from the result.
	GetByIDs(ctx context.Context, ids []string) ([]*Product, error)
	// UpsertIfAbsent creates the product if no row with its id exists and
	// returns the stored record. When the row already exists the stored
	// record is returned unchanged (first write wins). Safe to call
	// concurrently for the same id.
	UpsertIfAbsent(ctx context.Context, p *Product) (*Product, error)
}
