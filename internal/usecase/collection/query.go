package collection

import (
	"context"

	domain "shopfolders/backend/internal/domain/collection"
	productdomain "shopfolders/backend/internal/domain/product"
)

// Detail is a collection joined with its resolved member products, ordered
// the way the membership was most recently written.
type Detail struct {
	domain.Collection
	Products []*productdomain.Product `json:"products"`
}

// Reader composes the read path: collections plus their products, purely for
// retrieval.
type Reader struct {
	collections domain.Store
	products    productdomain.Repository
}

// NewReader constructs a reader over pool-bound stores.
func NewReader(collections domain.Store, products productdomain.Repository) *Reader {
	return &Reader{
		collections: collections,
		products:    products,
	}
}

// Get fetches one collection with its members resolved to full product
// records, preserving membership order.
func (r *Reader) Get(ctx context.Context, id int64) (*Detail, error) {
	col, err := r.collections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fetched, err := r.products.GetByIDs(ctx, col.ProductIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*productdomain.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}

	products := make([]*productdomain.Product, 0, len(col.ProductIDs))
	for _, productID := range col.ProductIDs {
		if p, ok := byID[productID]; ok {
			products = append(products, p)
		}
	}

	return &Detail{Collection: *col, Products: products}, nil
}

// List returns every collection with its membership count for the overview
// table.
func (r *Reader) List(ctx context.Context) ([]*domain.Summary, error) {
	return r.collections.ListAll(ctx)
}
