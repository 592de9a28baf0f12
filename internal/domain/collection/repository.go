package collection

import (
	"context"

	"shopfolders/backend/internal/domain/product"
)

// Store defines the persistence primitives the membership synchronizer and
// the read path compose.
type Store interface {
	// Create inserts a new collection row and fills in its assigned id.
	// Membership is written separately via ReplaceMembership.
	Create(ctx context.Context, c *Collection) error
	// UpdateFields rewrites name and priority for an existing collection.
	// Returns ErrNotFound when the id does not resolve.
	UpdateFields(ctx context.Context, c *Collection) error
	// ReplaceMembership discards every membership row of the collection and
	// installs productIDs in the given order. Callers that need the
	// delete-then-insert to be atomic must run it inside a TxRunner.
	ReplaceMembership(ctx context.Context, collectionID int64, productIDs []string) error
	// Delete removes a collection and, by cascade, its membership rows.
	Delete(ctx context.Context, id int64) error

	GetByID(ctx context.Context, id int64) (*Collection, error)
	ListAll(ctx context.Context) ([]*Summary, error)
}

// Tx groups transaction-bound stores handed to an InTx callback. Everything
// done through them commits or rolls back as one unit.
type Tx struct {
	Products    product.Repository
	Collections Store
}

// TxRunner runs fn inside a single storage transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}
