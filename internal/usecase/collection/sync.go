package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "shopfolders/backend/internal/domain/collection"
	productdomain "shopfolders/backend/internal/domain/product"

	"go.uber.org/zap"
)

// ProductRef is one requested member as supplied by the product picker. The
// core only checks structural well-formedness; it never validates the id
// against the live catalog.
type ProductRef struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL *string `json:"imageUrl"`
}

// SaveInput carries a full collection write. A nil CollectionID means create;
// otherwise the named collection is updated and its membership replaced
// wholesale.
type SaveInput struct {
	CollectionID *int64
	Name         string
	Priority     domain.Priority
	Products     []ProductRef
}

// Synchronizer is the single write path for a collection's content. Every
// referenced product is materialized in the product store before a membership
// row may point at it, and the whole write commits or rolls back as one unit.
type Synchronizer struct {
	tx      domain.TxRunner
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewSynchronizer constructs a synchronizer.
func NewSynchronizer(tx domain.TxRunner, logger *zap.Logger) *Synchronizer {
	return &Synchronizer{
		tx:      tx,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Save validates the input, then creates or updates the collection inside a
// single transaction: upsert every referenced product, write the collection
// row, replace its membership. Validation failures abort before any side
// effect; storage failures roll the whole write back.
func (s *Synchronizer) Save(ctx context.Context, input SaveInput) (int64, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return 0, domain.ErrNameRequired
	}
	if len(input.Products) == 0 {
		return 0, domain.ErrProductsRequired
	}
	for _, ref := range input.Products {
		if strings.TrimSpace(ref.ID) == "" {
			return 0, fmt.Errorf("%w: entry without id", domain.ErrProductsRequired)
		}
	}
	if !input.Priority.Valid() {
		return 0, domain.ErrInvalidPriority
	}

	var collectionID int64
	err := s.tx.InTx(ctx, func(tx domain.Tx) error {
		// Resolve requested members in input order, one membership row per
		// product id even when the caller listed it twice.
		memberIDs := make([]string, 0, len(input.Products))
		seen := make(map[string]struct{}, len(input.Products))
		for _, ref := range input.Products {
			stored, err := tx.Products.UpsertIfAbsent(ctx, &productdomain.Product{
				ID:       strings.TrimSpace(ref.ID),
				Title:    ref.Title,
				ImageURL: ref.ImageURL,
			})
			if err != nil {
				return fmt.Errorf("upsert product %q: %w", ref.ID, err)
			}
			if _, dup := seen[stored.ID]; dup {
				continue
			}
			seen[stored.ID] = struct{}{}
			memberIDs = append(memberIDs, stored.ID)
		}

		if input.CollectionID == nil {
			col := &domain.Collection{
				Name:      name,
				Priority:  input.Priority,
				CreatedAt: s.nowFunc().UTC(),
			}
			if err := tx.Collections.Create(ctx, col); err != nil {
				return err
			}
			collectionID = col.ID
		} else {
			collectionID = *input.CollectionID
			col := &domain.Collection{
				ID:       collectionID,
				Name:     name,
				Priority: input.Priority,
			}
			if err := tx.Collections.UpdateFields(ctx, col); err != nil {
				return err
			}
		}

		return tx.Collections.ReplaceMembership(ctx, collectionID, memberIDs)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("collection save failed",
				zap.Int64p("collectionId", input.CollectionID),
				zap.Error(err),
			)
		}
		return 0, err
	}
	return collectionID, nil
}
