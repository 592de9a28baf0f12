package collection

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates a collection could not be located.
	ErrNotFound = errors.New("collection not found")
	// ErrNameRequired signals a write with an empty name.
	ErrNameRequired = errors.New("name is required")
	// ErrProductsRequired signals a write with no usable products.
	ErrProductsRequired = errors.New("at least one product is required")
	// ErrInvalidPriority indicates a priority outside the supported set.
	ErrInvalidPriority = errors.New("invalid priority")
)

// Priority ranks a collection for merchandising purposes.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// ParsePriority normalises and validates a raw priority value.
func ParsePriority(raw string) (Priority, error) {
	switch Priority(strings.ToUpper(strings.TrimSpace(raw))) {
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
}

// Valid reports whether the priority is one of the supported tiers.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Collection is a named, prioritised grouping of products. ProductIDs holds
// the membership in stored order; membership is owned exclusively by the
// collection and replaced wholesale on every update.
type Collection struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Priority   Priority  `json:"priority"`
	CreatedAt  time.Time `json:"createdAt"`
	ProductIDs []string  `json:"-"`
}

// Summary is the listing view of a collection: the overview table only needs
// the membership count, not the resolved products.
type Summary struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Priority     Priority  `json:"priority"`
	CreatedAt    time.Time `json:"createdAt"`
	ProductCount int       `json:"productCount"`
}
