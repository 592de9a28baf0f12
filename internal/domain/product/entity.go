package product

import (
	"errors"
	"time"
)

// ErrNotFound indicates a product could not be located.
var ErrNotFound = errors.New("product not found")

// Product is the minimal catalog record this service keeps locally. The id is
// assigned by the external catalog and is immutable; title and image are
// captured on first reference and never overwritten afterwards.
type Product struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
