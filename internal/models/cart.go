package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of the cart. Name, price and image are denormalized
// snapshots of the product, frozen at the moment the item was added; they are
// never re-read from the catalog afterwards.
type CartItem struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Quantity  int       `json:"quantity"`
}

// Cart is the single global cart shared by all clients. Items keep insertion
// order; at most one line exists per product. A quantity is never persisted
// as zero or negative — updating a line to zero removes it instead.
type Cart struct {
	ID        uuid.UUID  `json:"id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total sums price×quantity over all lines. Pure; display formatting is the
// client's concern.
func (c *Cart) Total() float64 {

	var total float64

	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}

	return total
}

// FindItem returns the index of the line for productID, or -1.
func (c *Cart) FindItem(productID uuid.UUID) int {

	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}

	return -1
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity"  validate:"omitempty,min=1"`
}

// UpdateQuantityRequest carries the new absolute quantity for a cart line.
// Quantity is a pointer so that a missing field can be told apart from an
// explicit zero: zero is a valid value and deletes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0"`
}
