package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is a frozen copy of a cart line as submitted by the client at
// checkout. Prices and names reflect what the client sent, not the live
// catalog.
type OrderItem struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Name      string    `json:"name"      validate:"required"`
	Quantity  int       `json:"quantity"  validate:"required,min=1"`
	Price     float64   `json:"price"     validate:"gte=0"`
	Image     string    `json:"image"`
}

// Order is immutable once created. There is no status lifecycle in scope.
type Order struct {
	ID          uuid.UUID   `json:"id"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CreateOrderRequest is the checkout payload. TotalAmount is a pointer so a
// missing total can be distinguished from a legitimate zero.
type CreateOrderRequest struct {
	Items       []OrderItem `json:"items"       validate:"required,min=1,dive"`
	TotalAmount *float64    `json:"totalAmount" validate:"required,gte=0"`
}
