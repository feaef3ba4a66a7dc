package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog record. Within this system's scope products are
// immutable after creation; the only write path is catalog seeding.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SeedProduct is one fixed catalog default, inserted when the store is empty.
type SeedProduct struct {
	Name        string
	Description string
	Price       float64
	Image       string
}

// DefaultCatalog returns the deterministic seed set used when the catalog is
// found empty on first read.
func DefaultCatalog() []SeedProduct {
	return []SeedProduct{
		{
			Name:        "Laptop Pro X",
			Description: "High-performance laptop for professionals and creatives.",
			Price:       1499.99,
			Image:       "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxzZWFyY2h8Mnx8Y29tcHV0ZXJ8ZW58MHx8MHx8fDA%3D&w=1000&q=80",
		},
		{
			Name:        "Ergo Wireless Mouse",
			Description: "Ergonomic wireless mouse with customizable buttons.",
			Price:       49.99,
			Image:       "https://images.unsplash.com/photo-1615663245857-ac93bb7c39e7?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxzZWFyY2h8Nnx8bW91c2V8ZW58MHx8MHx8fDA%3D&w=1000&q=80",
		},
		{
			Name:        "RGB Mechanical Keyboard",
			Description: "Backlit RGB mechanical keyboard with tactile switches.",
			Price:       129.99,
			Image:       "https://images.unsplash.com/photo-1587829741301-735c7690534f?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxzZWFyY2h8NHx8a2V5Ym9hcmR8ZW58MHx8MHx8fDA%3D&w=1000&q=80",
		},
		{
			Name:        "4K Ultra HD Monitor",
			Description: "27-inch 4K UHD monitor with vibrant colors.",
			Price:       399.50,
			Image:       "https://images.unsplash.com/photo-1527443154391-507ea9dc60c3?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxzZWFyY2h8MTB8fG1vbml0b3J8ZW58MHx8MHx8fDA%3D&w=1000&q=80",
		},
	}
}
