package models_test

import (
	"testing"

	"shoplite/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCartTotal(t *testing.T) {

	t.Run("Sums Price Times Quantity", func(t *testing.T) {
		cart := &models.Cart{
			Items: []models.CartItem{
				{ProductID: uuid.New(), Price: 10, Quantity: 2},
				{ProductID: uuid.New(), Price: 5, Quantity: 1},
			},
		}

		assert.InDelta(t, 25.0, cart.Total(), 1e-9)
	})

	t.Run("Empty Cart Totals Zero", func(t *testing.T) {
		cart := &models.Cart{Items: []models.CartItem{}}

		assert.Zero(t, cart.Total())
	})
}

func TestCartFindItem(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	cart := &models.Cart{
		Items: []models.CartItem{
			{ProductID: first, Quantity: 1},
			{ProductID: second, Quantity: 3},
		},
	}

	assert.Equal(t, 0, cart.FindItem(first))
	assert.Equal(t, 1, cart.FindItem(second))
	assert.Equal(t, -1, cart.FindItem(uuid.New()))
}

func TestDefaultCatalog(t *testing.T) {
	seeds := models.DefaultCatalog()

	assert.Len(t, seeds, 4)
	assert.Equal(t, "Laptop Pro X", seeds[0].Name)
	assert.InDelta(t, 1499.99, seeds[0].Price, 1e-9)
	assert.InDelta(t, 399.50, seeds[3].Price, 1e-9)

	for _, seed := range seeds {
		assert.NotEmpty(t, seed.Name)
		assert.NotEmpty(t, seed.Description)
		assert.NotEmpty(t, seed.Image)
		assert.Greater(t, seed.Price, 0.0)
	}
}
