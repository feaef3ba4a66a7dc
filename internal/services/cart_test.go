package service_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	apperrors "shoplite/internal/errors"
	"shoplite/internal/models"
	"shoplite/internal/repositories/mocks"
	service "shoplite/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testProduct(id uuid.UUID) *models.Product {
	return &models.Product{
		ID:    id,
		Name:  "Ergo Wireless Mouse",
		Price: 49.99,
		Image: "https://example.com/mouse.jpg",
	}
}

func cartWith(items ...models.CartItem) *models.Cart {
	if items == nil {
		items = []models.CartItem{}
	}

	return &models.Cart{ID: uuid.New(), Items: items}
}

func TestCartService_GetCart(t *testing.T) {

	t.Run("Returns Existing Cart", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		productRepo := new(mocks.ProductRepository)
		svc := service.NewCartService(cartRepo, productRepo)

		existing := cartWith(models.CartItem{ProductID: uuid.New(), Quantity: 2})
		cartRepo.On("GetCart", mock.Anything).Return(existing, nil)

		// Act
		cart, err := svc.GetCart(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, existing.ID, cart.ID)
		cartRepo.AssertNotCalled(t, "CreateCart", mock.Anything, mock.Anything)
	})

	t.Run("Creates Cart When None Exists", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		productRepo := new(mocks.ProductRepository)
		svc := service.NewCartService(cartRepo, productRepo)

		cartRepo.On("GetCart", mock.Anything).Return(nil, sql.ErrNoRows)
		cartRepo.On("CreateCart", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil)

		// Act
		cart, err := svc.GetCart(context.Background())

		// Assert
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, cart.ID)
		assert.Empty(t, cart.Items)
		cartRepo.AssertExpectations(t)
	})
}

func TestCartService_AddItem(t *testing.T) {
	productID := uuid.New()

	t.Run("Appends New Line With Product Snapshot", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		productRepo := new(mocks.ProductRepository)
		svc := service.NewCartService(cartRepo, productRepo)

		productRepo.On("GetProductByID", mock.Anything, productID).Return(testProduct(productID), nil)
		cartRepo.On("GetCart", mock.Anything).Return(cartWith(), nil)
		cartRepo.On("UpdateCart", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil)

		// Act
		cart, err := svc.AddItem(context.Background(), &models.AddItemRequest{ProductID: productID, Quantity: 2})

		// Assert
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, productID, cart.Items[0].ProductID)
		assert.Equal(t, "Ergo Wireless Mouse", cart.Items[0].Name)
		assert.InDelta(t, 49.99, cart.Items[0].Price, 1e-9)
		assert.Equal(t, 2, cart.Items[0].Quantity)
	})

	t.Run("Merges Quantity Into Existing Line", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		productRepo := new(mocks.ProductRepository)
		svc := service.NewCartService(cartRepo, productRepo)

		existing := cartWith(models.CartItem{ProductID: productID, Name: "Ergo Wireless Mouse", Price: 49.99, Quantity: 1})
		productRepo.On("GetProductByID", mock.Anything, productID).Return(testProduct(productID), nil)
		cartRepo.On("GetCart", mock.Anything).Return(existing, nil)
		cartRepo.On("UpdateCart", mock.Anything, mock.MatchedBy(func(c *models.Cart) bool {
			return len(c.Items) == 1 && c.Items[0].Quantity == 3
		})).Return(nil)

		// Act
		cart, err := svc.AddItem(context.Background(), &models.AddItemRequest{ProductID: productID, Quantity: 2})

		// Assert
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 3, cart.Items[0].Quantity)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Defaults Quantity To One", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		productRepo := new(mocks.ProductRepository)
		svc := service.NewCartService(cartRepo, productRepo)

		productRepo.On("GetProductByID", mock.Anything, productID).Return(testProduct(productID), nil)
		cartRepo.On("GetCart", mock.Anything).Return(cartWith(), nil)
		cartRepo.On("UpdateCart", mock.Anything, mock.Anything).Return(nil)

		// Act
		cart, err := svc.AddItem(context.Background(), &models.AddItemRequest{ProductID: productID})

		// Assert
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 1, cart.Items[0].Quantity)
	})

	t.Run("Unknown Product Returns NotFound", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		productRepo := new(mocks.ProductRepository)
		svc := service.NewCartService(cartRepo, productRepo)

		productRepo.On("GetProductByID", mock.Anything, productID).Return(nil, sql.ErrNoRows)

		// Act
		cart, err := svc.AddItem(context.Background(), &models.AddItemRequest{ProductID: productID, Quantity: 1})

		// Assert
		require.Error(t, err)
		assert.Nil(t, cart)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Product not found", appErr.Message)
		cartRepo.AssertNotCalled(t, "UpdateCart", mock.Anything, mock.Anything)
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	productID := uuid.New()

	t.Run("Overwrites Quantity", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		svc := service.NewCartService(cartRepo, new(mocks.ProductRepository))

		existing := cartWith(models.CartItem{ProductID: productID, Quantity: 3})
		cartRepo.On("GetCart", mock.Anything).Return(existing, nil)
		cartRepo.On("UpdateCart", mock.Anything, mock.MatchedBy(func(c *models.Cart) bool {
			return len(c.Items) == 1 && c.Items[0].Quantity == 1
		})).Return(nil)

		// Act
		cart, err := svc.UpdateQuantity(context.Background(), productID, 1)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, cart.Items[0].Quantity)
		cartRepo.AssertExpectations(t)
	})

	t.Run("Zero Quantity Removes Line", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		svc := service.NewCartService(cartRepo, new(mocks.ProductRepository))

		existing := cartWith(models.CartItem{ProductID: productID, Quantity: 3})
		cartRepo.On("GetCart", mock.Anything).Return(existing, nil)
		cartRepo.On("UpdateCart", mock.Anything, mock.Anything).Return(nil)

		// Act
		cart, err := svc.UpdateQuantity(context.Background(), productID, 0)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, cart.Items)
	})

	t.Run("Negative Quantity Is Rejected", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		svc := service.NewCartService(cartRepo, new(mocks.ProductRepository))

		// Act
		cart, err := svc.UpdateQuantity(context.Background(), productID, -1)

		// Assert
		require.Error(t, err)
		assert.Nil(t, cart)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
		assert.Equal(t, "Invalid quantity provided", appErr.Message)
		cartRepo.AssertNotCalled(t, "GetCart", mock.Anything)
	})

	t.Run("Missing Line Returns NotFound", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		svc := service.NewCartService(cartRepo, new(mocks.ProductRepository))

		cartRepo.On("GetCart", mock.Anything).Return(cartWith(), nil)

		// Act
		cart, err := svc.UpdateQuantity(context.Background(), productID, 2)

		// Assert
		require.Error(t, err)
		assert.Nil(t, cart)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Item not found in cart", appErr.Message)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	productID := uuid.New()

	t.Run("Removes Existing Line", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		svc := service.NewCartService(cartRepo, new(mocks.ProductRepository))

		existing := cartWith(
			models.CartItem{ProductID: productID, Quantity: 1},
			models.CartItem{ProductID: uuid.New(), Quantity: 4},
		)
		cartRepo.On("GetCart", mock.Anything).Return(existing, nil)
		cartRepo.On("UpdateCart", mock.Anything, mock.Anything).Return(nil)

		// Act
		cart, err := svc.RemoveItem(context.Background(), productID)

		// Assert
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.NotEqual(t, productID, cart.Items[0].ProductID)
	})

	t.Run("Miss Returns NotFound And Current Cart", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		svc := service.NewCartService(cartRepo, new(mocks.ProductRepository))

		other := models.CartItem{ProductID: uuid.New(), Quantity: 2}
		cartRepo.On("GetCart", mock.Anything).Return(cartWith(other), nil)

		// Act
		cart, err := svc.RemoveItem(context.Background(), productID)

		// Assert
		require.Error(t, err)
		require.NotNil(t, cart)
		assert.Len(t, cart.Items, 1)

		appErr, ok := apperrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
		assert.Equal(t, "Item not found in cart, no changes made", appErr.Message)
		cartRepo.AssertNotCalled(t, "UpdateCart", mock.Anything, mock.Anything)
	})
}

func TestCartService_ClearCart(t *testing.T) {

	t.Run("Empties Item List", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		svc := service.NewCartService(cartRepo, new(mocks.ProductRepository))

		existing := cartWith(models.CartItem{ProductID: uuid.New(), Quantity: 2})
		cartRepo.On("GetCart", mock.Anything).Return(existing, nil)
		cartRepo.On("UpdateCart", mock.Anything, mock.MatchedBy(func(c *models.Cart) bool {
			return len(c.Items) == 0
		})).Return(nil)

		// Act
		err := svc.ClearCart(context.Background())

		// Assert
		require.NoError(t, err)
		cartRepo.AssertExpectations(t)
	})

	t.Run("No Cart Is Not An Error", func(t *testing.T) {
		// Arrange
		cartRepo := new(mocks.CartRepository)
		svc := service.NewCartService(cartRepo, new(mocks.ProductRepository))

		cartRepo.On("GetCart", mock.Anything).Return(nil, sql.ErrNoRows)

		// Act
		err := svc.ClearCart(context.Background())

		// Assert
		require.NoError(t, err)
		cartRepo.AssertNotCalled(t, "UpdateCart", mock.Anything, mock.Anything)
	})
}

// memoryCartRepo is a minimal in-memory repository for exercising the
// service's locking under real goroutine interleaving.
type memoryCartRepo struct {
	mu   sync.Mutex
	cart *models.Cart
}

func (r *memoryCartRepo) GetCart(_ context.Context) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cart == nil {
		return nil, sql.ErrNoRows
	}

	copied := *r.cart
	copied.Items = append([]models.CartItem{}, r.cart.Items...)

	return &copied, nil
}

func (r *memoryCartRepo) CreateCart(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *cart
	copied.Items = append([]models.CartItem{}, cart.Items...)
	r.cart = &copied

	return nil
}

func (r *memoryCartRepo) UpdateCart(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *cart
	copied.Items = append([]models.CartItem{}, cart.Items...)
	r.cart = &copied

	return nil
}

type staticProductRepo struct {
	product *models.Product
}

func (r *staticProductRepo) ListProducts(_ context.Context) ([]models.Product, error) {
	return []models.Product{*r.product}, nil
}

func (r *staticProductRepo) GetProductByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if id != r.product.ID {
		return nil, sql.ErrNoRows
	}

	return r.product, nil
}

func (r *staticProductRepo) SeedProducts(_ context.Context, _ []models.Product) (bool, error) {
	return false, nil
}

func TestCartService_ConcurrentAddsConverge(t *testing.T) {
	// Arrange
	productID := uuid.New()
	svc := service.NewCartService(&memoryCartRepo{}, &staticProductRepo{product: testProduct(productID)})

	const adds = 50

	// Act
	var wg sync.WaitGroup
	for range adds {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.AddItem(context.Background(), &models.AddItemRequest{ProductID: productID, Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Assert
	cart, err := svc.GetCart(context.Background())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, adds, cart.Items[0].Quantity)
}
