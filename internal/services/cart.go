package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	apperrors "shoplite/internal/errors"
	"shoplite/internal/models"
	repository "shoplite/internal/repositories"

	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context) (*models.Cart, error)
	AddItem(ctx context.Context, req *models.AddItemRequest) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, productID uuid.UUID) (*models.Cart, error)
	ClearCart(ctx context.Context) error
}

// cartService owns all mutation of the singleton cart. Every operation that
// reads, modifies and writes the cart runs under mu, so concurrent requests
// cannot lose each other's updates (N concurrent adds of the same product
// always converge to quantity N).
type cartService struct {
	repo     repository.CartRepository
	products repository.ProductRepository
	mu       sync.Mutex
}

func NewCartService(repo repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartService{repo: repo, products: products}
}

// getOrCreate must be called with mu held.
func (s *cartService) getOrCreate(ctx context.Context) (*models.Cart, error) {

	cart, err := s.repo.GetCart(ctx)
	if err == nil {
		return cart, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	cart = &models.Cart{
		ID:    uuid.New(),
		Items: []models.CartItem{},
	}

	if err := s.repo.CreateCart(ctx, cart); err != nil {
		return nil, apperrors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getOrCreate(ctx)
}

// AddItem merges into an existing line (quantities accumulate) or appends a
// new line snapshotting the product's current name, price and image. The
// snapshot is taken exactly once, here.
func (s *cartService) AddItem(ctx context.Context, req *models.AddItemRequest) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	cart, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	if i := cart.FindItem(req.ProductID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  quantity,
		})
	}

	cart.UpdatedAt = time.Now()

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, apperrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// UpdateQuantity overwrites a line's quantity (it does not accumulate — the
// asymmetry with AddItem is deliberate). A quantity of zero removes the line.
func (s *cartService) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 0 {
		return nil, apperrors.ValidationError("Invalid quantity provided")
	}

	cart, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	i := cart.FindItem(productID)
	if i < 0 {
		return nil, apperrors.NotFoundError("Item not found in cart")
	}

	if quantity == 0 {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	} else {
		cart.Items[i].Quantity = quantity
	}

	cart.UpdatedAt = time.Now()

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, apperrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// RemoveItem deletes the line for productID. When no such line exists it
// returns NotFound together with the unmodified cart: the miss is non-fatal
// and callers serve both the signal and the current contents.
func (s *cartService) RemoveItem(ctx context.Context, productID uuid.UUID) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.getOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	i := cart.FindItem(productID)
	if i < 0 {
		return cart, apperrors.NotFoundError("Item not found in cart, no changes made")
	}

	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	cart.UpdatedAt = time.Now()

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, apperrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// ClearCart empties the singleton cart's item list, keeping the cart itself.
// When no cart exists yet there is nothing to clear and that is not an error.
func (s *cartService) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.repo.GetCart(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}

		return apperrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	cart.Items = []models.CartItem{}
	cart.UpdatedAt = time.Now()

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return apperrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}
