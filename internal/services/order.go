package service

import (
	"context"
	"log/slog"
	"time"

	apperrors "shoplite/internal/errors"
	"shoplite/internal/models"
	repository "shoplite/internal/repositories"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
}

// orderService persists orders from client-submitted cart data. Prices and
// the total are trusted as submitted and are NOT cross-checked against the
// catalog; only markup is stripped from the submitted names.
type orderService struct {
	repo      repository.OrderRepository
	carts     CartService
	sanitizer *bluemonday.Policy
}

func NewOrderService(repo repository.OrderRepository, carts CartService) OrderService {
	return &orderService{
		repo:      repo,
		carts:     carts,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// PlaceOrder validates in order, short-circuiting on the first failure:
// items must be non-empty, then the total must be present and non-negative.
// On success the order is persisted and the singleton cart is emptied.
func (s *orderService) PlaceOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {

	if len(req.Items) == 0 {
		return nil, apperrors.ValidationError("No order items provided")
	}

	if req.TotalAmount == nil || *req.TotalAmount < 0 {
		return nil, apperrors.ValidationError("Invalid or missing total amount")
	}

	items := make([]models.OrderItem, 0, len(req.Items))

	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      s.sanitizer.Sanitize(item.Name),
			Quantity:  item.Quantity,
			Price:     item.Price,
			Image:     item.Image,
		})
	}

	order := &models.Order{
		ID:          uuid.New(),
		Items:       items,
		TotalAmount: *req.TotalAmount,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, apperrors.DatabaseError("Failed to create order").WithError(err)
	}

	// The order is the source of truth from here on. A failed clear leaves
	// stale cart contents behind but must not fail the placed order.
	if err := s.carts.ClearCart(ctx); err != nil {
		slog.Warn("Failed to clear cart after order placement",
			slog.String("orderId", order.ID.String()),
			slog.String("error", err.Error()))
	} else {
		slog.Info("Cart cleared after order placement", slog.String("orderId", order.ID.String()))
	}

	return order, nil
}
