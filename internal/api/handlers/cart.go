package handlers

import (
	"log/slog"
	"net/http"

	"shoplite/internal/api/middleware"
	apperrors "shoplite/internal/errors"
	"shoplite/internal/models"
	service "shoplite/internal/services"
	"shoplite/internal/utils"
	"shoplite/internal/utils/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// itemNotFoundResponse carries both the failure signal and the cart's current
// contents; for a missing line both are meaningful to the caller.
type itemNotFoundResponse struct {
	Message string       `json:"message"`
	Cart    *models.Cart `json:"cart,omitempty"`
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		cart, err := h.cartService.GetCart(r.Context())
		if err != nil {
			logger.Error("Failed to fetch cart", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.WriteJson(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")

			return
		}

		cart, err := h.cartService.AddItem(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to add cart item",
				slog.String("productId", req.ProductID.String()),
				slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Cart item added", slog.String("productId", req.ProductID.String()))
		response.WriteJson(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := uuid.Parse(r.PathValue("productId"))
		if err != nil {
			logger.Warn("Invalid product id in cart update", slog.String("productId", r.PathValue("productId")))
			response.Error(w, apperrors.NotFoundError("Item not found in cart"))

			return
		}

		var req models.UpdateQuantityRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, apperrors.ValidationError("Invalid quantity provided").WithError(err))

			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			response.Error(w, apperrors.ValidationError("Invalid quantity provided").WithError(err))

			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), productID, *req.Quantity)
		if err != nil {
			logger.Warn("Failed to update cart item quantity",
				slog.String("productId", productID.String()),
				slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Cart item quantity updated",
			slog.String("productId", productID.String()),
			slog.Int("quantity", *req.Quantity))
		response.WriteJson(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := uuid.Parse(r.PathValue("productId"))
		if err != nil {
			logger.Warn("Invalid product id in cart delete", slog.String("productId", r.PathValue("productId")))
			h.writeItemNotFound(w, r, nil)

			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), productID)
		if err != nil {
			if appErr, ok := apperrors.IsAppError(err); ok && appErr.Code == apperrors.ErrCodeNotFound {
				// Non-fatal miss: report 404 but still hand back the cart.
				h.writeItemNotFound(w, r, cart)

				return
			}

			logger.Warn("Failed to remove cart item",
				slog.String("productId", productID.String()),
				slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Cart item removed", slog.String("productId", productID.String()))
		response.WriteJson(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) writeItemNotFound(w http.ResponseWriter, r *http.Request, cart *models.Cart) {

	if cart == nil {
		if current, err := h.cartService.GetCart(r.Context()); err == nil {
			cart = current
		}
	}

	response.WriteJson(w, http.StatusNotFound, itemNotFoundResponse{
		Message: "Item not found in cart, no changes made",
		Cart:    cart,
	})
}
