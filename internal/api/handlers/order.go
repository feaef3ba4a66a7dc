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
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceOrder godoc
//
//	@Summary		Place an order
//	@Description	Creates an immutable order from the submitted cart lines and total, then empties the shared cart.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.CreateOrderRequest	true	"Order lines and total as shown to the customer"
//	@Success		201		{object}	models.Order
//	@Failure		400		{object}	response.ErrorResponse	"Empty items or invalid total"
//	@Failure		500		{object}	response.ErrorResponse
//	@Router			/orders [post]
func (h *OrderHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		// Decoded without struct validation: the service owns the ordered,
		// short-circuiting checks and their messages.
		var req models.CreateOrderRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			logger.Warn("Invalid order payload", slog.String("error", err.Error()))
			response.Error(w, apperrors.BadRequestError("Invalid request body").WithError(err))

			return
		}

		order, err := h.orderService.PlaceOrder(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to place order", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Order created successfully",
			slog.String("orderId", order.ID.String()),
			slog.Float64("totalAmount", order.TotalAmount))
		response.WriteJson(w, http.StatusCreated, order)
	}
}
