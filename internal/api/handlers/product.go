package handlers

import (
	"log/slog"
	"net/http"

	"shoplite/internal/api/middleware"
	"shoplite/internal/errors"
	service "shoplite/internal/services"
	"shoplite/internal/utils/response"

	"github.com/google/uuid"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts godoc
//
//	@Summary		List all catalog products
//	@Description	Returns every product. Seeds the fixed default catalog on first read when the store is empty.
//	@Tags			Products
//	@Produce		json
//	@Success		200	{array}		models.Product
//	@Failure		500	{object}	response.ErrorResponse
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.productService.ListProducts(r.Context())
		if err != nil {
			logger.Error("Failed to fetch products", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Products listed successfully", slog.Int("count", len(products)))
		response.WriteJson(w, http.StatusOK, products)
	}
}

// GetProduct godoc
//
//	@Summary		Get a product by ID
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		string	true	"Product ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Product
//	@Failure		404	{object}	response.ErrorResponse	"Unknown or malformed product id"
//	@Failure		500	{object}	response.ErrorResponse
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			// A malformed id can never match a product, so it reads as absent.
			logger.Warn("Invalid product id", slog.String("id", r.PathValue("id")))
			response.Error(w, errors.NotFoundError("Product not found (invalid ID format)"))

			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("productId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.WriteJson(w, http.StatusOK, product)
	}
}
