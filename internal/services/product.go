package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"shoplite/internal/cache"
	apperrors "shoplite/internal/errors"
	"shoplite/internal/models"
	repository "shoplite/internal/repositories"

	"github.com/google/uuid"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type productService struct {
	repo       repository.ProductRepository
	cache      cache.Cache
	productTTL time.Duration
}

func NewProductService(repo repository.ProductRepository, c cache.Cache, productTTL time.Duration) ProductService {
	return &productService{repo: repo, cache: c, productTTL: productTTL}
}

// ListProducts returns the full catalog, seeding the fixed defaults first if
// the store is empty. Once any product exists the seed never runs again.
func (s *productService) ListProducts(ctx context.Context) ([]models.Product, error) {

	if s.cache != nil {
		var cached []models.Product

		found, err := s.cache.Get(ctx, cache.CatalogKey, &cached)
		if err != nil {
			slog.Warn("Catalog cache read failed", slog.String("error", err.Error()))
		} else if found {
			return cached, nil
		}
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if len(products) == 0 {

		slog.Info("No products found in the database, seeding initial data")

		seeded, err := s.repo.SeedProducts(ctx, buildSeedProducts())
		if err != nil {
			return nil, apperrors.DatabaseError("Failed to seed products").WithError(err)
		}

		if seeded {
			slog.Info("Initial catalog data seeded successfully")
		}

		products, err = s.repo.ListProducts(ctx)
		if err != nil {
			return nil, apperrors.DatabaseError("Failed to fetch products").WithError(err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cache.CatalogKey, products, s.productTTL); err != nil {
			slog.Warn("Catalog cache write failed", slog.String("error", err.Error()))
		}
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {

	key := cache.Key(cache.ProductKeyPrefix, id.String())

	if s.cache != nil {
		var cached models.Product

		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			slog.Warn("Product cache read failed", slog.String("error", err.Error()))
		} else if found {
			return &cached, nil
		}
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, product, s.productTTL); err != nil {
			slog.Warn("Product cache write failed", slog.String("error", err.Error()))
		}
	}

	return product, nil
}

func buildSeedProducts() []models.Product {

	seeds := models.DefaultCatalog()
	products := make([]models.Product, 0, len(seeds))

	for _, seed := range seeds {
		products = append(products, models.Product{
			ID:          uuid.New(),
			Name:        seed.Name,
			Description: seed.Description,
			Price:       seed.Price,
			Image:       seed.Image,
		})
	}

	return products
}
