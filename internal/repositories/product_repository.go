package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"shoplite/internal/models"
	"shoplite/internal/utils"

	"github.com/google/uuid"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	SeedProducts(ctx context.Context, products []models.Product) (bool, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, description, price, image, created_at, updated_at
		FROM products
		ORDER BY created_at, id
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	var products []models.Product

	for rows.Next() {
		var product models.Product

		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Image, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT id, name, description, price, image, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Image, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

// SeedProducts inserts the given products only when the table holds no rows
// at all. The single conditional INSERT makes the seed idempotent and safe
// against two racing first reads. Returns whether anything was inserted.
func (r *productRepository) SeedProducts(ctx context.Context, products []models.Product) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if len(products) == 0 {
		return false, nil
	}

	values := make([]string, 0, len(products))
	args := make([]any, 0, len(products)*5)

	for i, product := range products {
		base := i * 5
		values = append(values, fmt.Sprintf("($%d::uuid, $%d, $%d, $%d::float8, $%d)",
			base+1, base+2, base+3, base+4, base+5))
		args = append(args, product.ID, product.Name, product.Description, product.Price, product.Image)
	}

	query := fmt.Sprintf(`
		INSERT INTO products (id, name, description, price, image)
		SELECT v.id, v.name, v.description, v.price, v.image
		FROM (VALUES %s) AS v(id, name, description, price, image)
		WHERE NOT EXISTS (SELECT 1 FROM products)
	`, strings.Join(values, ", "))

	result, err := r.DB.ExecContext(dbCtx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to seed products: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get inserted rows: %w", err)
	}

	return inserted > 0, nil
}
