package repository

import (
	"context"
	"errors"
	"fmt"

	"shopdesk/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `id, name, COALESCE(description, ''), price, quantity, COALESCE(category, ''), created_at, updated_at`

var productSortColumns = map[model.ProductSortField]string{
	model.ProductSortName:     "name",
	model.ProductSortPrice:    "price",
	model.ProductSortQuantity: "quantity",
	model.ProductSortID:       "id",
}

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row scanner) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Category, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	return collect(rows, scanProduct)
}

// Search retrieves one page of products matching the criteria. The search
// term matches name or description; the price range is inclusive.
func (r *productRepository) Search(ctx context.Context, criteria model.ProductCriteria, window model.Window) ([]model.Product, int, error) {
	var conds conditions
	conds.containsAny(criteria.SearchTerm, "name", "description")
	if criteria.Category != "" {
		conds.equal("category", criteria.Category)
	}
	addRange(&conds, "price", criteria.MinPrice, criteria.MaxPrice)

	sortColumn, ok := productSortColumns[criteria.SortBy]
	if !ok {
		sortColumn = "id"
	}

	where := conds.where()
	limit, pageArgs := conds.page(window)
	pageQuery := `SELECT ` + productColumns + ` FROM products` + where + orderBy(sortColumn, criteria.SortOrder) + limit
	countQuery := `SELECT COUNT(*) FROM products` + where

	products, total, err := paginate(ctx, r.pool, pageQuery, pageArgs, countQuery, conds.args, scanProducts)
	if err != nil {
		r.logger.Error().Err(err).
			Str("search_term", criteria.SearchTerm).
			Str("category", criteria.Category).
			Int("limit", window.Limit).
			Int("offset", window.Offset).
			Msg("failed to search products")
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}

	return products, total, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1) ORDER BY id`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read product rows")
		return nil, fmt.Errorf("failed to read products: %w", err)
	}

	return products, nil
}

// FindByName retrieves the oldest product with exactly this name.
func (r *productRepository) FindByName(ctx context.Context, name string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1 ORDER BY id LIMIT 1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("name", name).Msg("failed to query product by name")
		return nil, fmt.Errorf("failed to query product by name: %w", err)
	}

	return &p, nil
}

// GetLowInventory retrieves products at or below threshold, lowest stock first.
func (r *productRepository) GetLowInventory(ctx context.Context, threshold int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE quantity <= $1
		ORDER BY quantity ASC, id ASC
	`

	return r.list(ctx, "low inventory", query, threshold)
}

// GetByCategory retrieves every product with exactly this category.
func (r *productRepository) GetByCategory(ctx context.Context, category string) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category = $1
		ORDER BY name, id
	`

	return r.list(ctx, "category", query, category)
}

func (r *productRepository) list(ctx context.Context, what, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("query", what).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query %s products: %w", what, err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		r.logger.Error().Err(err).Str("query", what).Msg("failed to read product rows")
		return nil, fmt.Errorf("failed to read %s products: %w", what, err)
	}
	return products, nil
}

// Create inserts a product. Empty optional text is stored as NULL.
func (r *productRepository) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	query := `
		INSERT INTO products (name, description, price, quantity, category)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''))
		RETURNING ` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query,
		input.Name, input.Description, input.Price, input.Quantity, input.Category))
	if err != nil {
		r.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int64("product_id", p.ID).Msg("product created")
	return &p, nil
}

// Update replaces a product's fields and bumps updated_at.
func (r *productRepository) Update(ctx context.Context, id int64, input model.ProductInput) (*model.Product, error) {
	query := `
		UPDATE products
		SET name = $1,
		    description = NULLIF($2, ''),
		    price = $3,
		    quantity = $4,
		    category = NULLIF($5, ''),
		    updated_at = NOW()
		WHERE id = $6
		RETURNING ` + productColumns

	p, err := scanProduct(r.pool.QueryRow(ctx, query,
		input.Name, input.Description, input.Price, input.Quantity, input.Category, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &p, nil
}

// Delete removes a product. Products referenced by order items are kept
// and model.ErrProductInUse is returned.
func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return false, model.ErrProductInUse
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
