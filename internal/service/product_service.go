package service

import (
	"context"
	"fmt"

	"shopdesk/internal/model"
	"shopdesk/internal/repository"

	"github.com/rs/zerolog"
)

// DefaultLowInventoryThreshold is used when no threshold is given.
const DefaultLowInventoryThreshold = 10

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	reportRepo  repository.ReportRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	reportRepo repository.ReportRepository,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		reportRepo:  reportRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Search returns one page of products matching the criteria.
func (s *productService) Search(ctx context.Context, criteria model.ProductCriteria) (*model.Page[model.Product], error) {
	criteria.Normalize()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	window := criteria.Window()
	products, total, err := s.productRepo.Search(ctx, criteria, window)
	if err != nil {
		s.logger.Error().Err(err).
			Str("search_term", criteria.SearchTerm).
			Str("category", criteria.Category).
			Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("total", total).
		Int("limit", window.Limit).
		Int("offset", window.Offset).
		Msg("searched products")

	return &model.Page[model.Product]{
		Data:       products,
		Pagination: model.NewPagination(total, window),
	}, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

func (s *productService) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	product, err := s.productRepo.Create(ctx, input)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Msg("product created")
	return product, nil
}

func (s *productService) Update(ctx context.Context, id int64, input model.ProductInput) (*model.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	product, err := s.productRepo.Update(ctx, id, input)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Delete removes a product. Products referenced by orders cannot be deleted.
func (s *productService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if !deleted {
		return model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

// GetLowInventory retrieves products at or below threshold together with
// the overall inventory value.
func (s *productService) GetLowInventory(ctx context.Context, threshold int) (*model.LowInventoryReport, error) {
	if threshold < 0 {
		threshold = DefaultLowInventoryThreshold
	}

	products, err := s.productRepo.GetLowInventory(ctx, threshold)
	if err != nil {
		s.logger.Error().Err(err).Int("threshold", threshold).Msg("failed to get low inventory products")
		return nil, fmt.Errorf("failed to get low inventory products: %w", err)
	}

	inventory, err := s.reportRepo.GetInventoryValue(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get inventory value")
		return nil, fmt.Errorf("failed to get inventory value: %w", err)
	}

	return &model.LowInventoryReport{Products: products, Inventory: inventory}, nil
}

// GetByCategory retrieves a category's products with summary statistics.
func (s *productService) GetByCategory(ctx context.Context, category string) (*model.ProductCategoryResult, error) {
	products, err := s.productRepo.GetByCategory(ctx, category)
	if err != nil {
		s.logger.Error().Err(err).Str("category", category).Msg("failed to get products by category")
		return nil, fmt.Errorf("failed to get products by category: %w", err)
	}

	return &model.ProductCategoryResult{
		Products:   products,
		Statistics: model.NewCategoryStatistics(products),
	}, nil
}
