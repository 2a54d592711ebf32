package service

import (
	"context"
	"time"

	"shopdesk/internal/model"
)

// ProductService defines operations for product management.
type ProductService interface {
	// Search returns one page of products matching the criteria.
	Search(ctx context.Context, criteria model.ProductCriteria) (*model.Page[model.Product], error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	Create(ctx context.Context, input model.ProductInput) (*model.Product, error)
	Update(ctx context.Context, id int64, input model.ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id int64) error

	// GetLowInventory retrieves products at or below threshold together with
	// the overall inventory value. A negative threshold uses the default.
	GetLowInventory(ctx context.Context, threshold int) (*model.LowInventoryReport, error)

	// GetByCategory retrieves a category's products with summary statistics.
	GetByCategory(ctx context.Context, category string) (*model.ProductCategoryResult, error)
}

// CustomerService defines operations for customer management.
type CustomerService interface {
	Search(ctx context.Context, criteria model.CustomerCriteria) (*model.Page[model.Customer], error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	Create(ctx context.Context, input model.CustomerInput) (*model.Customer, error)
	Update(ctx context.Context, id int64, input model.CustomerInput) (*model.Customer, error)
	Delete(ctx context.Context, id int64) error

	// GetWithHistory retrieves a customer with every order they placed.
	GetWithHistory(ctx context.Context, id int64) (*model.CustomerHistory, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder places an order, snapshotting the current unit prices.
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)

	// GetByID retrieves an order by its ID with all items.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	Search(ctx context.Context, criteria model.OrderCriteria) (*model.Page[model.Order], error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
	Delete(ctx context.Context, id int64) error
}

// ReportService defines the aggregate reports.
type ReportService interface {
	GetSalesSummary(ctx context.Context, start, end *time.Time) (model.SalesSummary, error)

	// GetDailySalesReport rolls up the last days of sales per calendar day.
	// A non-positive days uses the default window.
	GetDailySalesReport(ctx context.Context, days int) ([]model.DailySales, error)

	GetInventoryValue(ctx context.Context) (model.InventoryValue, error)
	GetTopSellingProducts(ctx context.Context, limit int) ([]model.TopSellingProduct, error)
}
