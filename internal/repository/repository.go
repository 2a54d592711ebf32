package repository

import (
	"context"
	"time"

	"shopdesk/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Search returns one page of products matching the criteria and the
	// number of products matching it in total.
	Search(ctx context.Context, criteria model.ProductCriteria, window model.Window) ([]model.Product, int, error)

	// GetByID retrieves a single product by its ID. Returns nil if absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	// FindByName retrieves the oldest product with exactly this name.
	FindByName(ctx context.Context, name string) (*model.Product, error)

	// GetLowInventory retrieves products whose quantity is at or below threshold.
	GetLowInventory(ctx context.Context, threshold int) ([]model.Product, error)

	// GetByCategory retrieves every product in a category.
	GetByCategory(ctx context.Context, category string) ([]model.Product, error)

	Create(ctx context.Context, input model.ProductInput) (*model.Product, error)

	// Update replaces a product's fields. Returns nil if the product is absent.
	Update(ctx context.Context, id int64, input model.ProductInput) (*model.Product, error)

	// Delete removes a product, reporting whether a row was deleted.
	Delete(ctx context.Context, id int64) (bool, error)
}

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	Search(ctx context.Context, criteria model.CustomerCriteria, window model.Window) ([]model.Customer, int, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	Create(ctx context.Context, input model.CustomerInput) (*model.Customer, error)
	Update(ctx context.Context, id int64, input model.CustomerInput) (*model.Customer, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction and
	// sets its generated ID and creation time.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided
	// transaction and sets their generated IDs.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	Search(ctx context.Context, criteria model.OrderCriteria, window model.Window) ([]model.Order, int, error)

	// ListByCustomer retrieves every order of a customer, newest first.
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)

	// UpdateStatus assigns a status. Returns nil if the order is absent.
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)

	// Delete removes an order and its items.
	Delete(ctx context.Context, id int64) (bool, error)
}

// ReportRepository computes aggregates over orders and products.
type ReportRepository interface {
	// GetSalesSummary aggregates orders whose order date lies in the
	// inclusive range. Nil bounds are unconstrained.
	GetSalesSummary(ctx context.Context, start, end *time.Time) (model.SalesSummary, error)

	// GetDailySales groups orders placed at or after since by UTC calendar
	// date, most recent day first.
	GetDailySales(ctx context.Context, since time.Time) ([]model.DailySales, error)

	GetInventoryValue(ctx context.Context) (model.InventoryValue, error)

	GetTopSellingProducts(ctx context.Context, limit int) ([]model.TopSellingProduct, error)
}
