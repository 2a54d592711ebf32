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

const orderColumns = `id, customer_id, order_date, total_amount, status, COALESCE(notes, ''), created_at`

var orderSortColumns = map[model.OrderSortField]string{
	model.OrderSortID:    "id",
	model.OrderSortTotal: "total_amount",
	model.OrderSortDate:  "order_date",
}

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

func scanOrder(row scanner) (model.Order, error) {
	var (
		o      model.Order
		status string
	)
	err := row.Scan(&o.ID, &o.CustomerID, &o.OrderDate, &o.TotalAmount, &status, &o.Notes, &o.CreatedAt)
	o.Status = model.OrderStatus(status)
	return o, err
}

func scanOrders(rows pgx.Rows) ([]model.Order, error) {
	return collect(rows, scanOrder)
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (customer_id, order_date, total_amount, status, notes)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query,
		order.CustomerID,
		order.OrderDate,
		order.TotalAmount,
		string(order.Status),
		order.Notes,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return model.ErrCustomerNotFound
		}
		r.logger.Error().
			Err(err).
			Int64("customer_id", order.CustomerID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Int64("order_id", order.ID).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range items {
		if err := results.QueryRow().Scan(&items[i].ID); err != nil {
			if pgErrorCode(err) == pgForeignKeyViolation {
				return model.ErrProductNotFound
			}
			r.logger.Error().
				Err(err).
				Int64("order_id", items[i].OrderID).
				Int64("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("order_id", id).
			Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	order.Items, err = collect(rows, func(row scanner) (model.OrderItem, error) {
		var item model.OrderItem
		err := row.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Subtotal)
		return item, err
	})
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to read order item rows")
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	return &order, nil
}

// Search retrieves one page of orders. Amount and date ranges are inclusive
// and either bound may be omitted.
func (r *orderRepository) Search(ctx context.Context, criteria model.OrderCriteria, window model.Window) ([]model.Order, int, error) {
	var conds conditions
	if criteria.CustomerID != nil {
		conds.equal("customer_id", *criteria.CustomerID)
	}
	if criteria.Status != "" {
		conds.equal("status", string(criteria.Status))
	}
	addRange(&conds, "total_amount", criteria.MinAmount, criteria.MaxAmount)
	addRange(&conds, "order_date", criteria.StartDate, criteria.EndDate)

	sortColumn, ok := orderSortColumns[criteria.SortBy]
	if !ok {
		sortColumn = "id"
	}

	where := conds.where()
	limit, pageArgs := conds.page(window)
	pageQuery := `SELECT ` + orderColumns + ` FROM orders` + where + orderBy(sortColumn, criteria.SortOrder) + limit
	countQuery := `SELECT COUNT(*) FROM orders` + where

	orders, total, err := paginate(ctx, r.pool, pageQuery, pageArgs, countQuery, conds.args, scanOrders)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", window.Limit).
			Int("offset", window.Offset).
			Msg("failed to search orders")
		return nil, 0, fmt.Errorf("failed to search orders: %w", err)
	}

	return orders, total, nil
}

// ListByCustomer retrieves every order of a customer, newest first.
func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		ORDER BY order_date DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", customerID).Msg("failed to query customer orders")
		return nil, fmt.Errorf("failed to query customer orders: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		r.logger.Error().Err(err).Int64("customer_id", customerID).Msg("failed to read customer order rows")
		return nil, fmt.Errorf("failed to read customer orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus assigns a status to an order.
func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	query := `UPDATE orders SET status = $1 WHERE id = $2 RETURNING ` + orderColumns

	order, err := scanOrder(r.pool.QueryRow(ctx, query, string(status), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).
			Int64("order_id", id).
			Str("status", string(status)).
			Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &order, nil
}

// Delete removes an order. Its items are removed by the foreign key cascade.
func (r *orderRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to delete order")
		return false, fmt.Errorf("failed to delete order: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
