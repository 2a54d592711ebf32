package repository

import (
	"context"
	"fmt"
	"time"

	"shopdesk/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type reportRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReportRepository creates a PostgreSQL-backed report repository.
func NewReportRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReportRepository {
	return &reportRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "report").Logger(),
	}
}

func (r *reportRepository) GetSalesSummary(ctx context.Context, start, end *time.Time) (model.SalesSummary, error) {
	var conds conditions
	addRange(&conds, "order_date", start, end)

	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_amount), 0),
			COALESCE(AVG(total_amount), 0),
			COALESCE(MAX(total_amount), 0),
			COALESCE(MIN(total_amount), 0)
		FROM orders` + conds.where()

	var s model.SalesSummary
	err := r.pool.QueryRow(ctx, query, conds.args...).Scan(
		&s.TotalOrders,
		&s.TotalRevenue,
		&s.AverageOrderValue,
		&s.MaxOrder,
		&s.MinOrder,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to compute sales summary")
		return model.SalesSummary{}, fmt.Errorf("failed to compute sales summary: %w", err)
	}

	return s, nil
}

func (r *reportRepository) GetDailySales(ctx context.Context, since time.Time) ([]model.DailySales, error) {
	query := `
		SELECT
			to_char(day, 'YYYY-MM-DD'),
			SUM(total_amount),
			COUNT(*),
			AVG(total_amount)
		FROM (
			SELECT (order_date AT TIME ZONE 'UTC')::date AS day, total_amount
			FROM orders
			WHERE order_date >= $1
		) daily
		GROUP BY day
		ORDER BY day DESC
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		r.logger.Error().Err(err).Time("since", since).Msg("failed to query daily sales")
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer rows.Close()

	days, err := collect(rows, func(row scanner) (model.DailySales, error) {
		var d model.DailySales
		err := row.Scan(&d.Date, &d.TotalSales, &d.OrderCount, &d.AverageOrder)
		return d, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read daily sales rows")
		return nil, fmt.Errorf("failed to read daily sales: %w", err)
	}

	return days, nil
}

func (r *reportRepository) GetInventoryValue(ctx context.Context) (model.InventoryValue, error) {
	query := `
		SELECT
			COALESCE(SUM(quantity), 0),
			COALESCE(SUM(price * quantity), 0),
			COUNT(*)
		FROM products
	`

	var v model.InventoryValue
	if err := r.pool.QueryRow(ctx, query).Scan(&v.TotalItems, &v.TotalValue, &v.ProductCount); err != nil {
		r.logger.Error().Err(err).Msg("failed to compute inventory value")
		return model.InventoryValue{}, fmt.Errorf("failed to compute inventory value: %w", err)
	}

	return v, nil
}

// GetTopSellingProducts ranks products by units sold, using the snapshot
// subtotals for revenue.
func (r *reportRepository) GetTopSellingProducts(ctx context.Context, limit int) ([]model.TopSellingProduct, error) {
	query := `
		SELECT p.id, p.name, SUM(oi.quantity) AS units, SUM(oi.subtotal) AS revenue
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		GROUP BY p.id, p.name
		ORDER BY units DESC, revenue DESC, p.id ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query top selling products")
		return nil, fmt.Errorf("failed to query top selling products: %w", err)
	}
	defer rows.Close()

	products, err := collect(rows, func(row scanner) (model.TopSellingProduct, error) {
		var p model.TopSellingProduct
		err := row.Scan(&p.ProductID, &p.Name, &p.UnitsSold, &p.Revenue)
		return p, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read top selling rows")
		return nil, fmt.Errorf("failed to read top selling products: %w", err)
	}

	return products, nil
}
