package repository

import (
	"context"
	"testing"
	"time"

	"shopdesk/internal/database"
	"shopdesk/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a PostgreSQL testcontainer with the application schema
// applied and returns a connection pool to it.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	t.Cleanup(func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	})

	return pool
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, name string, price float64, quantity int, category string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO products (name, price, quantity, category) VALUES ($1, $2, $3, NULLIF($4, '')) RETURNING id`,
		name, price, quantity, category,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedCustomer(t *testing.T, pool *pgxpool.Pool, name, email string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO customers (name, email) VALUES ($1, NULLIF($2, '')) RETURNING id`,
		name, email,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedOrder(t *testing.T, pool *pgxpool.Pool, customerID int64, date time.Time, amount float64, status model.OrderStatus) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO orders (customer_id, order_date, total_amount, status) VALUES ($1, $2, $3, $4) RETURNING id`,
		customerID, date, amount, string(status),
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func seedOrderItem(t *testing.T, pool *pgxpool.Pool, orderID, productID int64, quantity int, unitPrice float64) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal) VALUES ($1, $2, $3, $4, $5)`,
		orderID, productID, quantity, unitPrice, float64(quantity)*unitPrice,
	)
	require.NoError(t, err)
}

func productNames(products []model.Product) []string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}
	return names
}
