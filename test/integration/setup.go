package integration

import (
	"context"
	"testing"
	"time"

	"shopdesk/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container with the application
// schema applied.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedProducts inserts the test catalog and returns the product IDs in
// insertion order.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) []int64 {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		name     string
		price    float64
		quantity int
		category string
	}{
		{"Stapler", 12.99, 40, "Office Supplies"},
		{"Desk Lamp", 34.00, 15, "Lighting"},
		{"Office Chair", 189.00, 6, "Furniture"},
		{"A4 Copy Paper", 6.25, 8, "Office Supplies"},
		{"Standing Desk", 449.00, 3, "Furniture"},
	}

	ids := make([]int64, 0, len(products))
	for _, p := range products {
		var id int64
		err := pool.QueryRow(ctx,
			"INSERT INTO products (name, price, quantity, category) VALUES ($1, $2, $3, $4) RETURNING id",
			p.name, p.price, p.quantity, p.category,
		).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.name, err)
		}
		ids = append(ids, id)
	}

	return ids
}

// SeedCustomer inserts a customer and returns its ID.
func SeedCustomer(t *testing.T, pool *pgxpool.Pool, name, email string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		"INSERT INTO customers (name, email) VALUES ($1, $2) RETURNING id",
		name, email,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed customer %s: %v", name, err)
	}
	return id
}

// CleanupDB cleans all data from test tables and resets their sequences.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"TRUNCATE order_items, orders, customers, products RESTART IDENTITY CASCADE")
	if err != nil {
		t.Logf("failed to clean tables: %v", err)
	}
}
