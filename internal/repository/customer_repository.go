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

const customerColumns = `id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''),
	COALESCE(city, ''), COALESCE(country, ''), created_at, updated_at`

type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

func scanCustomer(row scanner) (model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.Country, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func scanCustomers(rows pgx.Rows) ([]model.Customer, error) {
	return collect(rows, scanCustomer)
}

// Search matches the term against name, email or phone and returns
// customers in insertion order.
func (r *customerRepository) Search(ctx context.Context, criteria model.CustomerCriteria, window model.Window) ([]model.Customer, int, error) {
	var conds conditions
	conds.containsAny(criteria.SearchTerm, "name", "email", "phone")

	where := conds.where()
	limit, pageArgs := conds.page(window)
	pageQuery := `SELECT ` + customerColumns + ` FROM customers` + where + ` ORDER BY id` + limit
	countQuery := `SELECT COUNT(*) FROM customers` + where

	customers, total, err := paginate(ctx, r.pool, pageQuery, pageArgs, countQuery, conds.args, scanCustomers)
	if err != nil {
		r.logger.Error().Err(err).
			Str("search_term", criteria.SearchTerm).
			Int("limit", window.Limit).
			Int("offset", window.Offset).
			Msg("failed to search customers")
		return nil, 0, fmt.Errorf("failed to search customers: %w", err)
	}

	return customers, total, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("customer_id", id).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

func (r *customerRepository) Create(ctx context.Context, input model.CustomerInput) (*model.Customer, error) {
	query := `
		INSERT INTO customers (name, email, phone, address, city, country)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''))
		RETURNING ` + customerColumns

	c, err := scanCustomer(r.pool.QueryRow(ctx, query,
		input.Name, input.Email, input.Phone, input.Address, input.City, input.Country))
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, model.ErrEmailTaken
		}
		r.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create customer")
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Debug().Int64("customer_id", c.ID).Msg("customer created")
	return &c, nil
}

func (r *customerRepository) Update(ctx context.Context, id int64, input model.CustomerInput) (*model.Customer, error) {
	query := `
		UPDATE customers
		SET name = $1,
		    email = NULLIF($2, ''),
		    phone = NULLIF($3, ''),
		    address = NULLIF($4, ''),
		    city = NULLIF($5, ''),
		    country = NULLIF($6, ''),
		    updated_at = NOW()
		WHERE id = $7
		RETURNING ` + customerColumns

	c, err := scanCustomer(r.pool.QueryRow(ctx, query,
		input.Name, input.Email, input.Phone, input.Address, input.City, input.Country, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, model.ErrEmailTaken
		}
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to update customer")
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return &c, nil
}

// Delete removes a customer. Customers who own orders are kept and
// model.ErrCustomerHasOrders is returned.
func (r *customerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return false, model.ErrCustomerHasOrders
		}
		r.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to delete customer")
		return false, fmt.Errorf("failed to delete customer: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
