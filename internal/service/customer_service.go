package service

import (
	"context"
	"fmt"

	"shopdesk/internal/model"
	"shopdesk/internal/repository"

	"github.com/rs/zerolog"
)

// customerService implements CustomerService.
type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	logger zerolog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

func (s *customerService) Search(ctx context.Context, criteria model.CustomerCriteria) (*model.Page[model.Customer], error) {
	window := criteria.Window()
	customers, total, err := s.customerRepo.Search(ctx, criteria, window)
	if err != nil {
		s.logger.Error().Err(err).Str("search_term", criteria.SearchTerm).Msg("failed to search customers")
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}

	return &model.Page[model.Customer]{
		Data:       customers,
		Pagination: model.NewPagination(total, window),
	}, nil
}

func (s *customerService) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to get customer by ID")
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer == nil {
		s.logger.Debug().Int64("customer_id", id).Msg("customer not found")
		return nil, model.ErrCustomerNotFound
	}

	return customer, nil
}

func (s *customerService) Create(ctx context.Context, input model.CustomerInput) (*model.Customer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.Create(ctx, input)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", input.Email).Msg("failed to create customer")
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info().Int64("customer_id", customer.ID).Msg("customer created")
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, id int64, input model.CustomerInput) (*model.Customer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.Update(ctx, id, input)
	if err != nil {
		s.logger.Warn().Err(err).Int64("customer_id", id).Msg("failed to update customer")
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	return customer, nil
}

// Delete removes a customer. Customers with orders cannot be deleted.
func (s *customerService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.customerRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("customer_id", id).Msg("failed to delete customer")
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	if !deleted {
		return model.ErrCustomerNotFound
	}

	s.logger.Info().Int64("customer_id", id).Msg("customer deleted")
	return nil
}

// GetWithHistory retrieves a customer with every order they placed,
// newest first, and the totals over those orders.
func (s *customerService) GetWithHistory(ctx context.Context, id int64) (*model.CustomerHistory, error) {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListByCustomer(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("customer_id", id).Msg("failed to list customer orders")
		return nil, fmt.Errorf("failed to list customer orders: %w", err)
	}

	history := &model.CustomerHistory{
		Customer:    *customer,
		Orders:      orders,
		TotalOrders: len(orders),
	}
	for _, o := range orders {
		history.TotalSpent += o.TotalAmount
	}
	history.TotalSpent = model.RoundCents(history.TotalSpent)

	return history, nil
}
