package service

import (
	"context"
	"fmt"
	"time"

	"shopdesk/internal/metrics"
	"shopdesk/internal/model"
	"shopdesk/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	now          func() time.Time
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		now:          time.Now,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder places an order. Each item's unit price is the product's
// current price, and the order total is the sum of the item subtotals.
func (s *orderService) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	if err := s.validateOrderRequest(req); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		s.logger.Error().Err(err).Int64("customer_id", req.CustomerID).Msg("failed to get customer")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if customer == nil {
		s.logger.Warn().Int64("customer_id", req.CustomerID).Msg("order for unknown customer")
		return nil, model.ErrCustomerNotFound
	}

	prices, err := s.currentPrices(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		CustomerID: req.CustomerID,
		OrderDate:  s.now(),
		Status:     req.Status,
		Notes:      req.Notes,
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		unitPrice := prices[item.ProductID]
		items[i] = model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  model.RoundCents(unitPrice * float64(item.Quantity)),
		}
		order.TotalAmount += items[i].Subtotal
	}
	order.TotalAmount = model.RoundCents(order.TotalAmount)

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Int64("customer_id", order.CustomerID).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Int64("order_id", order.ID).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.Items = items
	metrics.OrdersCreated.WithLabelValues(string(order.Status)).Inc()
	metrics.OrderAmount.Observe(order.TotalAmount)

	s.logger.Info().
		Int64("order_id", order.ID).
		Int("item_count", len(items)).
		Float64("total_amount", order.TotalAmount).
		Msg("order created successfully")

	return order, nil
}

// currentPrices looks up the price of every requested product.
func (s *orderService) currentPrices(ctx context.Context, items []model.OrderItemRequest) (map[int64]float64, error) {
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Int("product_count", len(ids)).Msg("failed to retrieve product details")
		return nil, fmt.Errorf("failed to retrieve product details: %w", err)
	}

	prices := make(map[int64]float64, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}

	for _, id := range ids {
		if _, ok := prices[id]; !ok {
			s.logger.Warn().Int64("product_id", id).Msg("order references unknown product")
			return nil, model.ErrProductNotFound
		}
	}

	return prices, nil
}

// GetByID retrieves an order by its ID with all items.
func (s *orderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Int64("order_id", id).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	return order, nil
}

func (s *orderService) Search(ctx context.Context, criteria model.OrderCriteria) (*model.Page[model.Order], error) {
	criteria.Normalize()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	window := criteria.Window()
	orders, total, err := s.orderRepo.Search(ctx, criteria, window)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to search orders")
		return nil, fmt.Errorf("failed to search orders: %w", err)
	}

	return &model.Page[model.Order]{
		Data:       orders,
		Pagination: model.NewPagination(total, window),
	}, nil
}

// UpdateStatus assigns a new status. Any known status may follow any other.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	order, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().Int64("order_id", id).Str("status", string(status)).Msg("order status updated")
	return order, nil
}

// Delete removes an order together with its items.
func (s *orderService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if !deleted {
		return model.ErrOrderNotFound
	}

	return nil
}

// validateOrderRequest validates the order request.
func (s *orderService) validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "order request is empty")
	}

	if req.CustomerID <= 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "customerId is required")
	}

	if len(req.Items) == 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "order must contain at least one item")
	}

	if req.Status != "" && !req.Status.Valid() {
		return model.ErrInvalidStatus
	}

	// Validate each item
	for i, item := range req.Items {
		if item.ProductID <= 0 {
			return model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("item %d: productId is required", i))
		}

		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Int64("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
	}

	return nil
}
