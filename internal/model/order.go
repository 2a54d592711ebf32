package model

import (
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
// Any known status may be assigned from any other.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a customer order.
type Order struct {
	ID          int64       `json:"id" db:"id"`
	CustomerID  int64       `json:"customerId" db:"customer_id"`
	OrderDate   time.Time   `json:"orderDate" db:"order_date"`
	TotalAmount float64     `json:"totalAmount" db:"total_amount"`
	Status      OrderStatus `json:"status" db:"status"`
	Notes       string      `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	Items       []OrderItem `json:"items,omitempty"`
}

// OrderItem represents a line item in an order. UnitPrice and Subtotal
// are captured when the order is placed and never recomputed.
type OrderItem struct {
	ID        int64   `json:"id" db:"id"`
	OrderID   int64   `json:"orderId" db:"order_id"`
	ProductID int64   `json:"productId" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unitPrice" db:"unit_price"`
	Subtotal  float64 `json:"subtotal" db:"subtotal"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	CustomerID int64              `json:"customerId"`
	Status     OrderStatus        `json:"status,omitempty"`
	Notes      string             `json:"notes,omitempty"`
	OrderDate  *time.Time         `json:"orderDate,omitempty"`
	Items      []OrderItemRequest `json:"items"`
}

// OrderItemRequest represents a single item in an order request.
type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderStatusUpdate is the payload for assigning a new status.
type OrderStatusUpdate struct {
	Status OrderStatus `json:"status"`
}
