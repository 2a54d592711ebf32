package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeInvalidParameter  = "INVALID_PARAMETER"
	ErrCodeInvalidPrice      = "INVALID_PRICE"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeInvalidStatus     = "INVALID_STATUS"
	ErrCodeInvalidCatalog    = "INVALID_CATALOG"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeCustomerNotFound  = "CUSTOMER_NOT_FOUND"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeEmailTaken        = "EMAIL_TAKEN"
	ErrCodeProductInUse      = "PRODUCT_IN_USE"
	ErrCodeCustomerHasOrders = "CUSTOMER_HAS_ORDERS"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// AsDomainError unwraps err to a *DomainError if one is present in its chain.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrCustomerNotFound  = NewDomainError(ErrCodeCustomerNotFound, "Customer not found")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidPrice      = NewDomainError(ErrCodeInvalidPrice, "Price must be a non-negative number")
	ErrInvalidStatus     = NewDomainError(ErrCodeInvalidStatus, "Status must be one of pending, processing, completed, cancelled")
	ErrEmailTaken        = NewDomainError(ErrCodeEmailTaken, "A customer with this email already exists")
	ErrProductInUse      = NewDomainError(ErrCodeProductInUse, "Product is referenced by existing orders")
	ErrCustomerHasOrders = NewDomainError(ErrCodeCustomerHasOrders, "Customer has existing orders")
)
