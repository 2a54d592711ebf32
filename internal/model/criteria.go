package model

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Page size bounds shared by every paginated search.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// normalizeSortOrder maps an empty order to def, "asc" in any case to
// SortAsc and anything else to SortDesc.
func normalizeSortOrder(o SortOrder, def SortOrder) SortOrder {
	switch strings.ToLower(strings.TrimSpace(string(o))) {
	case "":
		return def
	case string(SortAsc):
		return SortAsc
	}
	return SortDesc
}

// ProductSortField names a sortable product column.
type ProductSortField string

const (
	ProductSortName     ProductSortField = "name"
	ProductSortPrice    ProductSortField = "price"
	ProductSortQuantity ProductSortField = "quantity"
	ProductSortID       ProductSortField = "id"
)

// OrderSortField names a sortable order column.
type OrderSortField string

const (
	OrderSortID    OrderSortField = "id"
	OrderSortTotal OrderSortField = "total"
	OrderSortDate  OrderSortField = "date"
)

// Window is a LIMIT/OFFSET pair derived from a 1-based page number.
type Window struct {
	Limit  int
	Offset int
}

// NewWindow substitutes defaults for out-of-range values: a non-positive
// limit becomes DefaultPageSize, a limit above MaxPageSize is capped and
// a non-positive page, or one whose offset would overflow, becomes 1.
func NewWindow(page, limit int) Window {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if page <= 0 || page-1 > math.MaxInt/limit {
		page = 1
	}
	return Window{Limit: limit, Offset: (page - 1) * limit}
}

// Pagination is the metadata returned alongside a page of results.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewPagination computes pagination metadata for total matching rows.
func NewPagination(total int, w Window) Pagination {
	if w.Limit <= 0 {
		w.Limit = DefaultPageSize
	}
	return Pagination{
		Total: total,
		Page:  w.Offset/w.Limit + 1,
		Limit: w.Limit,
		Pages: (total + w.Limit - 1) / w.Limit,
	}
}

// Page is one page of search results.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ProductCriteria filters, sorts and pages a product search.
// Zero values and nil pointers leave that dimension unconstrained.
type ProductCriteria struct {
	SearchTerm string
	Category   string
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     ProductSortField
	SortOrder  SortOrder
	Page       int
	Limit      int
}

// Normalize fills in the default sort, name ascending. An unrecognised
// sort field falls back to id and an unrecognised order to descending.
func (c *ProductCriteria) Normalize() {
	switch field := ProductSortField(strings.ToLower(strings.TrimSpace(string(c.SortBy)))); field {
	case "":
		c.SortBy = ProductSortName
	case ProductSortName, ProductSortPrice, ProductSortQuantity, ProductSortID:
		c.SortBy = field
	default:
		c.SortBy = ProductSortID
	}
	c.SortOrder = normalizeSortOrder(c.SortOrder, SortAsc)
}

// Validate rejects negative price bounds.
func (c *ProductCriteria) Validate() error {
	if c.MinPrice != nil && *c.MinPrice < 0 {
		return invalidParameter("minPrice", fmt.Sprint(*c.MinPrice))
	}
	if c.MaxPrice != nil && *c.MaxPrice < 0 {
		return invalidParameter("maxPrice", fmt.Sprint(*c.MaxPrice))
	}
	return nil
}

// Window returns the pagination window of the criteria.
func (c *ProductCriteria) Window() Window {
	return NewWindow(c.Page, c.Limit)
}

// OrderCriteria filters, sorts and pages an order search.
type OrderCriteria struct {
	CustomerID *int64
	Status     OrderStatus
	MinAmount  *float64
	MaxAmount  *float64
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     OrderSortField
	SortOrder  SortOrder
	Page       int
	Limit      int
}

// Normalize fills in the default sort, newest id first. Unrecognised
// sort fields fall back to id and unrecognised orders to descending.
func (c *OrderCriteria) Normalize() {
	switch field := OrderSortField(strings.ToLower(strings.TrimSpace(string(c.SortBy)))); field {
	case OrderSortTotal, OrderSortDate:
		c.SortBy = field
	default:
		c.SortBy = OrderSortID
	}
	c.SortOrder = normalizeSortOrder(c.SortOrder, SortDesc)
}

// Validate rejects unknown statuses and negative amounts.
func (c *OrderCriteria) Validate() error {
	if c.Status != "" && !c.Status.Valid() {
		return ErrInvalidStatus
	}
	if c.MinAmount != nil && *c.MinAmount < 0 {
		return invalidParameter("minAmount", fmt.Sprint(*c.MinAmount))
	}
	if c.MaxAmount != nil && *c.MaxAmount < 0 {
		return invalidParameter("maxAmount", fmt.Sprint(*c.MaxAmount))
	}
	return nil
}

// Window returns the pagination window of the criteria.
func (c *OrderCriteria) Window() Window {
	return NewWindow(c.Page, c.Limit)
}

// CustomerCriteria pages a customer search. Results keep insertion order.
type CustomerCriteria struct {
	SearchTerm string
	Page       int
	Limit      int
}

// Window returns the pagination window of the criteria.
func (c *CustomerCriteria) Window() Window {
	return NewWindow(c.Page, c.Limit)
}

func invalidParameter(name, value string) *DomainError {
	return NewDomainError(ErrCodeInvalidParameter, fmt.Sprintf("invalid %s: %q", name, value))
}
