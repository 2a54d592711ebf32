package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		expected Window
	}{
		{name: "Defaults", page: 0, limit: 0, expected: Window{Limit: 10, Offset: 0}},
		{name: "Second page", page: 2, limit: 10, expected: Window{Limit: 10, Offset: 10}},
		{name: "Limit capped", page: 1, limit: 500, expected: Window{Limit: 100, Offset: 0}},
		{name: "Negative page", page: -3, limit: 5, expected: Window{Limit: 5, Offset: 0}},
		{name: "Negative limit", page: 3, limit: -1, expected: Window{Limit: 10, Offset: 20}},
		{name: "Overflowing page", page: math.MaxInt / 5, limit: 10, expected: Window{Limit: 10, Offset: 0}},
		{name: "Largest page", page: math.MaxInt, limit: 1, expected: Window{Limit: 1, Offset: math.MaxInt - 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(tt.page, tt.limit)
			assert.Equal(t, tt.expected, w)
			assert.GreaterOrEqual(t, NewPagination(3, w).Page, 1)
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		window   Window
		expected Pagination
	}{
		{
			name:     "Empty result",
			total:    0,
			window:   Window{Limit: 10, Offset: 0},
			expected: Pagination{Total: 0, Page: 1, Limit: 10, Pages: 0},
		},
		{
			name:     "Partial last page",
			total:    21,
			window:   Window{Limit: 10, Offset: 20},
			expected: Pagination{Total: 21, Page: 3, Limit: 10, Pages: 3},
		},
		{
			name:     "Exact multiple",
			total:    20,
			window:   Window{Limit: 5, Offset: 5},
			expected: Pagination{Total: 20, Page: 2, Limit: 5, Pages: 4},
		},
		{
			name:     "Page beyond results",
			total:    3,
			window:   Window{Limit: 2, Offset: 10},
			expected: Pagination{Total: 3, Page: 6, Limit: 2, Pages: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewPagination(tt.total, tt.window))
		})
	}
}

func TestProductCriteria_NormalizeAndValidate(t *testing.T) {
	negative := -1.0

	c := ProductCriteria{}
	c.Normalize()
	assert.Equal(t, ProductSortName, c.SortBy)
	assert.Equal(t, SortAsc, c.SortOrder)
	assert.NoError(t, c.Validate())

	c = ProductCriteria{MinPrice: &negative}
	c.Normalize()
	err := c.Validate()
	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, ErrCodeInvalidParameter, de.Code)
}

func TestProductCriteria_NormalizeSubstitutesUnknownSort(t *testing.T) {
	tests := []struct {
		name          string
		sortBy        ProductSortField
		sortOrder     SortOrder
		expectedBy    ProductSortField
		expectedOrder SortOrder
	}{
		{name: "Unknown field and upper-case order", sortBy: "created", sortOrder: "DESC", expectedBy: ProductSortID, expectedOrder: SortDesc},
		{name: "Unknown order sorts descending", sortBy: ProductSortPrice, sortOrder: "sideways", expectedBy: ProductSortPrice, expectedOrder: SortDesc},
		{name: "Mixed case is accepted", sortBy: "Quantity", sortOrder: "ASC", expectedBy: ProductSortQuantity, expectedOrder: SortAsc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ProductCriteria{SortBy: tt.sortBy, SortOrder: tt.sortOrder}
			c.Normalize()
			assert.Equal(t, tt.expectedBy, c.SortBy)
			assert.Equal(t, tt.expectedOrder, c.SortOrder)
			assert.NoError(t, c.Validate())
		})
	}
}

func TestOrderCriteria_NormalizeAndValidate(t *testing.T) {
	c := OrderCriteria{}
	c.Normalize()
	assert.Equal(t, OrderSortID, c.SortBy)
	assert.Equal(t, SortDesc, c.SortOrder)
	assert.NoError(t, c.Validate())

	c = OrderCriteria{Status: "shipped"}
	c.Normalize()
	assert.ErrorIs(t, c.Validate(), ErrInvalidStatus)

	c = OrderCriteria{SortBy: "customer", SortOrder: "upward"}
	c.Normalize()
	assert.Equal(t, OrderSortID, c.SortBy)
	assert.Equal(t, SortDesc, c.SortOrder)
	assert.NoError(t, c.Validate())

	c = OrderCriteria{SortBy: "TOTAL", SortOrder: "Asc"}
	c.Normalize()
	assert.Equal(t, OrderSortTotal, c.SortBy)
	assert.Equal(t, SortAsc, c.SortOrder)

	c = OrderCriteria{Status: OrderStatusCancelled, SortBy: OrderSortDate, SortOrder: SortAsc}
	assert.NoError(t, c.Validate())
}

func TestNewCategoryStatistics(t *testing.T) {
	stats := NewCategoryStatistics(nil)
	assert.Equal(t, CategoryStatistics{}, stats)

	stats = NewCategoryStatistics([]Product{
		{Price: 10, Quantity: 2},
		{Price: 20, Quantity: 1},
	})
	assert.Equal(t, 2, stats.TotalProducts)
	assert.InDelta(t, 40.0, stats.TotalValue, 0.001)
	assert.InDelta(t, 15.0, stats.AveragePrice, 0.001)
	assert.Equal(t, 3, stats.TotalQuantity)

	stats = NewCategoryStatistics([]Product{
		{Price: 0.1, Quantity: 3},
		{Price: 0.2, Quantity: 0},
		{Price: 1, Quantity: 0},
	})
	assert.Equal(t, 0.3, stats.TotalValue)
	assert.Equal(t, 0.43, stats.AveragePrice)
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 0.3, RoundCents(0.1+0.2))
	assert.Equal(t, 3.33, RoundCents(10.0/3))
	assert.Equal(t, 2.68, RoundCents(2.675000001))
	assert.Equal(t, 0.0, RoundCents(0))
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("PENDING").Valid())
}

func TestProductInput_Validate(t *testing.T) {
	in := ProductInput{Name: "  Widget ", Price: 10}
	assert.NoError(t, in.Validate())
	assert.Equal(t, "Widget", in.Name)

	in = ProductInput{Name: " ", Price: 10}
	assert.Error(t, in.Validate())

	in = ProductInput{Name: "Widget", Price: -0.01}
	assert.ErrorIs(t, in.Validate(), ErrInvalidPrice)

	for _, price := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		in = ProductInput{Name: "Widget", Price: price}
		assert.ErrorIs(t, in.Validate(), ErrInvalidPrice, "price %v", price)
	}
}

func TestCustomerInput_Validate(t *testing.T) {
	in := CustomerInput{Name: "Ada", Email: " Ada@Example.com "}
	assert.NoError(t, in.Validate())
	assert.Equal(t, "ada@example.com", in.Email)

	in = CustomerInput{Name: "Ada", Email: "not-an-email"}
	assert.Error(t, in.Validate())

	in = CustomerInput{Email: "ada@example.com"}
	assert.Error(t, in.Validate())
}
