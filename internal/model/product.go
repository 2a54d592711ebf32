package model

import (
	"math"
	"strings"
	"time"
)

// Product represents an item in the store catalogue.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Quantity    int       `json:"quantity" db:"quantity"`
	Category    string    `json:"category,omitempty" db:"category"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductInput is the payload for creating or replacing a product.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
}

// Validate trims the input and checks the fields a product row requires.
func (in *ProductInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)

	if in.Name == "" {
		return NewDomainError(ErrCodeMissingField, "name is required")
	}
	if in.Price < 0 || math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		return ErrInvalidPrice
	}
	return nil
}

// CategoryStatistics summarises the products of one category.
type CategoryStatistics struct {
	TotalProducts int     `json:"totalProducts"`
	TotalValue    float64 `json:"totalValue"`
	AveragePrice  float64 `json:"averagePrice"`
	TotalQuantity int     `json:"totalQuantity"`
}

// ProductCategoryResult is the response for a category lookup.
type ProductCategoryResult struct {
	Products   []Product          `json:"products"`
	Statistics CategoryStatistics `json:"statistics"`
}

// NewCategoryStatistics derives the statistics for a list of products.
// AveragePrice is 0 for an empty list.
func NewCategoryStatistics(products []Product) CategoryStatistics {
	stats := CategoryStatistics{TotalProducts: len(products)}
	var priceSum float64
	for _, p := range products {
		stats.TotalValue += p.Price * float64(p.Quantity)
		stats.TotalQuantity += p.Quantity
		priceSum += p.Price
	}
	if stats.TotalProducts > 0 {
		stats.AveragePrice = RoundCents(priceSum / float64(stats.TotalProducts))
	}
	stats.TotalValue = RoundCents(stats.TotalValue)
	return stats
}

// RoundCents rounds an amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
