package model

// SalesSummary aggregates order totals over an optional date range.
// Every field is zero when no orders match.
type SalesSummary struct {
	TotalOrders       int     `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	MaxOrder          float64 `json:"maxOrder"`
	MinOrder          float64 `json:"minOrder"`
}

// DailySales is one calendar day of the daily sales rollup.
type DailySales struct {
	Date         string  `json:"date"`
	TotalSales   float64 `json:"totalSales"`
	OrderCount   int     `json:"orderCount"`
	AverageOrder float64 `json:"averageOrder"`
}

// InventoryValue aggregates stock across every product.
type InventoryValue struct {
	TotalItems   int     `json:"totalItems"`
	TotalValue   float64 `json:"totalValue"`
	ProductCount int     `json:"productCount"`
}

// TopSellingProduct ranks a product by units sold across all order items.
type TopSellingProduct struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	UnitsSold int     `json:"unitsSold"`
	Revenue   float64 `json:"revenue"`
}

// LowInventoryReport pairs low-stock products with the overall inventory value.
type LowInventoryReport struct {
	Products  []Product      `json:"products"`
	Inventory InventoryValue `json:"inventory"`
}

// Sales report types accepted by the sales report endpoint.
const (
	SalesReportSummary = "summary"
	SalesReportDaily   = "daily"
)

// SalesReport wraps a sales summary or daily rollup with its type.
type SalesReport struct {
	Report any    `json:"report"`
	Type   string `json:"type"`
}

// ImportResult reports the outcome of a catalog import.
type ImportResult struct {
	Created int           `json:"created"`
	Updated int           `json:"updated"`
	Skipped int           `json:"skipped"`
	Errors  []ImportError `json:"errors,omitempty"`
}

// ImportError describes a catalog row that could not be imported.
type ImportError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
