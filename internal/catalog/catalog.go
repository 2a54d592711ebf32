package catalog

import (
	"context"
	"fmt"

	"shopdesk/internal/model"
)

// Mode selects how an import treats rows whose name matches an existing product.
type Mode string

const (
	// ModeSkip leaves existing products untouched.
	ModeSkip Mode = "skip"
	// ModeUpdate overwrites existing products with the row's fields.
	ModeUpdate Mode = "update"
)

// ParseMode parses an import mode. An empty string selects ModeSkip.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeSkip:
		return ModeSkip, nil
	case ModeUpdate:
		return ModeUpdate, nil
	}
	return "", model.NewDomainError(model.ErrCodeInvalidParameter, fmt.Sprintf("invalid mode: %q", s))
}

// Row is a valid catalog row and the line it was read from.
type Row struct {
	Line  int
	Input model.ProductInput
}

// Catalog is a parsed product catalog. Errors lists the rows that were
// rejected while parsing.
type Catalog struct {
	Source string
	Rows   []Row
	Errors []model.ImportError
}

// Loader defines the interface for loading catalog files.
type Loader interface {
	// Load reads a CSV catalog, gunzipping it when the name ends in .gz.
	Load(ctx context.Context, path string) (*Catalog, error)
}

// ProductStore is the subset of product persistence an import needs.
type ProductStore interface {
	FindByName(ctx context.Context, name string) (*model.Product, error)
	Create(ctx context.Context, input model.ProductInput) (*model.Product, error)
	Update(ctx context.Context, id int64, input model.ProductInput) (*model.Product, error)
}
