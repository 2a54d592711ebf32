package catalog

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shopdesk/internal/model"
)

// Catalog columns. name and price are required.
const (
	colName        = "name"
	colDescription = "description"
	colPrice       = "price"
	colQuantity    = "quantity"
	colCategory    = "category"
)

// Decode parses a catalog from r, gunzipping it first when gzipped is set.
func Decode(r io.Reader, gzipped bool) (*Catalog, error) {
	if gzipped {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	rows, rowErrors, err := ParseCSV(r)
	if err != nil {
		return nil, err
	}
	return &Catalog{Rows: rows, Errors: rowErrors}, nil
}

// ParseCSV reads a catalog with a header row. Column names are matched
// case-insensitively and may appear in any order. Rows that fail
// validation are reported as ImportErrors carrying their line number;
// only an unreadable stream or an unusable header is returned as err.
func ParseCSV(r io.Reader) ([]Row, []model.ImportError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("catalog is empty")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[name] = i
	}
	for _, required := range []string{colName, colPrice} {
		if _, ok := columns[required]; !ok {
			return nil, nil, fmt.Errorf("catalog header is missing column %q", required)
		}
	}

	rows := []Row{}
	var rowErrors []model.ImportError
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read catalog: %w", err)
		}

		line, _ := reader.FieldPos(0)
		input, err := parseRecord(record, columns)
		if err != nil {
			rowErrors = append(rowErrors, model.ImportError{Row: line, Message: err.Error()})
			continue
		}
		rows = append(rows, Row{Line: line, Input: input})
	}

	return rows, rowErrors, nil
}

func parseRecord(record []string, columns map[string]int) (model.ProductInput, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	input := model.ProductInput{
		Name:        field(colName),
		Description: field(colDescription),
		Category:    field(colCategory),
	}

	price := field(colPrice)
	if price == "" {
		return input, errors.New("price is required")
	}
	p, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return input, fmt.Errorf("invalid price %q", price)
	}
	input.Price = p

	if quantity := field(colQuantity); quantity != "" {
		q, err := strconv.Atoi(quantity)
		if err != nil {
			return input, fmt.Errorf("invalid quantity %q", quantity)
		}
		input.Quantity = q
	}

	if err := input.Validate(); err != nil {
		return input, err
	}
	return input, nil
}
