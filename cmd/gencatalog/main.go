package main

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// gencatalog writes sample product catalogs for local runs.
// office.csv.gz and furniture.csv.gz both list "Desk Lamp", so seeding
// both in skip mode creates it once. furniture.csv.gz also carries one
// row with an unparseable price that the import reports as an error.
func main() {
	dataDir := "data/catalogs"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	header := []string{"name", "description", "price", "quantity", "category"}
	catalogs := map[string][][]string{
		"office.csv.gz": {
			{"Stapler", "Full strip, 20 sheet capacity", "12.99", "40", "Office Supplies"},
			{"Ballpoint Pens (12)", "Blue ink, medium point", "4.50", "150", "Office Supplies"},
			{"A4 Copy Paper", "500 sheets, 80gsm", "6.25", "8", "Office Supplies"},
			{"Desk Lamp", "LED, adjustable arm", "34.00", "15", "Lighting"},
			{"Whiteboard Markers (4)", "Assorted colours", "7.80", "5", "Office Supplies"},
		},
		"furniture.csv.gz": {
			{"Desk Lamp", "LED, adjustable arm", "29.00", "20", "Lighting"},
			{"Office Chair", "Mesh back, lumbar support", "189.00", "6", "Furniture"},
			{"Standing Desk", "Electric, 140x70cm", "449.00", "3", "Furniture"},
			{"Bookshelf", "Five shelves, oak veneer", "n/a", "4", "Furniture"},
			{"Filing Cabinet", "Three drawers, lockable", "129.50", "9", "Furniture"},
		},
	}

	for filename, rows := range catalogs {
		filePath := filepath.Join(dataDir, filename)

		if err := createCatalogFile(filePath, header, rows); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d rows\n", filePath, len(rows))
	}

	fmt.Println("\nSample catalogs created successfully!")
	fmt.Println("\nSeed them at startup with:")
	fmt.Printf("  CATALOG_SEED_FILES=%s,%s\n",
		filepath.Join(dataDir, "office.csv.gz"),
		filepath.Join(dataDir, "furniture.csv.gz"))
}

func createCatalogFile(filePath string, header []string, rows [][]string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	w := csv.NewWriter(gzipWriter)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}

	return nil
}
