package store

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"bookscrape/models"
)

// ExportCSV writes rows to path as CSV with a header row. Parent
// directories are created as needed.
func ExportCSV(path string, rows []models.BookRow) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}

	w := csv.NewWriter(f)
	header := []string{"id", "title", "price", "availability", "rating"}
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatInt(row.ID, 10),
			row.Title,
			strconv.FormatFloat(row.Price, 'f', 2, 64),
			row.Availability,
			row.Rating,
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv records: %w", err)
	}
	return f.Close()
}

// ExportJSON writes rows to path as newline-delimited JSON.
func ExportJSON(path string, rows []models.BookRow) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}

	buffer := bufio.NewWriter(f)
	encoder := json.NewEncoder(buffer)
	for _, row := range rows {
		if err := encoder.Encode(row); err != nil {
			f.Close()
			return fmt.Errorf("encode json record: %w", err)
		}
	}

	if err := buffer.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush json writer: %w", err)
	}
	return f.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
