// Package export serializes collected profile records to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/jonathan/social-scout/internal/profile"
)

// WriteCSV writes rows to path with a header matching the column union.
// Missing fields render as empty cells. Filesystem failures propagate; rows
// are never silently dropped.
func WriteCSV(path string, columns []string, rows []profile.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	cells := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			cells[i] = row[col]
		}
		if err := writer.Write(cells); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV to %s: %w", path, err)
	}
	return nil
}
