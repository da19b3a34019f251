package export

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// WriteParquetFile writes rows to a new Parquet file at path, carrying the
// same columns as the CSV export.
func WriteParquetFile(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := parquet.NewGenericWriter[Row](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("closing parquet writer for %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
