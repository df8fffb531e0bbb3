package parquetio

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// Writer streams rows of type T into a Snappy-compressed Parquet file.
type Writer[T any] struct {
	file   *os.File
	writer *parquet.GenericWriter[T]
	rows   int64
}

// Create truncates or creates the file at path and returns a Writer for it.
func Create[T any](path string) (*Writer[T], error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}
	w := parquet.NewGenericWriter[T](f, parquet.Compression(&parquet.Snappy))
	return &Writer[T]{file: f, writer: w}, nil
}

// Write appends rows to the current row group.
func (w *Writer[T]) Write(rows []T) (int, error) {
	n, err := w.writer.Write(rows)
	w.rows += int64(n)
	if err != nil {
		return n, fmt.Errorf("write parquet rows: %w", err)
	}
	return n, nil
}

// Rows returns the number of rows written so far.
func (w *Writer[T]) Rows() int64 {
	return w.rows
}

// Close flushes the footer and closes the file.
func (w *Writer[T]) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}
