package csv

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Writer appends rows to a fixed-column CSV file. The header is written
// once at creation and every row is flushed immediately, so a run that
// dies mid-scrape leaves a readable file with all rows written so far.
type Writer struct {
	path   string
	header []string
	file   *os.File
	csv    *csv.Writer
	rows   int
}

func NewWriter(path string, header []string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	w := &Writer{
		path:   path,
		header: header,
		file:   file,
		csv:    csv.NewWriter(file),
	}

	if err := w.csv.Write(header); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to flush header to %s: %w", path, err)
	}

	return w, nil
}

// Write appends one row and flushes it to disk.
func (w *Writer) Write(record []string) error {
	if len(record) != len(w.header) {
		return fmt.Errorf("record has %d fields, header has %d", len(record), len(w.header))
	}

	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("failed to write row to %s: %w", w.path, err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush row to %s: %w", w.path, err)
	}

	w.rows++
	return nil
}

// Rows returns the number of data rows written, excluding the header.
func (w *Writer) Rows() int {
	return w.rows
}

func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
