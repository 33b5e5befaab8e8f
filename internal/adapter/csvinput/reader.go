// Package csvinput turns an uploaded CSV file into the ordered texts of a batch.
package csvinput

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// TextColumn is the column holding the texts to classify
const TextColumn = "text"

var (
	// ErrMissingTextColumn is returned when the header has no text column
	ErrMissingTextColumn = errors.New("CSV must have a column named 'text'")
	// ErrEmptyFile is returned when the file has no header row
	ErrEmptyFile = errors.New("CSV file is empty")
)

// ReadTexts returns the values of the text column in row order
func ReadTexts(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == TextColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, ErrMissingTextColumn
	}

	texts := []string{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if col >= len(record) {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, record[col])
	}

	return texts, nil
}
