package layout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dasdy/keyview/model"
)

var requiredColumns = []string{"x", "y", "w", "h"}

// ParseKeyPositions reads a CSV file with a header row naming at least x, y, w and h
// columns, plus an optional r column. Positions and sizes are multiplied by
// scaleFactor; rotation is kept in degrees.
func ParseKeyPositions(r io.Reader, scaleFactor float64) ([]model.KeyGeometry, error) {
	if scaleFactor <= 0 {
		return nil, fmt.Errorf("invalid scale factor %v: %w", scaleFactor, errNotPositive)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Format: FormatCSV, Line: 1, Err: errMissingField}
	}

	if err != nil {
		return nil, &ParseError{Format: FormatCSV, Line: csvErrorLine(err), Err: err}
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, &ParseError{Format: FormatCSV, Line: 1, Field: name, Err: errMissingField}
		}
	}

	var keys []model.KeyGeometry

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, &ParseError{Format: FormatCSV, Line: csvErrorLine(err), Err: err}
		}

		line, _ := reader.FieldPos(0)

		if isBlankRecord(record) {
			continue
		}

		var values [4]float64

		for i, name := range requiredColumns {
			v, err := numberField(record, columns[name])
			if err != nil {
				return nil, &ParseError{Format: FormatCSV, Line: line, Field: name, Err: err}
			}

			values[i] = v
		}

		if values[2] <= 0 {
			return nil, &ParseError{Format: FormatCSV, Line: line, Field: "w", Err: errNotPositive}
		}

		if values[3] <= 0 {
			return nil, &ParseError{Format: FormatCSV, Line: line, Field: "h", Err: errNotPositive}
		}

		rotation := 0.0

		if idx, ok := columns["r"]; ok {
			rotation, err = numberField(record, idx)
			if errors.Is(err, errMissingField) {
				rotation = 0
			} else if err != nil {
				return nil, &ParseError{Format: FormatCSV, Line: line, Field: "r", Err: err}
			}
		}

		key := model.KeyGeometry{X: values[0], Y: values[1], W: values[2], H: values[3]}
		key = key.Scaled(scaleFactor)
		key.R = rotation

		keys = append(keys, key)
	}

	return keys, nil
}

func numberField(record []string, idx int) (float64, error) {
	if idx >= len(record) {
		return 0, errMissingField
	}

	raw := strings.TrimSpace(record[idx])
	if raw == "" {
		return 0, errMissingField
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse %q: %w", raw, err)
	}

	return v, nil
}

func csvErrorLine(err error) int {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return csvErr.Line
	}

	return 0
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// ParseKeymapTable reads a CSV keymap. Every non-empty cell contributes its last
// whitespace-separated token, so "LAYER1 A" yields "A". Empty cells are skipped.
func ParseKeymapTable(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var result []string

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, &ParseError{Format: FormatKeymapCSV, Line: csvErrorLine(err), Err: err}
		}

		for _, cell := range record {
			tokens := strings.Fields(cell)
			if len(tokens) == 0 {
				continue
			}

			result = append(result, tokens[len(tokens)-1])
		}
	}

	return result, nil
}
