package spreadsheet

import (
	"fmt"
	"strings"
)

// Row is one non-blank sheet row keyed by lower-cased header.
// Blank cells are absent from Values.
type Row struct {
	// Number is the 1-based sheet row; the header is row 1.
	Number int
	Values map[string]string
}

// Get returns the trimmed value of col.
func (r Row) Get(col string) (string, bool) {
	v, ok := r.Values[col]
	return v, ok
}

// Parse turns a raw grid into rows. Rows lacking any of the required columns are
// skipped and reported.
func Parse(grid [][]string, required ...string) ([]Row, []string) {
	if len(grid) == 0 {
		return nil, nil
	}

	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var (
		rows   []Row
		errors []string
	)
	for i, record := range grid[1:] {
		number := i + 2
		values := make(map[string]string, len(record))
		for j, cell := range record {
			if j >= len(headers) || headers[j] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			values[headers[j]] = cell
		}
		if len(values) == 0 {
			continue
		}

		missing := ""
		for _, col := range required {
			if _, ok := values[col]; !ok {
				missing = col
				break
			}
		}
		if missing != "" {
			errors = append(errors, fmt.Sprintf("missing key '%s' at row %d", missing, number))
			continue
		}
		rows = append(rows, Row{Number: number, Values: values})
	}
	return rows, errors
}
