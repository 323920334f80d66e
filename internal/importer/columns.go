package importer

import "strings"

type column int

const (
	colDescription column = iota
	colAmount
	colType
	colCategory
	colDate
)

// aliases lists the header names accepted for each column, lower-cased.
var aliases = map[column][]string{
	colDescription: {"description", "desc", "memo"},
	colAmount:      {"amount", "value"},
	colType:        {"type", "kind"},
	colCategory:    {"category"},
	colDate:        {"date"},
}

// required columns must appear in the header for a file to be accepted.
var required = []column{colDescription, colAmount, colCategory}

func (c column) String() string {
	return aliases[c][0]
}

// colIndex maps known columns to their position in a row.
type colIndex map[column]int

func indexHeader(header []string) colIndex {
	cols := make(colIndex)

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))

		for c, names := range aliases {
			for _, alias := range names {
				if name != alias {
					continue
				}

				if _, seen := cols[c]; !seen {
					cols[c] = i
				}
			}
		}
	}

	return cols
}

// cell safely gets a trimmed value for c, or "" when the column is absent.
func (cols colIndex) cell(row []string, c column) string {
	idx, ok := cols[c]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
