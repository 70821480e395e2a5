package tables

import (
	"fmt"
	"strconv"
	"strings"
)

// Render lays out rows as an aligned text table. The first row is treated as
// the header and separated from the body by a rule. Columns are sized
// independently; short rows are padded with empty cells.
func Render(rows [][]string) string {
	columns := 0
	for _, row := range rows {
		if len(row) > columns {
			columns = len(row)
		}
	}

	// Widths are measured on the escaped cells so escaping cannot push a
	// rendered cell past its column.
	escaped := make([][]string, len(rows))
	for i, row := range rows {
		escaped[i] = make([]string, len(row))
		for j, cell := range row {
			escaped[i][j] = escape(cell)
		}
	}

	widths := make([]int, columns)
	for _, row := range escaped {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	var b strings.Builder

	writeRow := func(row []string) {
		for i := 0; i < columns; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString("| " + fmt.Sprintf("%-"+strconv.Itoa(widths[i])+"s", cell) + " ")
		}
		b.WriteString("|\n")
	}

	handledHeader := false
	for _, row := range escaped {
		writeRow(row)

		if !handledHeader {
			for i := 0; i < columns; i++ {
				b.WriteString("| " + strings.Repeat("-", widths[i]) + " ")
			}
			b.WriteString("|\n")
			handledHeader = true
		}
	}

	return strings.Trim(b.String(), "\n")
}

func escape(cell string) string {
	return strings.ReplaceAll(cell, "|", "\\|")
}
