package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const minColumnWidth = 3

// FormatTable renders header and rows as a pipe table whose columns are padded
// to their display width, so umlauts and wide runes line up in a terminal.
// Rows shorter than the widest row are padded with empty cells.
func FormatTable(header []string, rows [][]string) []string {
	table := make([][]string, 0, len(rows)+1)
	table = append(table, header)
	table = append(table, rows...)

	colCount := 0
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	if colCount == 0 {
		return nil
	}

	colWidths := make([]int, colCount)

	for _, row := range table {
		for i := 0; i < len(row); i++ {
			width := runewidth.StringWidth(strings.TrimSpace(row[i]))
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	for i := range colWidths {
		if colWidths[i] < minColumnWidth {
			colWidths[i] = minColumnWidth
		}
	}

	result := make([]string, 0, len(table)+1)
	result = append(result, renderRow(table[0], colWidths))
	result = append(result, renderSeparator(colWidths))

	for _, row := range table[1:] {
		result = append(result, renderRow(row, colWidths))
	}

	return result
}

func renderRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		sb.WriteString(" ")

		content := ""
		if j < len(row) {
			content = strings.TrimSpace(row[j])
		}

		sb.WriteString(content)

		padding := width - runewidth.StringWidth(content)
		if padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

func renderSeparator(colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for _, width := range colWidths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", width))
		sb.WriteString(" |")
	}

	return sb.String()
}
