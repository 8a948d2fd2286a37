package cli

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderTable renders rows under a header with columns padded to the
// widest cell. Width is measured in display cells so emoji and wide
// runes line up.
func RenderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, cell := range header {
		widths[i] = runewidth.StringWidth(cell)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(formatRow(header, widths)))
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(strings.Repeat("─", totalWidth(widths))))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(formatRow(row, widths))
	}
	return b.String()
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		width := 0
		if i < len(widths) {
			width = widths[i]
		}
		padded[i] = TableCellStyle.Render(runewidth.FillRight(cell, width))
	}
	return strings.Join(padded, "")
}

func totalWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w + 2
	}
	return total
}
