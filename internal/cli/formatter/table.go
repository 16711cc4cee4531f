package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// colGap separates table columns.
const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Cells may carry ANSI styling; widths are measured on visible cells.
// The row at selected gets a cursor marker; pass -1 for none.
func RenderTable(headers []string, rows [][]string, selected int) string {
	if len(headers) == 0 {
		return ""
	}
	widths := columnWidths(headers, rows)

	var b strings.Builder
	b.WriteString("  ")
	writeRow(&b, headers, widths, StyleHeader.Render)
	b.WriteString("  ")
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for i, row := range rows {
		if i == selected {
			b.WriteString(StyleHeader.Render("▸ "))
		} else {
			b.WriteString("  ")
		}
		writeRow(&b, row, widths, nil)
	}
	return b.String()
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

func writeRow(b *strings.Builder, cells []string, widths []int, style func(...string) string) {
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := max(widths[i]-lipgloss.Width(cell), 0)
		if style != nil {
			cell = style(cell)
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}
	b.WriteString("\n")
}
