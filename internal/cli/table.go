package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"lfucache/internal/cache"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	usesStyle   = cellStyle.Align(lipgloss.Right)
)

// renderTable draws a snapshot as a KEY / VALUE / USES table.
func renderTable(entries []cache.Entry[string, string]) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KEY", "VALUE", "USES").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2:
				return usesStyle
			default:
				return cellStyle
			}
		})
	for _, e := range entries {
		t.Row(e.Key, e.Value, strconv.Itoa(e.Uses))
	}
	return t.Render() + "\n"
}
