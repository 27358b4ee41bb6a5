package ledger

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const maxCellWidth = 32

// FormatTable writes the workbook rows as a fixed-width table. Cells
// wider than maxCellWidth are truncated with an ellipsis; padding uses
// display width so CJK asset names stay aligned.
func FormatTable(t *Table, w io.Writer) {
	if len(t.Rows) == 0 {
		fmt.Fprintln(w, "No transactions recorded.")
		return
	}

	headers := make([]string, len(t.Columns))
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = strings.TrimSpace(col)
		widths[i] = runewidth.StringWidth(headers[i])
	}

	display := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i := range t.Columns {
			v := ""
			if i < len(row) {
				v = runewidth.Truncate(row[i], maxCellWidth, "...")
			}
			cells[i] = v
			if width := runewidth.StringWidth(v); width > widths[i] {
				widths[i] = width
			}
		}
		display[r] = cells
	}

	writeRow(w, headers, widths)
	total := 2 * (len(widths) - 1)
	for _, width := range widths {
		total += width
	}
	fmt.Fprintln(w, strings.Repeat("-", total))
	for _, cells := range display {
		writeRow(w, cells, widths)
	}

	fmt.Fprintf(w, "\n%d transactions\n", len(t.Rows))
}

func writeRow(w io.Writer, cells []string, widths []int) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprint(w, c)
		if i < len(cells)-1 {
			if pad := widths[i] - runewidth.StringWidth(c); pad > 0 {
				fmt.Fprint(w, strings.Repeat(" ", pad))
			}
		}
	}
	fmt.Fprintln(w)
}
