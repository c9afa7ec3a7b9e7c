package marktable

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// columnWidths returns the display width of each of the first numCols
// columns across the header and every row. Values past numCols are ignored.
func columnWidths(numCols int, headers []string, rows []*Row) []int {
	widths := make([]int, numCols)
	for i, h := range headers {
		if w := runewidth.StringWidth(h); i < numCols && w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i, cell := range row.values {
			if i >= numCols {
				break
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// columnCount is the header count when there are headers, otherwise the
// widest row.
func columnCount(headers []string, rows []*Row) int {
	if headers != nil {
		return len(headers)
	}
	return maxLen(rows)
}

func extendAligns(aligns []Alignment, numCols int) []Alignment {
	if len(aligns) >= numCols {
		return aligns[:numCols]
	}
	extended := make([]Alignment, numCols)
	copy(extended, aligns)
	return extended
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

// separatorCell renders one divider cell at least three characters wide.
func separatorCell(width int, align Alignment) string {
	width = max(width, 3)
	switch align {
	case AlignRight:
		return strings.Repeat("-", width-1) + ":"
	case AlignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	default:
		return strings.Repeat("-", width)
	}
}

// parseAlignments reads alignment markers off a separator line. It returns
// nil when every column is left aligned.
func parseAlignments(line string) []Alignment {
	cells := ParseLine(line)
	aligns := make([]Alignment, len(cells))
	aligned := false
	for i, c := range cells {
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		switch {
		case left && right && len(c) > 1:
			aligns[i] = AlignCenter
		case right:
			aligns[i] = AlignRight
		default:
			continue
		}
		aligned = true
	}
	if !aligned {
		return nil
	}
	return aligns
}
