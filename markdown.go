package marktable

import (
	"fmt"
	"io"
	"strings"
)

type markdownParser struct{}

func (markdownParser) Parse(src any, mode HeaderMode) (Result, error) {
	text, err := readText(src, Markdown)
	if err != nil {
		return Result{}, err
	}
	lines := markdownLines(text)
	if len(lines) == 0 {
		return Result{}, nil
	}

	withHeaders := mode == HeadersOn
	if mode == HeadersAuto {
		withHeaders = len(lines) >= 2 && IsSeparatorLine(lines[1])
	}

	var res Result
	start := 0
	if withHeaders {
		res.Headers = ParseLine(lines[0])
		if len(lines) >= 2 && IsSeparatorLine(lines[1]) {
			res.Alignments = parseAlignments(lines[1])
		}
		start = 1
	}
	for _, line := range lines[start:] {
		if IsSeparatorLine(line) {
			continue
		}
		res.Rows = append(res.Rows, NewRow(ParseLine(line), res.Headers))
	}
	return res, nil
}

// markdownLines returns the trimmed, non-blank lines of text.
func markdownLines(text string) []string {
	var lines []string
	for line := range strings.Lines(text) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

type markdownFormatter struct{}

func (markdownFormatter) Format(w io.Writer, rows []*Row, headers []string, aligns []Alignment) error {
	if len(rows) == 0 && headers == nil {
		return nil
	}
	numCols := columnCount(headers, rows)
	widths := columnWidths(numCols, headers, rows)
	aligns = extendAligns(aligns, numCols)

	lines := make([]string, 0, len(rows)+2)
	if headers != nil {
		lines = append(lines, markdownRow(headers, widths, aligns))
		sep := make([]string, numCols)
		for i, width := range widths {
			sep[i] = separatorCell(width, aligns[i])
		}
		lines = append(lines, fmt.Sprintf("| %s |", strings.Join(sep, " | ")))
	}
	for _, row := range rows {
		lines = append(lines, markdownRow(row.values, widths, aligns))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func markdownRow(cells []string, widths []int, aligns []Alignment) string {
	padded := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		padded[i] = alignCell(cell, width, aligns[i])
	}
	return fmt.Sprintf("| %s |", strings.Join(padded, " | "))
}
