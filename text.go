package marktable

import (
	"fmt"
	"io"
	"strings"
)

// BorderStyle selects the box-drawing characters of the Text format.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota
	BorderASCII
	BorderHeavy
	BorderDouble
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// ParseBorderStyle converts a flag value into a BorderStyle.
func ParseBorderStyle(s string) (BorderStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rounded":
		return BorderRounded, nil
	case "ascii":
		return BorderASCII, nil
	case "heavy":
		return BorderHeavy, nil
	case "double":
		return BorderDouble, nil
	default:
		return BorderRounded, fmt.Errorf("invalid border style %q", s)
	}
}

// TextFormatter returns a formatter drawing a boxed terminal table with the
// given border. Register it under [Text] to change the default border.
func TextFormatter(style BorderStyle) Formatter {
	return textFormatter{style: style}
}

type textFormatter struct {
	style BorderStyle
}

func (f textFormatter) Format(w io.Writer, rows []*Row, headers []string, aligns []Alignment) error {
	numCols := columnCount(headers, rows)
	if numCols == 0 {
		return nil
	}
	widths := columnWidths(numCols, headers, rows)
	aligns = extendAligns(aligns, numCols)
	bc, ok := borderSets[f.style]
	if !ok {
		bc = borderSets[BorderRounded]
	}

	if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
		return err
	}
	if headers != nil {
		if err := drawBorderedRow(w, headers, widths, aligns, bc.vertical); err != nil {
			return err
		}
		if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := drawBorderedRow(w, row.values, widths, aligns, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

// drawBorderedRow pads missing cells and ignores cells past the last column.
func drawBorderedRow(w io.Writer, cells []string, widths []int, aligns []Alignment, vert string) error {
	var sb strings.Builder
	sb.WriteString(vert)
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(" ")
		sb.WriteString(alignCell(cell, width, aligns[i]))
		sb.WriteString(" ")
		sb.WriteString(vert)
	}
	_, err := fmt.Fprintln(w, sb.String())
	return err
}
