package marktable

import (
	"fmt"
	"io"
	"maps"
	"slices"
)

// Result is what a Parser hands to a Table: the parsed rows, the header
// sequence (nil when the source has none), and optional column alignments.
type Result struct {
	Rows       []*Row
	Headers    []string
	Alignments []Alignment
}

// Rows is the plain-data form of a table as returned by [Table.ToRows].
// Maps is set for tables with headers, Slices for tables without.
type Rows struct {
	Maps   []map[string]string
	Slices [][]string
}

// Len returns the number of rows.
func (r Rows) Len() int {
	if r.Maps != nil {
		return len(r.Maps)
	}
	return len(r.Slices)
}

// Equal reports whether both hold the same rows. Two empty values are equal
// whatever their header mode.
func (r Rows) Equal(o Rows) bool {
	if r.Len() == 0 && o.Len() == 0 {
		return true
	}
	if (r.Maps != nil) != (o.Maps != nil) {
		return false
	}
	if r.Maps != nil {
		return slices.EqualFunc(r.Maps, o.Maps, func(a, b map[string]string) bool {
			return maps.Equal(a, b)
		})
	}
	return slices.EqualFunc(r.Slices, o.Slices, func(a, b []string) bool {
		return slices.Equal(a, b)
	})
}

// String renders the rows with quoted values.
func (r Rows) String() string {
	if r.Maps != nil {
		return fmt.Sprintf("%q", r.Maps)
	}
	if r.Slices == nil {
		return "[]"
	}
	return fmt.Sprintf("%q", r.Slices)
}

// rowData returns ordered pairs for tables with headers, or slices padded to
// the widest row for tables without. Exactly one of the two is non-nil.
func rowData(rows []*Row, headers []string) ([][]KeyValue, [][]string) {
	if headers != nil {
		named := make([][]KeyValue, len(rows))
		for i, row := range rows {
			named[i] = row.Pairs()
		}
		return named, nil
	}
	width := maxLen(rows)
	plain := make([][]string, len(rows))
	for i, row := range rows {
		plain[i] = row.cells(width)
	}
	return nil, plain
}

func maxLen(rows []*Row) int {
	n := 0
	for _, row := range rows {
		n = max(n, row.Len())
	}
	return n
}

// readText accepts the textual source kinds every text parser understands.
func readText(src any, f Format) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case io.Reader:
		b, err := io.ReadAll(v)
		if err != nil {
			return "", fmt.Errorf("read %s source: %w", f, err)
		}
		return string(b), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: cannot parse %s from %T", ErrMalformedSource, f, src)
	}
}
