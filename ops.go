package marktable

import (
	"regexp"
	"slices"
)

// Parse reads a Markdown table and returns its plain-data form.
func Parse(markdown string, opts ...Option) (Rows, error) {
	t, err := New(markdown, Markdown, opts...)
	if err != nil {
		return Rows{}, err
	}
	return t.ToRows(), nil
}

// FromArray builds a table from in-memory items. See the Array parser for
// the accepted element types.
func FromArray(items any, opts ...Option) (*Table, error) {
	return New(items, Array, opts...)
}

// Generate renders in-memory items as a Markdown table. Non-string values
// are stringified with fmt.Sprint.
func Generate(items any, opts ...Option) (string, error) {
	t, err := FromArray(items, opts...)
	if err != nil {
		return "", err
	}
	return t.ToMarkdown(), nil
}

// Filter returns a table holding the rows of t with at least one value
// matching pattern. Rows are shared with t, not copied.
func Filter(t *Table, pattern *regexp.Regexp) *Table {
	var rows []*Row
	for _, row := range t.rows {
		if slices.ContainsFunc(row.values, pattern.MatchString) {
			rows = append(rows, row)
		}
	}
	return t.derive(rows)
}

// Map returns a table holding fn applied to each row of t. Returned rows are
// rebound to t's headers; a nil result drops the row.
func Map(t *Table, fn func(*Row) *Row) *Table {
	rows := make([]*Row, 0, len(t.rows))
	for _, row := range t.rows {
		if out := fn(row); out != nil {
			rows = append(rows, NewRow(out.values, t.headers))
		}
	}
	return t.derive(rows)
}
