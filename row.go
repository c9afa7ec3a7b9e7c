package marktable

import (
	"slices"
	"strings"
	"unicode"
)

// RowKind tells whether a row resolves names against a header sequence.
type RowKind int

const (
	// IndexedRow has no headers; values are reachable by position only.
	IndexedRow RowKind = iota
	// NamedRow shares its table's header sequence for name lookups.
	NamedRow
)

// Row is one record of a table: an ordered value sequence, optionally tied
// to a header sequence it does not own.
//
// A named row may hold fewer or more values than there are headers. Missing
// trailing values read as absent through Get and as "" through Value. Extra
// values are only reachable by index.
type Row struct {
	kind    RowKind
	values  []string
	headers []string
}

// NewRow returns a row holding a copy of values. A nil headers slice makes an
// IndexedRow; anything else makes a NamedRow sharing headers.
func NewRow(values []string, headers []string) *Row {
	r := &Row{values: slices.Clone(values), headers: headers}
	if r.values == nil {
		r.values = []string{}
	}
	if headers != nil {
		r.kind = NamedRow
	}
	return r
}

// Kind reports whether the row is indexed-only or named.
func (r *Row) Kind() RowKind { return r.kind }

// Len returns the physical number of values.
func (r *Row) Len() int { return len(r.values) }

// Values returns a copy of the values in physical order.
func (r *Row) Values() []string { return slices.Clone(r.values) }

// Headers returns the shared header sequence, or nil for an IndexedRow.
func (r *Row) Headers() []string { return r.headers }

// Row implements Rower.
func (r *Row) Row() []string { return r.Values() }

// Header implements Headed.
func (r *Row) Header() []string { return r.headers }

// At returns the value at index i.
func (r *Row) At(i int) (string, bool) {
	if i < 0 || i >= len(r.values) {
		return "", false
	}
	return r.values[i], true
}

// Get returns the value under header name. It reports false when the row is
// indexed-only, the name is unknown, or the row is too short to hold it.
func (r *Row) Get(name string) (string, bool) {
	pos := r.position(name)
	if pos < 0 {
		return "", false
	}
	return r.At(pos)
}

// Value is Get with missing values read as "".
func (r *Row) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// SetAt assigns the value at index i. An index at or past the end grows the
// row, filling the gap with empty strings. Negative indexes are ignored.
func (r *Row) SetAt(i int, value string) bool {
	if i < 0 {
		return false
	}
	for len(r.values) <= i {
		r.values = append(r.values, "")
	}
	r.values[i] = value
	return true
}

// Set assigns the value under header name, growing the row when needed. It
// reports false for indexed-only rows and unknown names.
func (r *Row) Set(name, value string) bool {
	pos := r.position(name)
	if pos < 0 {
		return false
	}
	return r.SetAt(pos, value)
}

// ToMap maps each header to its value. Header positions past the end of
// the row are left out rather than padded. Indexed rows yield an empty map.
func (r *Row) ToMap() map[string]string {
	out := make(map[string]string)
	for _, kv := range r.Pairs() {
		out[kv.Key] = kv.Value
	}
	return out
}

// Pairs is the ordered form of ToMap. It implements Mappable.
func (r *Row) Pairs() []KeyValue {
	if r.kind != NamedRow {
		return nil
	}
	var pairs []KeyValue
	seen := make(map[string]bool, len(r.headers))
	for i, h := range r.headers {
		if i >= len(r.values) {
			break
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		pairs = append(pairs, KeyValue{Key: h, Value: r.values[i]})
	}
	return pairs
}

// cells returns exactly n values, padding with "" and dropping extras.
func (r *Row) cells(n int) []string {
	out := make([]string, n)
	copy(out, r.values)
	return out
}

func (r *Row) position(name string) int {
	if r.kind != NamedRow {
		return -1
	}
	return slices.Index(r.headers, name)
}

// IsSeparatorLine reports whether line is a Markdown divider such as
// "| --- | :-: |". Once pipes and whitespace are removed the rest must be
// non-empty, made only of '-' and ':', and hold at least one '-'.
func IsSeparatorLine(line string) bool {
	rest := strings.Map(func(r rune) rune {
		if r == '|' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
	if rest == "" || !strings.Contains(rest, "-") {
		return false
	}
	return strings.Trim(rest, "-:") == ""
}

// ParseLine splits one Markdown table line into trimmed cell values. One
// leading and one trailing pipe are dropped; every other pipe separates
// cells. Blank input yields an empty slice.
func ParseLine(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return []string{}
	}
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
