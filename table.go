package marktable

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Table is a parsed row collection with an optional header sequence. Its
// shape is fixed at construction; cell values stay mutable through the rows
// it hands out.
type Table struct {
	rows     []*Row
	headers  []string
	mode     HeaderMode
	aligns   []Alignment
	registry *Registry
}

type options struct {
	mode      HeaderMode
	registry  *Registry
	aligns    []Alignment
	alignsSet bool
}

// Option configures [New] and [FromRows].
type Option func(*options)

// WithHeaders tells the parser whether the source has a header row. The
// default is [HeadersAuto].
func WithHeaders(mode HeaderMode) Option {
	return func(o *options) { o.mode = mode }
}

// WithRegistry selects the registry used to parse the source and to render
// the table through [Table.Format]. The default is [NewRegistry].
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithAlignments overrides the column alignments recorded by the parser.
func WithAlignments(aligns ...Alignment) Option {
	return func(o *options) {
		o.aligns = aligns
		o.alignsSet = true
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	return o
}

// New parses src as format f. Construction fails when the format has no
// parser, the source cannot be read, or the headers hold duplicates.
func New(src any, f Format, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	p, err := o.registry.Parser(f)
	if err != nil {
		return nil, err
	}
	res, err := p.Parse(src, o.mode)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f, err)
	}
	return newTable(res, o)
}

// FromRows builds a table from rows already in memory. Each row's values are
// copied and bound to headers; a nil headers slice makes a headerless table.
func FromRows(rows []*Row, headers []string, opts ...Option) (*Table, error) {
	o := newOptions(opts)
	o.mode = HeadersOff
	if headers != nil {
		o.mode = HeadersOn
	}
	res := Result{Headers: headers, Rows: make([]*Row, len(rows))}
	for i, row := range rows {
		res.Rows[i] = NewRow(row.values, headers)
	}
	return newTable(res, o)
}

func newTable(res Result, o options) (*Table, error) {
	if dups := duplicates(res.Headers); len(dups) > 0 {
		quoted := make([]string, len(dups))
		for i, d := range dups {
			quoted[i] = strconv.Quote(d)
		}
		return nil, fmt.Errorf("%w: %s", ErrDuplicateHeaders, strings.Join(quoted, ", "))
	}

	t := &Table{
		rows:     res.Rows,
		headers:  res.Headers,
		aligns:   res.Alignments,
		registry: o.registry,
	}
	if t.rows == nil {
		t.rows = []*Row{}
	}
	if o.alignsSet {
		t.aligns = slices.Clone(o.aligns)
	}
	switch {
	case t.headers != nil:
		t.mode = HeadersOn
	case o.mode == HeadersAuto && len(t.rows) == 0:
		t.mode = HeadersAuto
	default:
		t.mode = HeadersOff
	}
	return t, nil
}

// duplicates returns each repeated name once, ordered by where it first
// repeats.
func duplicates(headers []string) []string {
	var dups []string
	count := make(map[string]int, len(headers))
	for _, h := range headers {
		count[h]++
		if count[h] == 2 {
			dups = append(dups, h)
		}
	}
	return dups
}

// Headers returns a copy of the header sequence, or nil when the table has
// none.
func (t *Table) Headers() []string { return slices.Clone(t.headers) }

// HasHeaders reports whether the table has a header sequence.
func (t *Table) HasHeaders() bool { return t.headers != nil }

// HeaderMode reports how headers were settled: [HeadersOn] with a header
// sequence, [HeadersOff] when the source was read as headerless, and
// [HeadersAuto] when inference had nothing to decide on.
func (t *Table) HeaderMode() HeaderMode { return t.mode }

// Alignments returns the column alignments, or nil when every column is
// left aligned.
func (t *Table) Alignments() []Alignment { return slices.Clone(t.aligns) }

// All yields each row with its index. Use [iter.Pull2] for pull-style
// iteration. Rows may be edited in place while iterating.
func (t *Table) All() iter.Seq2[int, *Row] {
	return func(yield func(int, *Row) bool) {
		for i, row := range t.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// Rows yields each row in storage order.
func (t *Table) Rows() iter.Seq[*Row] {
	return func(yield func(*Row) bool) {
		for _, row := range t.rows {
			if !yield(row) {
				return
			}
		}
	}
}

// Each calls fn for every row in storage order.
func (t *Table) Each(fn func(*Row)) {
	for _, row := range t.rows {
		fn(row)
	}
}

// Row returns the row at index i.
func (t *Table) Row(i int) (*Row, bool) {
	if i < 0 || i >= len(t.rows) {
		return nil, false
	}
	return t.rows[i], true
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool { return len(t.rows) == 0 }

// ToRows returns the table as plain data. With headers each row becomes a
// map holding only the values the row has. Without headers each row is
// padded with "" to the longest row in the table.
func (t *Table) ToRows() Rows {
	if t.headers != nil {
		maps := make([]map[string]string, len(t.rows))
		for i, row := range t.rows {
			maps[i] = row.ToMap()
		}
		return Rows{Maps: maps}
	}
	_, plain := rowData(t.rows, nil)
	return Rows{Slices: plain}
}

// ToMarkdown renders the table with the built-in Markdown formatter.
func (t *Table) ToMarkdown() string { return t.render(markdownFormatter{}) }

// ToCSV renders the table with the built-in CSV formatter.
func (t *Table) ToCSV() string { return t.render(csvFormatter{comma: ','}) }

// ToHTML renders the table with the built-in HTML formatter.
func (t *Table) ToHTML() string { return t.render(htmlFormatter{}) }

// String renders the table as Markdown.
func (t *Table) String() string { return t.ToMarkdown() }

func (t *Table) render(fm Formatter) string {
	var sb strings.Builder
	// strings.Builder never fails, so neither do the built-in formatters.
	_ = fm.Format(&sb, t.rows, t.headers, t.aligns)
	return sb.String()
}

// Format renders the table as f using the table's registry.
func (t *Table) Format(f Format) (string, error) {
	var sb strings.Builder
	if err := t.Write(&sb, f); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Write renders the table as f to w using the table's registry.
func (t *Table) Write(w io.Writer, f Format) error {
	fm, err := t.registry.Formatter(f)
	if err != nil {
		return err
	}
	return fm.Format(w, t.rows, t.headers, t.aligns)
}

// derive returns a table sharing t's headers and settings but holding rows.
func (t *Table) derive(rows []*Row) *Table {
	return &Table{
		rows:     rows,
		headers:  t.headers,
		mode:     t.mode,
		aligns:   t.aligns,
		registry: t.registry,
	}
}
