package marktable_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/bjaus/marktable"
)

// --- Formatting ---

func TestHTMLFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		rows    [][]string
		headers []string
		aligns  []marktable.Alignment
		want    string
	}{
		"headers and one row": {
			headers: []string{"Name", "Age"},
			rows:    [][]string{{"Alice", "30"}},
			want: "<table>\n<thead><tr>\n<th>Name</th>\n<th>Age</th>\n</tr></thead>\n" +
				"<tbody><tr>\n<td>Alice</td>\n<td>30</td>\n</tr></tbody>\n</table>",
		},
		"several rows": {
			headers: []string{"A", "B"},
			rows:    [][]string{{"1", "2"}, {"3", "4"}},
			want: "<table>\n<thead><tr>\n<th>A</th>\n<th>B</th>\n</tr></thead>\n" +
				"<tbody>\n<tr>\n<td>1</td>\n<td>2</td>\n</tr>\n<tr>\n<td>3</td>\n<td>4</td>\n</tr>\n</tbody>\n</table>",
		},
		"headerless": {
			rows: [][]string{{"x", "y"}},
			want: "<table><tbody><tr>\n<td>x</td>\n<td>y</td>\n</tr></tbody></table>",
		},
		"single cell": {
			rows: [][]string{{"x"}},
			want: "<table><tbody><tr><td>x</td></tr></tbody></table>",
		},
		"short row padded to headers": {
			headers: []string{"A", "B"},
			rows:    [][]string{{"1"}},
			want: "<table>\n<thead><tr>\n<th>A</th>\n<th>B</th>\n</tr></thead>\n" +
				"<tbody><tr>\n<td>1</td>\n<td></td>\n</tr></tbody>\n</table>",
		},
		"line breaks": {
			rows: [][]string{{`a\nb`, "c\nd"}},
			want: "<table><tbody><tr>\n<td>a<br>b</td>\n<td>c<br>d</td>\n</tr></tbody></table>",
		},
		"escaping": {
			rows: [][]string{{`<b>&"'`}},
			want: "<table><tbody><tr><td>&lt;b&gt;&amp;&#34;&#39;</td></tr></tbody></table>",
		},
		"alignment": {
			headers: []string{"A", "B"},
			rows:    [][]string{{"1", "2"}},
			aligns:  []marktable.Alignment{marktable.AlignCenter, marktable.AlignRight},
			want: "<table>\n<thead><tr>\n<th style=\"text-align: center\">A</th>\n<th style=\"text-align: right\">B</th>\n</tr></thead>\n" +
				"<tbody><tr>\n<td style=\"text-align: center\">1</td>\n<td style=\"text-align: right\">2</td>\n</tr></tbody>\n</table>",
		},
		"headers only": {
			headers: []string{"A"},
			want:    "<table>\n<thead><tr><th>A</th></tr></thead>\n<tbody></tbody>\n</table>",
		},
		"empty": {
			want: "",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rows := make([]*marktable.Row, len(tt.rows))
			for i, r := range tt.rows {
				rows[i] = marktable.NewRow(r, tt.headers)
			}
			tab, err := marktable.FromRows(rows, tt.headers, marktable.WithAlignments(tt.aligns...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, tab.ToHTML())
		})
	}
}

func TestHTMLWriteError(t *testing.T) {
	t.Parallel()
	tab := mustTable(t, people, marktable.Markdown)
	assert.ErrorIs(t, tab.Write(&errWriter{}, marktable.HTML), errWriteFailed)
}

// --- Parsing ---

func TestHTMLParse(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input       string
		mode        marktable.HeaderMode
		wantHeaders []string
		wantRows    marktable.Rows
	}{
		"th row becomes headers": {
			input:       "<table><tr><th>Name</th><th>Age</th></tr><tr><td>Alice</td><td>30</td></tr></table>",
			wantHeaders: []string{"Name", "Age"},
			wantRows:    mapRows(map[string]string{"Name": "Alice", "Age": "30"}),
		},
		"thead and tbody": {
			input:       "<table><thead><tr><th>A</th></tr></thead><tbody><tr><td>1</td></tr><tr><td>2</td></tr></tbody></table>",
			wantHeaders: []string{"A"},
			wantRows:    mapRows(map[string]string{"A": "1"}, map[string]string{"A": "2"}),
		},
		"no th means no headers": {
			input:    "<table><tr><td>a</td><td>b</td></tr><tr><td>c</td></tr></table>",
			wantRows: sliceRows([]string{"a", "b"}, []string{"c", ""}),
		},
		"forced headers from td": {
			input:       "<table><tr><td>A</td></tr><tr><td>1</td></tr></table>",
			mode:        marktable.HeadersOn,
			wantHeaders: []string{"A"},
			wantRows:    mapRows(map[string]string{"A": "1"}),
		},
		"forced off keeps th row as data": {
			input:    "<table><tr><th>A</th></tr><tr><td>1</td></tr></table>",
			mode:     marktable.HeadersOff,
			wantRows: sliceRows([]string{"A"}, []string{"1"}),
		},
		"nested markup flattened": {
			input:    "<table><tr><td><b>Bold</b> and <a href=\"#\">link</a></td></tr></table>",
			wantRows: sliceRows([]string{"Bold and link"}),
		},
		"whitespace collapsed": {
			input:    "<table><tr><td>\n   multi\n   line\t text  \n</td></tr></table>",
			wantRows: sliceRows([]string{"multi line text"}),
		},
		"non-breaking space": {
			input:    "<table><tr><td>a&nbsp;b</td></tr></table>",
			wantRows: sliceRows([]string{"a b"}),
		},
		"embedded json": {
			input:    "<table><tr><td>{\"a\":\n   1,\n\"b\": 2}</td></tr></table>",
			wantRows: sliceRows([]string{`{ "a": 1, "b": 2 }`}),
		},
		"embedded json spacing": {
			input:    "<table><tr><td>{\"a\": 1}</td></tr></table>",
			wantRows: sliceRows([]string{`{ "a": 1 }`}),
		},
		"entities decoded": {
			input:    "<table><tr><td>&lt;x&gt; &amp; y</td></tr></table>",
			wantRows: sliceRows([]string{"<x> & y"}),
		},
		"first table only": {
			input:    "<table><tr><td>one</td></tr></table><table><tr><td>two</td></tr></table>",
			wantRows: sliceRows([]string{"one"}),
		},
		"surrounding document": {
			input:    "<html><body><p>intro</p><div><table><tr><td>x</td></tr></table></div></body></html>",
			wantRows: sliceRows([]string{"x"}),
		},
		"no table": {
			input:    "<p>nothing here</p>",
			wantRows: sliceRows(),
		},
		"table without rows": {
			input:    "<table></table>",
			wantRows: sliceRows(),
		},
		"empty": {
			input:    "",
			wantRows: sliceRows(),
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tab := mustTable(t, tt.input, marktable.HTML, marktable.WithHeaders(tt.mode))
			assert.Equal(t, tt.wantHeaders, tab.Headers())
			assert.Equal(t, tt.wantRows, tab.ToRows())
		})
	}
}

func TestHTMLParseNode(t *testing.T) {
	t.Parallel()
	doc, err := html.Parse(strings.NewReader("<div><table><tr><th>A</th></tr><tr><td>1</td></tr></table></div>"))
	require.NoError(t, err)

	tab := mustTable(t, doc, marktable.HTML)
	assert.Equal(t, []string{"A"}, tab.Headers())
	assert.Equal(t, mapRows(map[string]string{"A": "1"}), tab.ToRows())
}

func TestHTMLRoundTrip(t *testing.T) {
	t.Parallel()
	src := mustTable(t, people, marktable.Markdown)
	back := mustTable(t, src.ToHTML(), marktable.HTML)
	assert.Equal(t, src.Headers(), back.Headers())
	assert.Equal(t, src.ToRows(), back.ToRows())
	assert.Equal(t, people, back.ToMarkdown())
}

func TestHTMLDuplicateHeaders(t *testing.T) {
	t.Parallel()
	_, err := marktable.New("<table><tr><th>A</th><th>A</th></tr></table>", marktable.HTML)
	require.ErrorIs(t, err, marktable.ErrDuplicateHeaders)
	assert.Contains(t, err.Error(), `"A"`)
}
