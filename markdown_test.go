package marktable_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/marktable"
)

type stringSource string

func (s stringSource) String() string { return string(s) }

// --- Parsing ---

func TestMarkdownParse(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input       string
		mode        marktable.HeaderMode
		wantHeaders []string
		wantMode    marktable.HeaderMode
		wantRows    marktable.Rows
	}{
		"headers inferred from separator": {
			input:       people,
			wantHeaders: []string{"Name", "Age", "City"},
			wantMode:    marktable.HeadersOn,
			wantRows: mapRows(
				map[string]string{"Name": "Alice", "Age": "30", "City": "New York"},
				map[string]string{"Name": "Bob", "Age": "25", "City": "London"},
				map[string]string{"Name": "Carol", "Age": "35", "City": "Tokyo"},
			),
		},
		"no separator means no headers": {
			input:    "| a | b |\n| c | d |",
			wantMode: marktable.HeadersOff,
			wantRows: sliceRows([]string{"a", "b"}, []string{"c", "d"}),
		},
		"forced headers without separator": {
			input:       "| a | b |\n| c | d |",
			mode:        marktable.HeadersOn,
			wantHeaders: []string{"a", "b"},
			wantMode:    marktable.HeadersOn,
			wantRows:    mapRows(map[string]string{"a": "c", "b": "d"}),
		},
		"forced off keeps header line as data": {
			input:    "| A | B |\n| --- | --- |\n| 1 | 2 |",
			mode:     marktable.HeadersOff,
			wantMode: marktable.HeadersOff,
			wantRows: sliceRows([]string{"A", "B"}, []string{"1", "2"}),
		},
		"header only": {
			input:       "| A | B |\n| --- | --- |",
			wantHeaders: []string{"A", "B"},
			wantMode:    marktable.HeadersOn,
			wantRows:    mapRows(),
		},
		"blank lines ignored": {
			input:       "\n\n| A |\n\n| --- |\n\n| 1 |\n\n",
			wantHeaders: []string{"A"},
			wantMode:    marktable.HeadersOn,
			wantRows:    mapRows(map[string]string{"A": "1"}),
		},
		"later separators skipped": {
			input:       "| A |\n|---|\n| b |\n|---|\n| c |",
			wantHeaders: []string{"A"},
			wantMode:    marktable.HeadersOn,
			wantRows:    mapRows(map[string]string{"A": "b"}, map[string]string{"A": "c"}),
		},
		"ragged rows padded without headers": {
			input:    "| a |\n| b | c |",
			wantMode: marktable.HeadersOff,
			wantRows: sliceRows([]string{"a", ""}, []string{"b", "c"}),
		},
		"short row omits missing keys": {
			input:       "| A | B |\n| --- | --- |\n| 1 |",
			wantHeaders: []string{"A", "B"},
			wantMode:    marktable.HeadersOn,
			wantRows:    mapRows(map[string]string{"A": "1"}),
		},
		"empty input": {
			input:    "",
			wantMode: marktable.HeadersAuto,
			wantRows: sliceRows(),
		},
		"whitespace only": {
			input:    "  \n\t\n",
			wantMode: marktable.HeadersAuto,
			wantRows: sliceRows(),
		},
		"empty input forced off": {
			input:    "",
			mode:     marktable.HeadersOff,
			wantMode: marktable.HeadersOff,
			wantRows: sliceRows(),
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tab := mustTable(t, tt.input, marktable.Markdown, marktable.WithHeaders(tt.mode))
			assert.Equal(t, tt.wantHeaders, tab.Headers())
			assert.Equal(t, tt.wantMode, tab.HeaderMode())
			assert.Equal(t, tt.wantRows, tab.ToRows())
		})
	}
}

func TestMarkdownParseSources(t *testing.T) {
	t.Parallel()
	want := mapRows(map[string]string{"A": "1"})
	src := "| A |\n| --- |\n| 1 |"
	tests := map[string]any{
		"string":   src,
		"bytes":    []byte(src),
		"reader":   strings.NewReader(src),
		"buffer":   bytes.NewBufferString(src),
		"stringer": stringSource(src),
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, mustTable(t, input, marktable.Markdown).ToRows())
		})
	}
}

func TestMarkdownParseUnsupportedSource(t *testing.T) {
	t.Parallel()
	_, err := marktable.New(42, marktable.Markdown)
	require.ErrorIs(t, err, marktable.ErrMalformedSource)
	assert.Contains(t, err.Error(), "int")
}

func TestMarkdownParseAlignments(t *testing.T) {
	t.Parallel()
	tab := mustTable(t, "| A | B | C |\n| :-- | :-: | --: |\n| 1 | 2 | 3 |", marktable.Markdown)
	assert.Equal(t, []marktable.Alignment{marktable.AlignLeft, marktable.AlignCenter, marktable.AlignRight}, tab.Alignments())
	assert.Equal(t, "| A | B | C |\n| --- | :-: | --: |\n| 1 | 2 | 3 |", tab.ToMarkdown())

	plain := mustTable(t, people, marktable.Markdown)
	assert.Nil(t, plain.Alignments())
}

func TestParse(t *testing.T) {
	t.Parallel()
	rows, err := marktable.Parse(people)
	require.NoError(t, err)
	assert.Equal(t, 3, rows.Len())
	assert.Equal(t, "Carol", rows.Maps[2]["Name"])

	rows, err = marktable.Parse("| x | y |", marktable.WithHeaders(marktable.HeadersOff))
	require.NoError(t, err)
	assert.Equal(t, sliceRows([]string{"x", "y"}), rows)
}

// --- Formatting ---

func TestMarkdownFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		rows    [][]string
		headers []string
		aligns  []marktable.Alignment
		want    string
	}{
		"columns sized to widest cell": {
			headers: []string{"Name", "City"},
			rows:    [][]string{{"Al", "New York"}},
			want:    "| Name | City     |\n| ---- | -------- |\n| Al   | New York |",
		},
		"extra values dropped": {
			headers: []string{"Name", "Age"},
			rows:    [][]string{{"Alice", "30", "Extra"}, {"Bob", "25"}},
			want:    "| Name  | Age |\n| ----- | --- |\n| Alice | 30  |\n| Bob   | 25  |",
		},
		"short rows padded": {
			headers: []string{"Name", "Age"},
			rows:    [][]string{{"Alice"}},
			want:    "| Name  | Age |\n| ----- | --- |\n| Alice |     |",
		},
		"headerless ragged rows": {
			rows: [][]string{{"a"}, {"b", "c"}},
			want: "| a |   |\n| b | c |",
		},
		"separator at least three wide": {
			headers: []string{"A"},
			rows:    [][]string{{"1"}},
			want:    "| A |\n| --- |\n| 1 |",
		},
		"alignment": {
			headers: []string{"Name", "Qty"},
			rows:    [][]string{{"a", "7"}},
			aligns:  []marktable.Alignment{marktable.AlignCenter, marktable.AlignRight},
			want:    "| Name | Qty |\n| :--: | --: |\n|  a   |   7 |",
		},
		"wide characters": {
			headers: []string{"名前"},
			rows:    [][]string{{"a"}},
			want:    "| 名前 |\n| ---- |\n| a    |",
		},
		"headers only": {
			headers: []string{"A", "B"},
			want:    "| A | B |\n| --- | --- |",
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
			assert.Equal(t, tt.want, tab.ToMarkdown())
			assert.Equal(t, tt.want, tab.String())
		})
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	t.Parallel()
	tab := mustTable(t, people, marktable.Markdown)
	assert.Equal(t, people, tab.ToMarkdown())

	again := mustTable(t, tab.ToMarkdown(), marktable.Markdown)
	assert.Equal(t, tab.ToRows(), again.ToRows())
	assert.Equal(t, tab.ToMarkdown(), again.ToMarkdown())
}

func TestMarkdownNormalizesSpacing(t *testing.T) {
	t.Parallel()
	messy := "|Name|Age|\n|-|-|\n|Alice|30|\n|Bob|25|"
	tab := mustTable(t, messy, marktable.Markdown)
	assert.Equal(t, "| Name  | Age |\n| ----- | --- |\n| Alice | 30  |\n| Bob   | 25  |", tab.ToMarkdown())
}
