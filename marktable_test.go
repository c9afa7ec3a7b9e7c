package marktable_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/marktable"
)

// --- Test types ---

type person struct {
	Name string
	Age  string
}

func (p person) Row() []string    { return []string{p.Name, p.Age} }
func (p person) Header() []string { return []string{"Name", "Age"} }

type setting struct {
	key, value string
}

func (s setting) Pairs() []marktable.KeyValue {
	return []marktable.KeyValue{{Key: "Key", Value: s.key}, {Key: "Value", Value: s.value}}
}

// --- Helpers ---

var errWriteFailed = errors.New("write failed")

type errWriter struct{}

func (e *errWriter) Write([]byte) (int, error) {
	return 0, errWriteFailed
}

func mustTable(t *testing.T, src any, f marktable.Format, opts ...marktable.Option) *marktable.Table {
	t.Helper()
	tab, err := marktable.New(src, f, opts...)
	require.NoError(t, err)
	return tab
}

func mapRows(ms ...map[string]string) marktable.Rows {
	if ms == nil {
		ms = []map[string]string{}
	}
	return marktable.Rows{Maps: ms}
}

func sliceRows(ss ...[]string) marktable.Rows {
	if ss == nil {
		ss = [][]string{}
	}
	return marktable.Rows{Slices: ss}
}

const people = `| Name  | Age | City     |
| ----- | --- | -------- |
| Alice | 30  | New York |
| Bob   | 25  | London   |
| Carol | 35  | Tokyo    |`

// ============================================================
// Tests
// ============================================================

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    marktable.Format
		wantErr require.ErrorAssertionFunc
	}{
		"markdown":    {input: "markdown", want: marktable.Markdown, wantErr: require.NoError},
		"md alias":    {input: "md", want: marktable.Markdown, wantErr: require.NoError},
		"upper case":  {input: "CSV", want: marktable.CSV, wantErr: require.NoError},
		"padded":      {input: " html ", want: marktable.HTML, wantErr: require.NoError},
		"tsv":         {input: "tsv", want: marktable.TSV, wantErr: require.NoError},
		"array":       {input: "array", want: marktable.Array, wantErr: require.NoError},
		"json":        {input: "json", want: marktable.JSON, wantErr: require.NoError},
		"jsonl":       {input: "jsonl", want: marktable.JSONL, wantErr: require.NoError},
		"yaml":        {input: "yaml", want: marktable.YAML, wantErr: require.NoError},
		"text":        {input: "text", want: marktable.Text, wantErr: require.NoError},
		"go-template": {input: "go-template={{.A}}", want: marktable.GoTemplate("{{.A}}"), wantErr: require.NoError},
		"unknown":     {input: "xml", want: "", wantErr: require.Error},
		"empty":       {input: "", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := marktable.ParseFormat(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormatSentinel(t *testing.T) {
	t.Parallel()
	_, err := marktable.ParseFormat("xml")
	assert.ErrorIs(t, err, marktable.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), `"xml"`)
}

func TestFormats(t *testing.T) {
	t.Parallel()
	got := marktable.Formats()
	assert.Equal(t, []marktable.Format{
		marktable.Markdown, marktable.CSV, marktable.TSV, marktable.HTML, marktable.Array,
		marktable.JSON, marktable.JSONL, marktable.YAML, marktable.Text,
	}, got)
	// Returned slice must be a copy.
	got[0] = "modified"
	assert.Equal(t, marktable.Markdown, marktable.Formats()[0])
}

func TestFormatString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "markdown", marktable.Markdown.String())
	assert.Equal(t, "go-template={{.Name}}", marktable.GoTemplate("{{.Name}}").String())
}

func TestParseHeaderMode(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    marktable.HeaderMode
		wantErr require.ErrorAssertionFunc
	}{
		"empty": {input: "", want: marktable.HeadersAuto, wantErr: require.NoError},
		"auto":  {input: "auto", want: marktable.HeadersAuto, wantErr: require.NoError},
		"on":    {input: "on", want: marktable.HeadersOn, wantErr: require.NoError},
		"true":  {input: "TRUE", want: marktable.HeadersOn, wantErr: require.NoError},
		"yes":   {input: "yes", want: marktable.HeadersOn, wantErr: require.NoError},
		"off":   {input: "off", want: marktable.HeadersOff, wantErr: require.NoError},
		"false": {input: "false", want: marktable.HeadersOff, wantErr: require.NoError},
		"no":    {input: " no ", want: marktable.HeadersOff, wantErr: require.NoError},
		"bad":   {input: "maybe", want: marktable.HeadersAuto, wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := marktable.ParseHeaderMode(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHeaderModeString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "auto", marktable.HeadersAuto.String())
	assert.Equal(t, "on", marktable.HeadersOn.String())
	assert.Equal(t, "off", marktable.HeadersOff.String())
}

func TestRecord(t *testing.T) {
	t.Parallel()
	rec := marktable.Record{{Key: "b", Value: "1"}, {Key: "a", Value: "2"}, {Key: "b", Value: "3"}}

	v, ok := rec.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = rec.Get("z")
	assert.False(t, ok)

	assert.Equal(t, []string{"b", "a", "b"}, rec.Keys())
	assert.Len(t, rec.Pairs(), 3)
}

func TestRowsEqual(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		a, b marktable.Rows
		want bool
	}{
		"same maps":          {a: mapRows(map[string]string{"A": "1"}), b: mapRows(map[string]string{"A": "1"}), want: true},
		"different maps":     {a: mapRows(map[string]string{"A": "1"}), b: mapRows(map[string]string{"A": "2"}), want: false},
		"extra key":          {a: mapRows(map[string]string{"A": "1"}), b: mapRows(map[string]string{"A": "1", "B": ""}), want: false},
		"same slices":        {a: sliceRows([]string{"a", "b"}), b: sliceRows([]string{"a", "b"}), want: true},
		"different lengths":  {a: sliceRows([]string{"a"}), b: sliceRows([]string{"a"}, []string{"b"}), want: false},
		"maps vs slices":     {a: mapRows(map[string]string{"A": "1"}), b: sliceRows([]string{"1"}), want: false},
		"empty across modes": {a: mapRows(), b: sliceRows(), want: true},
		"zero value":         {a: marktable.Rows{}, b: sliceRows(), want: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestRowsString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `[map["A":"1"]]`, mapRows(map[string]string{"A": "1"}).String())
	assert.Equal(t, `[["a" ""]]`, sliceRows([]string{"a", ""}).String())
	assert.Equal(t, "[]", marktable.Rows{}.String())
	assert.Equal(t, 2, sliceRows([]string{"a"}, []string{"b"}).Len())
}
