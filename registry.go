package marktable

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Parser turns a source value into a Result.
type Parser interface {
	Parse(src any, mode HeaderMode) (Result, error)
}

// Formatter renders rows and headers. A nil headers slice means the table
// has no header row. aligns may be shorter than the column count.
type Formatter interface {
	Format(w io.Writer, rows []*Row, headers []string, aligns []Alignment) error
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(src any, mode HeaderMode) (Result, error)

// Parse implements Parser.
func (fn ParserFunc) Parse(src any, mode HeaderMode) (Result, error) { return fn(src, mode) }

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(w io.Writer, rows []*Row, headers []string, aligns []Alignment) error

// Format implements Formatter.
func (fn FormatterFunc) Format(w io.Writer, rows []*Row, headers []string, aligns []Alignment) error {
	return fn(w, rows, headers, aligns)
}

// Registry maps formats to their parser and formatter. Tables look formats
// up in the registry they were built with, so callers can add formats or
// replace built-ins without touching package state.
type Registry struct {
	parsers    map[Format]Parser
	formatters map[Format]Formatter
}

// EmptyRegistry returns a registry with no formats.
func EmptyRegistry() *Registry {
	return &Registry{
		parsers:    make(map[Format]Parser),
		formatters: make(map[Format]Formatter),
	}
}

// NewRegistry returns a registry holding every built-in format.
func NewRegistry() *Registry {
	r := EmptyRegistry()
	r.Register(Markdown, markdownParser{}, markdownFormatter{})
	r.Register(CSV, csvParser{comma: ','}, csvFormatter{comma: ','})
	r.Register(TSV, tsvParser(), tsvFormatter())
	r.Register(HTML, htmlParser{}, htmlFormatter{})
	r.Register(Array, arrayParser{}, nil)
	r.Register(JSON, jsonParser{}, jsonFormatter{})
	r.Register(JSONL, jsonlParser{}, jsonlFormatter{})
	r.Register(YAML, yamlParser{}, yamlFormatter{})
	r.Register(Text, nil, textFormatter{})
	return r
}

// Register binds a parser and formatter to f. Either may be nil for formats
// that only go one way; a nil value removes an earlier binding.
func (r *Registry) Register(f Format, p Parser, fm Formatter) {
	if p == nil {
		delete(r.parsers, f)
	} else {
		r.parsers[f] = p
	}
	if fm == nil {
		delete(r.formatters, f)
	} else {
		r.formatters[f] = fm
	}
}

// Parser returns the parser for f.
func (r *Registry) Parser(f Format) (Parser, error) {
	if p, ok := r.parsers[f]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: no parser for %q", ErrUnsupportedFormat, f)
}

// Formatter returns the formatter for f. go-template formats resolve
// without registration.
func (r *Registry) Formatter(f Format) (Formatter, error) {
	if fm, ok := r.formatters[f]; ok {
		return fm, nil
	}
	if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
		return newTemplateFormatter(tmpl)
	}
	if _, ok := r.parsers[f]; ok {
		return nil, fmt.Errorf("%w: %q", ErrNoFormatter, f)
	}
	return nil, fmt.Errorf("%w: no formatter for %q", ErrUnsupportedFormat, f)
}

// Formats returns every format with a parser or formatter, sorted by name.
func (r *Registry) Formats() []Format {
	seen := make(map[Format]bool)
	var out []Format
	for f := range r.parsers {
		seen[f] = true
		out = append(out, f)
	}
	for f := range r.formatters {
		if !seen[f] {
			out = append(out, f)
		}
	}
	slices.Sort(out)
	return out
}
