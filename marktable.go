package marktable

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMalformedSource   = errors.New("malformed source")
	ErrDuplicateHeaders  = errors.New("duplicate headers are not allowed")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrNoFormatter       = errors.New("format has no formatter")
)

// Format names a table serialization.
type Format string

const (
	Markdown Format = "markdown"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	HTML     Format = "html"
	Array    Format = "array"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
	YAML     Format = "yaml"
	Text     Format = "text"
)

const goTemplatePrefix = "go-template="

var formats = []Format{Markdown, CSV, TSV, HTML, Array, JSON, JSONL, YAML, Text}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all static format names.
// GoTemplate is not included because it is parameterized.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// GoTemplate returns an output-only Format that renders each row using a Go
// text/template. The row's mapping is the template data when the table has
// headers, its value slice otherwise.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// ParseFormat parses a format string. Recognizes all static formats,
// "md" as an alias for markdown, and go-template=<tmpl> strings.
func ParseFormat(s string) (Format, error) {
	if strings.HasPrefix(s, goTemplatePrefix) {
		return Format(s), nil
	}
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "md" {
		return Markdown, nil
	}
	for _, f := range formats {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// HeaderMode tells a parser whether the source carries a header row.
type HeaderMode int

const (
	// HeadersAuto lets the parser decide. Markdown infers from the separator
	// line, HTML from th cells; the other formats treat it as HeadersOff.
	HeadersAuto HeaderMode = iota
	HeadersOn
	HeadersOff
)

// ParseHeaderMode converts a flag value into a HeaderMode. Accepts "auto",
// "on"/"true"/"yes", "off"/"false"/"no", and the empty string (auto).
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return HeadersAuto, nil
	case "on", "true", "yes":
		return HeadersOn, nil
	case "off", "false", "no":
		return HeadersOff, nil
	default:
		return HeadersAuto, fmt.Errorf("invalid header mode %q", s)
	}
}

func (m HeaderMode) String() string {
	switch m {
	case HeadersOn:
		return "on"
	case HeadersOff:
		return "off"
	default:
		return "auto"
	}
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// KeyValue is a single key-value pair.
type KeyValue struct {
	Key   string
	Value string
}

// Record is a named row whose keys keep their insertion order.
type Record []KeyValue

// Get returns the value of the first pair with the given key.
func (r Record) Get(key string) (string, bool) {
	for _, kv := range r {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Keys returns the record's keys in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, kv := range r {
		keys[i] = kv.Key
	}
	return keys
}

// Pairs implements Mappable.
func (r Record) Pairs() []KeyValue { return r }

// Rower provides row data. Array sources accept items implementing it.
type Rower interface {
	Row() []string
}

// Headed provides column headers alongside Rower.
type Headed interface {
	Header() []string
}

// Mappable provides ordered key-value pairs. Array sources treat items
// implementing it as named records.
type Mappable interface {
	Pairs() []KeyValue
}
