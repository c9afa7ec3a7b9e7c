package marktable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type jsonParser struct{}

// Parse reads a JSON array of objects or arrays and hands it to the array
// parser. Object key order is kept.
func (jsonParser) Parse(src any, mode HeaderMode) (Result, error) {
	text, err := readText(src, JSON)
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, nil
	}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	if err := expectDelim(dec, '['); err != nil {
		return Result{}, err
	}
	var items []any
	for dec.More() {
		item, err := decodeElement(dec)
		if err != nil {
			return Result{}, err
		}
		items = append(items, item)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return Result{}, err
	}
	return arrayParser{}.Parse(items, mode)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: json: %w", ErrMalformedSource, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: json: expected %q, got %v", ErrMalformedSource, want, tok)
	}
	return nil
}

// decodeElement reads one object (as a Record) or array (as []string).
func decodeElement(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: json: %w", ErrMalformedSource, err)
	}
	switch tok {
	case json.Delim('{'):
		var rec Record
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("%w: json: %w", ErrMalformedSource, err)
			}
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("%w: json: %w", ErrMalformedSource, err)
			}
			rec = append(rec, KeyValue{Key: keyTok.(string), Value: jsonScalar(raw)})
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("%w: json: %w", ErrMalformedSource, err)
		}
		if rec == nil {
			rec = Record{}
		}
		return rec, nil
	case json.Delim('['):
		seq := []string{}
		for dec.More() {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("%w: json: %w", ErrMalformedSource, err)
			}
			seq = append(seq, jsonScalar(raw))
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("%w: json: %w", ErrMalformedSource, err)
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("%w: json: row must be an object or array, got %v", ErrMalformedSource, tok)
	}
}

// jsonScalar renders a JSON value as cell text: strings unquoted, null as
// "", nested values as compact JSON.
func jsonScalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0, string(raw) == "null":
		return ""
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case raw[0] == '{' || raw[0] == '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err == nil {
			return buf.String()
		}
	}
	return string(raw)
}

// orderedObject marshals pairs as a JSON object without reordering keys.
type orderedObject []KeyValue

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeString(&buf, kv.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeString(&buf, kv.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

// jsonValues returns one JSON-encodable value per row: an ordered object for
// tables with headers, a padded array otherwise.
func jsonValues(rows []*Row, headers []string) []any {
	named, plain := rowData(rows, headers)
	out := make([]any, len(rows))
	for i := range rows {
		if named != nil {
			out[i] = orderedObject(named[i])
		} else {
			out[i] = plain[i]
		}
	}
	return out
}

type jsonFormatter struct{}

func (jsonFormatter) Format(w io.Writer, rows []*Row, headers []string, _ []Alignment) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(jsonValues(rows, headers))
}
