package marktable

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type jsonlParser struct{}

// Parse reads one JSON object or array per non-blank line.
func (jsonlParser) Parse(src any, mode HeaderMode) (Result, error) {
	text, err := readText(src, JSONL)
	if err != nil {
		return Result{}, err
	}
	var items []any
	n := 0
	for line := range strings.Lines(text) {
		n++
		if strings.TrimSpace(line) == "" {
			continue
		}
		dec := json.NewDecoder(strings.NewReader(line))
		dec.UseNumber()
		item, err := decodeElement(dec)
		if err != nil {
			return Result{}, fmt.Errorf("line %d: %w", n, err)
		}
		if dec.More() {
			return Result{}, fmt.Errorf("%w: jsonl: line %d holds more than one value", ErrMalformedSource, n)
		}
		items = append(items, item)
	}
	return arrayParser{}.Parse(items, mode)
}

type jsonlFormatter struct{}

func (jsonlFormatter) Format(w io.Writer, rows []*Row, headers []string, _ []Alignment) error {
	for _, v := range jsonValues(rows, headers) {
		if err := writeJSONLine(w, v); err != nil {
			return err
		}
	}
	return nil
}

func writeJSONLine(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
