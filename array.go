package marktable

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

type arrayParser struct{}

// Parse accepts a slice whose elements are either all named records or all
// value sequences.
//
// Named records are Record, anything implementing Mappable, named *Row
// values, and maps with string keys (visited in sorted key order, since Go
// maps have none). Sequences are []string, other slices or arrays
// (stringified with fmt.Sprint), Rower implementations, and indexed *Row
// values.
func (arrayParser) Parse(src any, mode HeaderMode) (Result, error) {
	items, err := arrayItems(src)
	if err != nil || len(items) == 0 {
		return Result{}, err
	}

	if records, ok := asRecords(items); ok {
		return recordsResult(records), nil
	}

	seqs := make([][]string, len(items))
	for i, item := range items {
		seq, ok := asSequence(item)
		if !ok {
			return Result{}, fmt.Errorf("%w: array element %d: cannot use %T as a row", ErrMalformedSource, i, item)
		}
		seqs[i] = seq
	}

	var res Result
	switch mode {
	case HeadersOn:
		res.Headers = seqs[0]
		seqs = seqs[1:]
	case HeadersAuto:
		if h, ok := items[0].(Headed); ok {
			res.Headers = h.Header()
		}
	}
	res.Rows = make([]*Row, len(seqs))
	for i, seq := range seqs {
		res.Rows[i] = NewRow(seq, res.Headers)
	}
	return res, nil
}

func arrayItems(src any) ([]any, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case [][]string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items, nil
	case []Record:
		items := make([]any, len(v))
		for i, r := range v {
			items[i] = r
		}
		return items, nil
	}
	rv := reflect.ValueOf(src)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: cannot parse %s from %T", ErrMalformedSource, Array, src)
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, nil
}

func asRecords(items []any) ([]Record, bool) {
	records := make([]Record, len(items))
	for i, item := range items {
		rec, ok := asRecord(item)
		if !ok {
			return nil, false
		}
		records[i] = rec
	}
	return records, true
}

func asRecord(item any) (Record, bool) {
	switch v := item.(type) {
	case *Row:
		if v.Kind() != NamedRow {
			return nil, false
		}
		return Record(v.Pairs()), true
	case Record:
		return v, true
	case Mappable:
		return Record(v.Pairs()), true
	case map[string]string:
		rec := make(Record, 0, len(v))
		for _, k := range sortedKeys(v) {
			rec = append(rec, KeyValue{Key: k, Value: v[k]})
		}
		return rec, true
	}
	rv := reflect.ValueOf(item)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	rec := make(Record, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		rec = append(rec, KeyValue{Key: iter.Key().String(), Value: stringify(iter.Value().Interface())})
	}
	slices.SortFunc(rec, func(a, b KeyValue) int { return strings.Compare(a.Key, b.Key) })
	return rec, true
}

func asSequence(item any) ([]string, bool) {
	switch v := item.(type) {
	case []string:
		return v, true
	case *Row:
		return v.Values(), true
	case Record, Mappable:
		return nil, false
	case Rower:
		return v.Row(), true
	}
	rv := reflect.ValueOf(item)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	seq := make([]string, rv.Len())
	for i := range seq {
		seq[i] = stringify(rv.Index(i).Interface())
	}
	return seq, true
}

// recordsResult lays records out against the union of their keys in
// first-seen order. Keys a record lacks in the middle read as "", keys it
// lacks at the end leave the row short so they stay absent from ToMap.
func recordsResult(records []Record) Result {
	var headers []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, kv := range rec {
			if !seen[kv.Key] {
				seen[kv.Key] = true
				headers = append(headers, kv.Key)
			}
		}
	}
	if headers == nil {
		headers = []string{}
	}

	rows := make([]*Row, len(records))
	for i, rec := range records {
		values := make([]string, len(headers))
		last := -1
		for j, h := range headers {
			if v, ok := rec.Get(h); ok {
				values[j] = v
				last = j
			}
		}
		rows[i] = NewRow(values[:last+1], headers)
	}
	return Result{Rows: rows, Headers: headers}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
