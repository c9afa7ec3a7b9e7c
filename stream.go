package marktable

import (
	"io"
	"iter"
)

// Foreach parses src as format f and returns its rows in storage order.
func Foreach(src any, f Format, opts ...Option) (iter.Seq[*Row], error) {
	t, err := New(src, f, opts...)
	if err != nil {
		return nil, err
	}
	return t.Rows(), nil
}

// WriteIter renders rows from seq as f and writes them to w as they arrive.
// A nil headers slice renders the rows headerless.
//
// CSV, TSV, JSONL and go-template rows are independent, so each row is
// written immediately. The other formats need every row for layout and are
// collected first.
func WriteIter(w io.Writer, f Format, headers []string, seq iter.Seq[*Row], opts ...Option) error {
	o := newOptions(opts)
	fm, err := o.registry.Formatter(f)
	if err != nil {
		return err
	}
	switch v := fm.(type) {
	case csvFormatter:
		return streamCSV(w, v.comma, headers, seq)
	case jsonlFormatter, templateFormatter:
		return streamEach(w, fm, headers, seq)
	default:
		var rows []*Row
		for row := range seq {
			rows = append(rows, row)
		}
		return fm.Format(w, rows, headers, o.aligns)
	}
}

// WriteChan renders rows received from ch. It is a thin wrapper around
// [WriteIter].
func WriteChan(w io.Writer, f Format, headers []string, ch <-chan *Row, opts ...Option) error {
	return WriteIter(w, f, headers, chanToIter(ch), opts...)
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}

func streamCSV(w io.Writer, comma rune, headers []string, seq iter.Seq[*Row]) error {
	if headers != nil {
		if err := writeCSVRow(w, comma, headers); err != nil {
			return err
		}
	}
	for row := range seq {
		cells := row.values
		if headers != nil {
			cells = row.cells(len(headers))
		}
		if err := writeCSVRow(w, comma, cells); err != nil {
			return err
		}
	}
	return nil
}

func streamEach(w io.Writer, fm Formatter, headers []string, seq iter.Seq[*Row]) error {
	for row := range seq {
		if err := fm.Format(w, []*Row{NewRow(row.values, headers)}, headers, nil); err != nil {
			return err
		}
	}
	return nil
}
