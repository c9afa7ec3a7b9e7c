package marktable

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

type csvParser struct {
	comma rune
}

func (p csvParser) format() Format {
	if p.comma == '\t' {
		return TSV
	}
	return CSV
}

// Parse accepts delimited text or records that were already split:
// [][]string, or a *csv.Reader configured by the caller.
func (p csvParser) Parse(src any, mode HeaderMode) (Result, error) {
	records, err := p.records(src)
	if err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		return Result{}, nil
	}

	var res Result
	if mode == HeadersOn {
		res.Headers = records[0]
		records = records[1:]
	}
	res.Rows = make([]*Row, len(records))
	for i, rec := range records {
		res.Rows[i] = NewRow(rec, res.Headers)
	}
	return res, nil
}

func (p csvParser) records(src any) ([][]string, error) {
	var cr *csv.Reader
	switch v := src.(type) {
	case [][]string:
		return v, nil
	case *csv.Reader:
		cr = v
	default:
		text, err := readText(src, p.format())
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}
		cr = csv.NewReader(strings.NewReader(text))
		cr.Comma = p.comma
		cr.FieldsPerRecord = -1
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedSource, p.format(), err)
	}
	return records, nil
}

type csvFormatter struct {
	comma rune
}

func (f csvFormatter) Format(w io.Writer, rows []*Row, headers []string, _ []Alignment) error {
	if len(rows) == 0 && headers == nil {
		return nil
	}
	cw := csv.NewWriter(w)
	cw.Comma = f.comma
	if headers != nil {
		if err := cw.Write(headers); err != nil {
			return err
		}
	}
	for _, row := range rows {
		cells := row.values
		if headers != nil {
			cells = row.cells(len(headers))
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeCSVRow writes a single record, used when streaming rows one at a time.
func writeCSVRow(w io.Writer, comma rune, record []string) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(record); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
