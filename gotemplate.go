package marktable

import (
	"fmt"
	"io"
	"text/template"
)

type templateFormatter struct {
	tmpl *template.Template
}

func newTemplateFormatter(text string) (Formatter, error) {
	tmpl, err := template.New("row").Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
	}
	return templateFormatter{tmpl: tmpl}, nil
}

// Format executes the template once per row. The data is the row's mapping
// when there are headers and its value slice otherwise.
func (f templateFormatter) Format(w io.Writer, rows []*Row, headers []string, _ []Alignment) error {
	for _, row := range rows {
		var data any = row.Values()
		if headers != nil {
			data = row.ToMap()
		}
		if err := f.tmpl.Execute(w, data); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTemplate, err)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
