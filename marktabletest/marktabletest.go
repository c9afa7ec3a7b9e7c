// Package marktabletest compares tables in tests. Either side may be
// Markdown text, in-memory rows, HTML, CSV or a built [marktable.Table];
// both are parsed and compared through [marktable.Table.ToRows].
package marktabletest

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/bjaus/marktable"
)

type config struct {
	format   marktable.Format
	mode     marktable.HeaderMode
	registry *marktable.Registry
}

// Option configures a comparison.
type Option func(*config)

// WithFormat parses the actual side as f instead of inferring its format.
func WithFormat(f marktable.Format) Option {
	return func(c *config) { c.format = f }
}

// IgnoreHeaders reads both sides as headerless, so header rows compare as
// ordinary data.
func IgnoreHeaders() Option {
	return func(c *config) { c.mode = marktable.HeadersOff }
}

// WithRegistry parses both sides through r.
func WithRegistry(r *marktable.Registry) Option {
	return func(c *config) { c.registry = r }
}

// Comparison holds both parsed sides of a table comparison.
type Comparison struct {
	Expected *marktable.Table
	Actual   *marktable.Table
	Equal    bool
}

// Compare parses expected and actual and compares their rows. A side's
// format is inferred from its type: slices are arrays, *html.Node is HTML,
// *csv.Reader is CSV, and text is Markdown. [WithFormat] overrides the
// inference for the actual side.
func Compare(expected, actual any, opts ...Option) (Comparison, error) {
	c := config{registry: marktable.NewRegistry()}
	for _, opt := range opts {
		opt(&c)
	}

	exp, err := c.table(expected, inferFormat(expected))
	if err != nil {
		return Comparison{}, fmt.Errorf("expected table: %w", err)
	}
	f := c.format
	if f == "" {
		f = inferFormat(actual)
	}
	act, err := c.table(actual, f)
	if err != nil {
		return Comparison{}, fmt.Errorf("actual table: %w", err)
	}
	return Comparison{
		Expected: exp,
		Actual:   act,
		Equal:    exp.ToRows().Equal(act.ToRows()),
	}, nil
}

func (c config) table(src any, f marktable.Format) (*marktable.Table, error) {
	if t, ok := src.(*marktable.Table); ok {
		return t, nil
	}
	return marktable.New(src, f, marktable.WithHeaders(c.mode), marktable.WithRegistry(c.registry))
}

func inferFormat(src any) marktable.Format {
	switch src.(type) {
	case *html.Node:
		return marktable.HTML
	case *csv.Reader:
		return marktable.CSV
	case string, []byte, io.Reader, fmt.Stringer:
		return marktable.Markdown
	}
	if src == nil {
		return marktable.Markdown
	}
	switch reflect.TypeOf(src).Kind() {
	case reflect.Slice, reflect.Array:
		return marktable.Array
	}
	return marktable.Markdown
}

// FailureMessage describes a failed match with both sides rendered as
// Markdown followed by their parsed rows.
func (c Comparison) FailureMessage() string {
	return fmt.Sprintf("Expected markdown table to match:\n\n"+
		"Expected:\n%s\n\n"+
		"Actual:\n%s\n\n"+
		"Parsed expected data: %s\n"+
		"Parsed actual data: %s",
		c.Expected.ToMarkdown(), c.Actual.ToMarkdown(),
		c.Expected.ToRows(), c.Actual.ToRows())
}

// NegatedFailureMessage describes tables that match when they should not.
func (c Comparison) NegatedFailureMessage() string {
	return "Expected markdown tables to differ, but they match:\n\n" + c.Actual.ToMarkdown()
}

// Match reports whether the tables hold the same rows. When they do not,
// the message explains why.
func Match(expected, actual any, opts ...Option) (bool, string) {
	c, err := Compare(expected, actual, opts...)
	if err != nil {
		return false, err.Error()
	}
	if !c.Equal {
		return false, c.FailureMessage()
	}
	return true, ""
}

type tHelper interface {
	Helper()
}

// AssertMatch asserts that the tables hold the same rows.
func AssertMatch(t assert.TestingT, expected, actual any, opts ...Option) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	c, err := Compare(expected, actual, opts...)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	if !c.Equal {
		return assert.Fail(t, c.FailureMessage())
	}
	return true
}

// AssertNotMatch asserts that the tables differ.
func AssertNotMatch(t assert.TestingT, expected, actual any, opts ...Option) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	c, err := Compare(expected, actual, opts...)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	if c.Equal {
		return assert.Fail(t, c.NegatedFailureMessage())
	}
	return true
}

// RequireMatch is AssertMatch that stops the test on failure.
func RequireMatch(t require.TestingT, expected, actual any, opts ...Option) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !AssertMatch(t, expected, actual, opts...) {
		t.FailNow()
	}
}
