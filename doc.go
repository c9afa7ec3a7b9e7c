// Package marktable converts tables between Markdown, CSV, HTML and
// in-memory rows.
//
// A [Table] is built from a source and a [Format]; the matching [Parser]
// turns the source into rows and an optional header sequence, and any
// [Formatter] renders them back:
//
//	t, err := marktable.New("| Name | Age |\n| --- | --- |\n| Alice | 30 |", marktable.Markdown)
//	if err != nil { ... }
//	fmt.Print(t.ToHTML())
//
// # Formats
//
// Markdown, CSV, TSV, HTML, JSON, JSONL and YAML parse and render. Array
// parses in-memory values only; Text (a boxed terminal table) and
// [GoTemplate] render only. Use [ParseFormat] to turn a flag value into a
// [Format].
//
// # Headers
//
// [WithHeaders] tells the parser whether the source has a header row.
// [HeadersAuto], the default, lets Markdown infer headers from the
// separator line and HTML from th cells; every other format reads the
// source as headerless. Header names must be unique: [New] fails with
// [ErrDuplicateHeaders] naming each repeated header.
//
// # Rows
//
// A [Row] is either an [IndexedRow] or a [NamedRow] bound to its table's
// headers. Named rows may be shorter or longer than the header sequence;
// missing values read as absent through [Row.Get] and as "" through
// [Row.Value], and extra values are only reachable by index.
//
// # Arrays
//
// The Array parser accepts a slice of records ([Record], [Mappable],
// string-keyed maps, named rows) or a slice of sequences ([]string, other
// slices, [Rower]). Records share the union of their keys as headers, in
// first-seen order.
//
// # Registries
//
// Formats resolve through a [Registry]. [NewRegistry] holds every built-in
// format; [Registry.Register] adds or replaces one. Pass a registry with
// [WithRegistry].
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrUnsupportedFormat] when a format is unknown or has no parser
//   - [ErrMalformedSource] when the source cannot be read as the format
//   - [ErrDuplicateHeaders] for repeated header names
//   - [ErrInvalidTemplate] when a go-template fails to parse or execute
//   - [ErrNoFormatter] when the format only parses
package marktable
