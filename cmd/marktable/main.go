// Command marktable converts and compares tables on the command line and
// serves conversions over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/bjaus/marktable"
	"github.com/bjaus/marktable/internal/config"
	"github.com/bjaus/marktable/internal/logging"
	"github.com/bjaus/marktable/internal/server"
	"github.com/bjaus/marktable/marktabletest"
)

// errTablesDiffer makes compare exit non-zero without an extra message.
var errTablesDiffer = errors.New("tables differ")

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "marktable: load .env: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errTablesDiffer):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "marktable: %v\n", err)
		os.Exit(1)
	}
}

type convertCmd struct {
	from    string
	to      string
	headers string
	border  string
	output  string
	input   string
}

type compareCmd struct {
	expected      string
	actual        string
	format        string
	ignoreHeaders bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := kingpin.New("marktable", "Convert tables between Markdown, CSV, HTML and more.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	var cfg config.Config
	cfg.Logging.Register(app)

	var conv convertCmd
	convert := app.Command("convert", "Convert a table from one format to another.").Default()
	convert.Flag("from", "Input format.").Short('f').Default("markdown").StringVar(&conv.from)
	convert.Flag("to", "Output format, or go-template=<tmpl>.").Short('t').Default("markdown").StringVar(&conv.to)
	convert.Flag("headers", "Whether the input has a header row (auto, on, off).").
		Default("auto").EnumVar(&conv.headers, "auto", "on", "off")
	convert.Flag("border", "Border style of the text format (rounded, ascii, heavy, double).").
		Default("rounded").EnumVar(&conv.border, "rounded", "ascii", "heavy", "double")
	convert.Flag("output", "Write to this file instead of stdout.").Short('o').StringVar(&conv.output)
	convert.Arg("input", "Input file; stdin when omitted.").StringVar(&conv.input)

	formats := app.Command("formats", "List supported formats.")

	var cmp compareCmd
	compare := app.Command("compare", "Compare a Markdown table with another table. Exits 1 when they differ.")
	compare.Arg("expected", "Markdown file holding the expected table.").Required().ExistingFileVar(&cmp.expected)
	compare.Arg("actual", "File holding the actual table.").Required().ExistingFileVar(&cmp.actual)
	compare.Flag("format", "Format of the actual table.").Default("markdown").StringVar(&cmp.format)
	compare.Flag("ignore-headers", "Compare header rows as data.").BoolVar(&cmp.ignoreHeaders)

	serve := app.Command("serve", "Serve conversions over HTTP.")
	cfg.Server.Register(serve)

	cmd, err := app.Parse(args)
	if err != nil {
		return err
	}
	logging.Setup(stderr, cfg.Logging.Level, cfg.Logging.Format)

	switch cmd {
	case convert.FullCommand():
		return conv.run(stdin, stdout)
	case formats.FullCommand():
		return listFormats(stdout, marktable.NewRegistry())
	case compare.FullCommand():
		return cmp.run(stdout)
	case serve.FullCommand():
		if err := cfg.Server.Validate(); err != nil {
			return err
		}
		return server.New(cfg.Server, marktable.NewRegistry()).Run(ctx)
	}
	return nil
}

func (c convertCmd) run(stdin io.Reader, stdout io.Writer) error {
	from, err := marktable.ParseFormat(c.from)
	if err != nil {
		return err
	}
	to, err := marktable.ParseFormat(c.to)
	if err != nil {
		return err
	}
	mode, err := marktable.ParseHeaderMode(c.headers)
	if err != nil {
		return err
	}
	style, err := marktable.ParseBorderStyle(c.border)
	if err != nil {
		return err
	}
	registry := marktable.NewRegistry()
	registry.Register(marktable.Text, nil, marktable.TextFormatter(style))
	opts := []marktable.Option{marktable.WithHeaders(mode), marktable.WithRegistry(registry)}

	var t *marktable.Table
	if c.input == "" {
		t, err = marktable.New(stdin, from, opts...)
	} else {
		t, err = marktable.Read(c.input, from, opts...)
	}
	if err != nil {
		return err
	}

	if c.output != "" {
		return marktable.Write(c.output, t, to)
	}
	if err := marktable.WriteIter(stdout, to, t.Headers(), t.Rows(),
		marktable.WithRegistry(registry), marktable.WithAlignments(t.Alignments()...)); err != nil {
		return err
	}
	// Markdown and HTML output has no trailing newline.
	if (to == marktable.Markdown || to == marktable.HTML) && (t.HasHeaders() || !t.IsEmpty()) {
		_, err = fmt.Fprintln(stdout)
	}
	return err
}

func (c compareCmd) run(stdout io.Writer) error {
	f, err := marktable.ParseFormat(c.format)
	if err != nil {
		return err
	}
	expected, err := os.ReadFile(c.expected)
	if err != nil {
		return err
	}
	actual, err := os.ReadFile(c.actual)
	if err != nil {
		return err
	}
	opts := []marktabletest.Option{marktabletest.WithFormat(f)}
	if c.ignoreHeaders {
		opts = append(opts, marktabletest.IgnoreHeaders())
	}
	cmp, err := marktabletest.Compare(expected, actual, opts...)
	if err != nil {
		return err
	}
	if !cmp.Equal {
		fmt.Fprintln(stdout, cmp.FailureMessage())
		return errTablesDiffer
	}
	_, err = fmt.Fprintln(stdout, "tables match")
	return err
}

func listFormats(w io.Writer, registry *marktable.Registry) error {
	for _, f := range registry.Formats() {
		_, perr := registry.Parser(f)
		_, ferr := registry.Formatter(f)
		dirs := "parse, render"
		switch {
		case ferr != nil:
			dirs = "parse"
		case perr != nil:
			dirs = "render"
		}
		if _, err := fmt.Fprintf(w, "%-10s %s\n", f, dirs); err != nil {
			return err
		}
	}
	return nil
}
