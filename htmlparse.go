package marktable

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	lineBreaks = regexp.MustCompile(`\r?\n`)
	braceOpen  = regexp.MustCompile(`\{[ \t\r\n\f\v]*`)
	braceClose = regexp.MustCompile(`[ \t\r\n\f\v]*\}`)
	spaceRun   = regexp.MustCompile(`[ \t\r\n\f\v]+`)
)

const asciiSpace = " \t\r\n\f\v"

type htmlParser struct{}

// Parse accepts HTML text (string, []byte, io.Reader) or an *html.Node that
// is either a table or contains one. Only the first table is read.
func (htmlParser) Parse(src any, mode HeaderMode) (Result, error) {
	table, err := findTable(src)
	if err != nil || table == nil {
		return Result{}, err
	}
	trs := descendants(table, atom.Tr)
	if len(trs) == 0 {
		return Result{}, nil
	}

	withHeaders := mode == HeadersOn
	if mode == HeadersAuto {
		withHeaders = len(descendants(trs[0], atom.Th)) > 0
	}

	var res Result
	if withHeaders {
		res.Headers = rowCells(trs[0])
		trs = trs[1:]
	}
	res.Rows = make([]*Row, len(trs))
	for i, tr := range trs {
		res.Rows[i] = NewRow(rowCells(tr), res.Headers)
	}
	return res, nil
}

func findTable(src any) (*html.Node, error) {
	if n, ok := src.(*html.Node); ok {
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			return n, nil
		}
		return firstDescendant(n, atom.Table), nil
	}
	text, err := readText(src, HTML)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: html: %w", ErrMalformedSource, err)
	}
	return firstDescendant(doc, atom.Table), nil
}

func firstDescendant(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
		if found := firstDescendant(c, a); found != nil {
			return found
		}
	}
	return nil
}

// descendants returns the elements below n matching any of atoms, in
// document order.
func descendants(n *html.Node, atoms ...atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				for _, a := range atoms {
					if c.DataAtom == a {
						out = append(out, c)
						break
					}
				}
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func rowCells(tr *html.Node) []string {
	cells := descendants(tr, atom.Th, atom.Td)
	values := make([]string, len(cells))
	for i, cell := range cells {
		values[i] = normalizeCellText(textContent(cell))
	}
	return values
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		if p.Type == html.TextNode {
			sb.WriteString(p.Data)
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// normalizeCellText flattens cell text onto one line. Text holding both
// braces is treated as embedded JSON and keeps exactly one space inside
// each brace.
func normalizeCellText(s string) string {
	if strings.Contains(s, "{") && strings.Contains(s, "}") {
		s = lineBreaks.ReplaceAllString(s, " ")
		s = braceOpen.ReplaceAllString(s, "{ ")
		s = braceClose.ReplaceAllString(s, " }")
	}
	s = spaceRun.ReplaceAllString(s, " ")
	s = strings.Trim(s, asciiSpace)
	return strings.ReplaceAll(s, "\u00a0", " ")
}
