package marktable

import (
	"bufio"
	"io"
	"regexp"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// cellBreak matches the line-break marker inside a cell: the two characters
// `\n` as written in Markdown, or a literal line break.
var cellBreak = regexp.MustCompile(`\\n|\r?\n`)

type htmlFormatter struct{}

func (htmlFormatter) Format(w io.Writer, rows []*Row, headers []string, aligns []Alignment) error {
	if len(rows) == 0 && headers == nil {
		return nil
	}
	table := element(atom.Table)
	if headers != nil {
		tr := element(atom.Tr)
		for i, h := range headers {
			th := element(atom.Th, alignAttr(aligns, i)...)
			appendText(th, h)
			tr.AppendChild(th)
		}
		thead := element(atom.Thead)
		thead.AppendChild(tr)
		table.AppendChild(thead)
	}

	tbody := element(atom.Tbody)
	for _, row := range rows {
		cells := row.values
		if headers != nil {
			cells = row.cells(len(headers))
		}
		tr := element(atom.Tr)
		for i, cell := range cells {
			td := element(atom.Td, alignAttr(aligns, i)...)
			appendCell(td, cell)
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)

	bw := bufio.NewWriter(w)
	renderNode(bw, table)
	return bw.Flush()
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func appendText(n *html.Node, s string) {
	if s != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	}
}

// appendCell adds the cell's text, turning each line-break marker into <br>.
func appendCell(td *html.Node, cell string) {
	parts := cellBreak.Split(cell, -1)
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, part := range parts {
		if i > 0 {
			td.AppendChild(element(atom.Br))
		}
		appendText(td, part)
	}
}

func alignAttr(aligns []Alignment, col int) []html.Attribute {
	if col >= len(aligns) {
		return nil
	}
	switch aligns[col] {
	case AlignRight:
		return []html.Attribute{{Key: "style", Val: "text-align: right"}}
	case AlignCenter:
		return []html.Attribute{{Key: "style", Val: "text-align: center"}}
	default:
		return nil
	}
}

var inlineElements = map[atom.Atom]bool{
	atom.Br: true, atom.A: true, atom.B: true, atom.I: true, atom.Span: true,
	atom.Em: true, atom.Strong: true, atom.Code: true,
}

var voidElements = map[atom.Atom]bool{
	atom.Br: true, atom.Hr: true, atom.Img: true, atom.Input: true,
}

// renderNode serializes n the way libxml2 formats HTML: an element with
// several children opens and closes on its own line unless its first or
// last child is text, and sibling elements are separated by a newline.
// Inline elements never add line breaks.
func renderNode(w *bufio.Writer, n *html.Node) {
	if n.Type == html.TextNode {
		w.WriteString(html.EscapeString(n.Data))
		return
	}
	w.WriteString("<" + n.Data)
	for _, a := range n.Attr {
		w.WriteString(" " + a.Key + `="` + html.EscapeString(a.Val) + `"`)
	}
	w.WriteString(">")
	if voidElements[n.DataAtom] {
		return
	}

	block := !inlineElements[n.DataAtom]
	first, last := n.FirstChild, n.LastChild
	multi := first != nil && first != last
	if block && multi && first.Type != html.TextNode {
		w.WriteString("\n")
	}
	for c := first; c != nil; c = c.NextSibling {
		renderNode(w, c)
		next := c.NextSibling
		if c.Type == html.ElementNode && !inlineElements[c.DataAtom] && next != nil && next.Type != html.TextNode {
			w.WriteString("\n")
		}
	}
	if block && multi && last.Type != html.TextNode {
		w.WriteString("\n")
	}
	w.WriteString("</" + n.Data + ">")
}
