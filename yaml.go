package marktable

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type yamlParser struct{}

// Parse reads a YAML sequence of mappings or sequences and hands it to the
// array parser. Mapping key order is kept.
func (yamlParser) Parse(src any, mode HeaderMode) (Result, error) {
	text, err := readText(src, YAML)
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Result{}, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return Result{}, fmt.Errorf("%w: yaml: %w", ErrMalformedSource, err)
	}
	if len(doc.Content) == 0 {
		return Result{}, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return Result{}, nil
	}
	if root.Kind != yaml.SequenceNode {
		return Result{}, fmt.Errorf("%w: yaml: document must be a sequence, line %d", ErrMalformedSource, root.Line)
	}

	items := make([]any, len(root.Content))
	for i, n := range root.Content {
		switch n.Kind {
		case yaml.MappingNode:
			rec := make(Record, 0, len(n.Content)/2)
			for j := 0; j+1 < len(n.Content); j += 2 {
				rec = append(rec, KeyValue{Key: n.Content[j].Value, Value: yamlScalar(n.Content[j+1])})
			}
			items[i] = rec
		case yaml.SequenceNode:
			seq := make([]string, len(n.Content))
			for j, c := range n.Content {
				seq[j] = yamlScalar(c)
			}
			items[i] = seq
		default:
			return Result{}, fmt.Errorf("%w: yaml: row at line %d must be a mapping or sequence", ErrMalformedSource, n.Line)
		}
	}
	return arrayParser{}.Parse(items, mode)
}

func yamlScalar(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return ""
		}
		return n.Value
	case yaml.AliasNode:
		if n.Alias != nil {
			return yamlScalar(n.Alias)
		}
		return ""
	}
	flow := *n
	flow.Style = yaml.FlowStyle
	b, err := yaml.Marshal(&flow)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

type yamlFormatter struct{}

func (yamlFormatter) Format(w io.Writer, rows []*Row, headers []string, _ []Alignment) error {
	root := &yaml.Node{Kind: yaml.SequenceNode}
	named, plain := rowData(rows, headers)
	for i := range rows {
		if named != nil {
			m := &yaml.Node{Kind: yaml.MappingNode}
			for _, kv := range named[i] {
				m.Content = append(m.Content, strNode(kv.Key), strNode(kv.Value))
			}
			root.Content = append(root.Content, m)
			continue
		}
		s := &yaml.Node{Kind: yaml.SequenceNode}
		for _, v := range plain[i] {
			s.Content = append(s.Content, strNode(v))
		}
		root.Content = append(root.Content, s)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
