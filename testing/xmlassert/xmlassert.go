// Package xmlassert compares XML documents in tests. Documents are parsed
// and re-rendered in a canonical form (attributes sorted, insignificant
// whitespace dropped) so expected documents can be written readably.
package xmlassert

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// T provides the testing interface for capturing failures.
type T interface {
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Helper()
}

type node struct {
	name     xml.Name
	attrs    []xml.Attr
	text     string
	children []*node
}

// Canonical returns a normalized rendering of the reader's XML document.
func Canonical(r io.Reader) (string, error) {
	d := xml.NewDecoder(r)
	for {
		tok, err := d.Token()
		if err != nil {
			return "", fmt.Errorf("malformed xml: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			root, err := build(d, start)
			if err != nil {
				return "", fmt.Errorf("malformed xml: %w", err)
			}
			var sb strings.Builder
			render(&sb, root)
			return sb.String(), nil
		}
	}
}

func build(d *xml.Decoder, start xml.StartElement) (*node, error) {
	n := &node{name: start.Name, attrs: start.Attr}
	sortAttrs(n.attrs)

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := build(d, t)
			if err != nil {
				return nil, err
			}
			n.children = append(n.children, child)
		case xml.EndElement:
			return n, nil
		case xml.CharData:
			n.text += string(t)
		}
	}
}

func render(sb *strings.Builder, n *node) {
	sb.WriteByte('<')
	sb.WriteString(renderName(n.name))
	for _, a := range n.attrs {
		fmt.Fprintf(sb, " %s=%q", renderName(a.Name), a.Value)
	}
	sb.WriteByte('>')

	sb.WriteString(strings.TrimSpace(n.text))
	for _, c := range n.children {
		render(sb, c)
	}

	sb.WriteString("</")
	sb.WriteString(renderName(n.name))
	sb.WriteByte('>')
}

func renderName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

func sortAttrs(attrs []xml.Attr) {
	sort.Slice(attrs, func(i, j int) bool {
		if attrs[i].Name.Space != attrs[j].Name.Space {
			return attrs[i].Name.Space < attrs[j].Name.Space
		}
		if attrs[i].Name.Local != attrs[j].Name.Local {
			return attrs[i].Name.Local < attrs[j].Name.Local
		}
		return attrs[i].Value < attrs[j].Value
	})
}

// Equal compares two XML documents after canonicalization, returning an
// error carrying the diff when they differ.
func Equal(expect, actual io.Reader) error {
	e, err := Canonical(expect)
	if err != nil {
		return fmt.Errorf("expected document: %w", err)
	}

	a, err := Canonical(actual)
	if err != nil {
		return fmt.Errorf("actual document: %w", err)
	}

	if diff := cmp.Diff(e, a); len(diff) != 0 {
		return fmt.Errorf("xml mismatch (-expect +actual):\n%s", diff)
	}
	return nil
}

// AssertEqual compares two XML documents after canonicalization and
// reports a testing error with the diff if they differ.
func AssertEqual(t T, expect, actual string) bool {
	t.Helper()

	if err := Equal(strings.NewReader(expect), strings.NewReader(actual)); err != nil {
		t.Errorf("expect XML equal, %v", err)
		return false
	}
	return true
}
