package document

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// AttrKey is the key of the child holding the attributes of an element in a
// raw tree.
const AttrKey = "<xmlattr>"

// Node is a keyed tree node: an optional scalar value plus ordered
// children. Several children may share a key.
type Node struct {
	Key      string
	Value    string
	Children []*Node
}

// Leaf reports whether the node has no children.
func (n *Node) Leaf() bool {
	return len(n.Children) == 0
}

// Child returns the first child with the given key.
func (n *Node) Child(key string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Key == key {
			return c, true
		}
	}
	return nil, false
}

// Count returns how many children have the given key.
func (n *Node) Count(key string) int {
	count := 0
	for _, c := range n.Children {
		if c.Key == key {
			count++
		}
	}
	return count
}

// FromXML reads an XML document into a raw tree. The returned root has an
// empty key and the document element as its only child. Attributes become
// children of an AttrKey child, text becomes the value of its element.
func FromXML(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	root := &Node{}
	stack := []*Node{root}
	text := []string{""}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Key: t.Name.Local}
			if len(t.Attr) > 0 {
				attrs := &Node{Key: AttrKey}
				for _, a := range t.Attr {
					attrs.Children = append(attrs.Children, &Node{Key: a.Name.Local, Value: a.Value})
				}
				n.Children = append(n.Children, attrs)
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
			stack = append(stack, n)
			text = append(text, "")
		case xml.CharData:
			text[len(text)-1] += string(t)
		case xml.EndElement:
			n := stack[len(stack)-1]
			n.Value = elementText(n, text[len(text)-1])
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		}
	}
	if len(stack) != 1 {
		return nil, errors.New("failed to read document: unexpected end of input")
	}
	if len(root.Children) == 0 {
		return nil, errors.New("failed to read document: no root element")
	}
	return root, nil
}

// elementText keeps text verbatim, except for whitespace between child
// elements, which is layout only.
func elementText(n *Node, text string) string {
	if strings.TrimSpace(text) != "" {
		return text
	}
	for _, c := range n.Children {
		if c.Key != AttrKey {
			return ""
		}
	}
	return text
}
