package document

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/specialistvlad/scenepack/internal/project"
)

// WriteJSON writes a normalized tree as JSON. A leaf is written as a
// string, a node whose children all have empty keys as an array, any other
// node as an object keeping the order of its children.
func WriteJSON(w io.Writer, n *Node, pretty bool) error {
	var buf bytes.Buffer
	if err := writeNode(&buf, n); err != nil {
		return err
	}
	if pretty {
		var indented bytes.Buffer
		if err := json.Indent(&indented, buf.Bytes(), "", "    "); err != nil {
			return fmt.Errorf("failed to indent document: %w", err)
		}
		buf = indented
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func writeNode(buf *bytes.Buffer, n *Node) error {
	if n.Leaf() {
		return writeString(buf, n.Value)
	}
	if n.Count("") == len(n.Children) {
		buf.WriteByte('[')
		for i, c := range n.Children {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNode(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}
	buf.WriteByte('{')
	for i, c := range n.Children {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, c.Key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeNode(buf, c); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode %q: %w", s, err)
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Serialize renders a project as the JSON data bundle. When wrapVar is not
// empty the document is wrapped as "<wrapVar> = <document>;" so it loads as
// a plain script.
func Serialize(w io.Writer, p *project.Project, wrapVar string, pretty bool) error {
	xmlDoc, err := p.Document()
	if err != nil {
		return err
	}
	raw, err := FromXML(bytes.NewReader(xmlDoc))
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if wrapVar != "" {
		bw.WriteString(wrapVar + " = ")
	}
	if err := WriteJSON(bw, Normalize(raw), pretty); err != nil {
		return err
	}
	if wrapVar != "" {
		bw.WriteString(";")
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write project data: %w", err)
	}
	return nil
}
