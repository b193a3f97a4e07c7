package document

// Normalize returns a copy of the tree the JSON writer can represent
// without loss. At every level, in order:
//
//  1. a value held next to children moves into a trailing "value" child;
//  2. the AttrKey child is renamed "attr";
//  3. children sharing a non-empty key are collapsed into one child under
//     that key, placed where the first of them was, whose children are the
//     originals in order under empty keys.
//
// Every resulting child is then normalized. The input tree is left
// untouched and normalizing a normalized tree changes nothing.
func Normalize(n *Node) *Node {
	out := &Node{Key: n.Key, Value: n.Value}
	children := make([]*Node, 0, len(n.Children)+1)

	for _, c := range n.Children {
		if c.Key == AttrKey {
			c = &Node{Key: "attr", Value: c.Value, Children: c.Children}
		}
		children = append(children, c)
	}
	if out.Value != "" && len(children) > 0 {
		children = append(children, &Node{Key: "value", Value: out.Value})
		out.Value = ""
	}

	counts := make(map[string]int, len(children))
	for _, c := range children {
		counts[c.Key]++
	}
	collapsed := make(map[string]*Node)
	for _, c := range children {
		if c.Key == "" || counts[c.Key] == 1 {
			out.Children = append(out.Children, Normalize(c))
			continue
		}
		array, seen := collapsed[c.Key]
		if !seen {
			array = &Node{Key: c.Key}
			collapsed[c.Key] = array
			out.Children = append(out.Children, array)
		}
		element := Normalize(c)
		element.Key = ""
		array.Children = append(array.Children, element)
	}
	return out
}
