package expr

import "strings"

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentChar(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// rewriteObjectCalls turns Object.Method( into Object::Method( outside of
// string literals. Inside them it escapes what HCL templates would
// interpret: ${ and %{ sequences, and backslashes other than \" and \\.
func rewriteObjectCalls(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 8)

	inString := false
	for i := 0; i < len(text); {
		ch := text[i]
		if inString {
			next := byte(0)
			if i+1 < len(text) {
				next = text[i+1]
			}
			switch {
			case ch == '\\' && (next == '"' || next == '\\'):
				b.WriteByte(ch)
				b.WriteByte(next)
				i += 2
				continue
			case ch == '\\':
				b.WriteString(`\\`)
			case (ch == '$' || ch == '%') && next == '{':
				b.WriteByte(ch)
				b.WriteByte(ch)
			case ch == '"':
				inString = false
				b.WriteByte(ch)
			default:
				b.WriteByte(ch)
			}
			i++
			continue
		}
		if ch == '"' {
			inString = true
			b.WriteByte(ch)
			i++
			continue
		}
		if !isIdentStart(ch) || (i > 0 && (isIdentChar(text[i-1]) || text[i-1] == '.' || text[i-1] == ':')) {
			b.WriteByte(ch)
			i++
			continue
		}

		start := i
		for i < len(text) && isIdentChar(text[i]) {
			i++
		}
		ident := text[start:i]
		if i+1 < len(text) && text[i] == '.' && isIdentStart(text[i+1]) {
			j := i + 1
			for j < len(text) && isIdentChar(text[j]) {
				j++
			}
			k := j
			for k < len(text) && text[k] == ' ' {
				k++
			}
			if k < len(text) && text[k] == '(' {
				b.WriteString(ident)
				b.WriteString("::")
				b.WriteString(text[i+1 : j])
				i = j
				continue
			}
		}
		b.WriteString(ident)
	}
	return b.String()
}
