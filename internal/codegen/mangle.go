package codegen

import (
	"strconv"
	"strings"
)

// MangleName turns a layout name into a valid identifier. Letters and
// digits are kept, any other character c becomes _<code point of c>_.
func MangleName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteString("_")
		b.WriteString(strconv.Itoa(int(r)))
		b.WriteString("_")
	}
	return b.String()
}

// Namespace returns the runtime object holding the code of a layout.
func Namespace(layoutName string) string {
	return "gdjs." + MangleName(layoutName) + "Code"
}
