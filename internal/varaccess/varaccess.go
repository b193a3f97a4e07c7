// Package varaccess emits accessors for scene and global variables.
//
// When a variable is declared in its container at generation time the
// accessor reads it by position, otherwise by name. Both forms return the
// same variable at runtime; resolution happens independently at every call
// site.
package varaccess

import (
	"strconv"
	"strings"

	"github.com/specialistvlad/scenepack/internal/project"
)

// Scope selects the variables container.
type Scope int

const (
	Scene Scope = iota
	Global
)

// Container returns the runtime expression of the container.
func (s Scope) Container() string {
	if s == Global {
		return "runtimeScene.getGame().getVariables()"
	}
	return "runtimeScene.getVariables()"
}

func (s Scope) variables(p *project.Project, l *project.Layout) *project.Variables {
	if s == Global {
		if p == nil {
			return nil
		}
		return p.Variables
	}
	if l == nil {
		return nil
	}
	return l.Variables
}

// Accessor returns the code reading the named variable.
func Accessor(p *project.Project, l *project.Layout, scope Scope, name string) string {
	if i, ok := scope.variables(p, l).Position(name); ok {
		return scope.Container() + ".getFromIndex(" + strconv.Itoa(i) + ")"
	}
	return scope.Container() + `.get("` + Escape(name) + `")`
}

// Has returns the code testing whether the named variable exists.
func Has(scope Scope, name string) string {
	return scope.Container() + `.hasVariable("` + Escape(name) + `")`
}

// Modify returns the statement applying op with value to the variable read
// by accessor. Unsupported operators give an empty string.
func Modify(accessor, op, value string, textual bool) string {
	var method string
	if textual {
		switch op {
		case "=":
			method = "setString"
		case "+":
			method = "concatenate"
		}
	} else {
		switch op {
		case "=":
			method = "setNumber"
		case "+":
			method = "add"
		case "-":
			method = "sub"
		case "*":
			method = "mul"
		case "/":
			method = "div"
		}
	}
	if method == "" {
		return ""
	}
	return accessor + "." + method + "(" + value + ");\n"
}

// Value returns the expression reading the variable as a number or a string.
func Value(accessor string, textual bool) string {
	if textual {
		return accessor + ".getAsString()"
	}
	return accessor + ".getAsNumber()"
}

// Compare returns the statement storing into boolean the comparison of the
// variable with value. "=" and an empty operator test equality.
// Unsupported operators give an empty string.
func Compare(boolean, accessor, op, value string, textual bool) string {
	jsOp := ""
	switch op {
	case "=", "":
		jsOp = "==="
	case "!=":
		jsOp = "!="
		if textual {
			jsOp = "!=="
		}
	case ">", "<", ">=", "<=":
		if !textual {
			jsOp = op
		}
	}
	if jsOp == "" {
		return ""
	}
	return boolean + " = " + Value(accessor, textual) + " " + jsOp + " " + value + ";"
}

// Escape makes s safe inside a double-quoted runtime string literal.
func Escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
