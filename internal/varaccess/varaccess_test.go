package varaccess_test

import (
	"testing"

	"github.com/specialistvlad/scenepack/internal/project"
	"github.com/specialistvlad/scenepack/internal/varaccess"
	"github.com/stretchr/testify/require"
)

func fixture() (*project.Project, *project.Layout) {
	p := project.New("game")
	p.Variables.Set("Lives", "3")
	l := p.AddLayout(project.NewLayout("Main"))
	l.Variables.Set("X", "0")
	l.Variables.Set("Y", "0")
	return p, l
}

func TestAccessor(t *testing.T) {
	p, l := fixture()

	tests := []struct {
		name  string
		scope varaccess.Scope
		vname string
		want  string
	}{
		{"declared scene variable", varaccess.Scene, "Y", "runtimeScene.getVariables().getFromIndex(1)"},
		{"undeclared scene variable", varaccess.Scene, "Z", `runtimeScene.getVariables().get("Z")`},
		{"declared global variable", varaccess.Global, "Lives", "runtimeScene.getGame().getVariables().getFromIndex(0)"},
		{"scene name is not global", varaccess.Global, "X", `runtimeScene.getGame().getVariables().get("X")`},
		{"name is escaped", varaccess.Scene, `a"b`, `runtimeScene.getVariables().get("a\"b")`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, varaccess.Accessor(p, l, tt.scope, tt.vname))
		})
	}
}

func TestAccessor_PositionFollowsDeclarations(t *testing.T) {
	p, l := fixture()
	require.Equal(t, "runtimeScene.getVariables().getFromIndex(1)", varaccess.Accessor(p, l, varaccess.Scene, "Y"))

	l.Variables.Remove("X")
	require.Equal(t, "runtimeScene.getVariables().getFromIndex(0)", varaccess.Accessor(p, l, varaccess.Scene, "Y"))
}

func TestModify(t *testing.T) {
	acc := "v"
	require.Equal(t, "v.setNumber(10);\n", varaccess.Modify(acc, "=", "10", false))
	require.Equal(t, "v.add(1);\n", varaccess.Modify(acc, "+", "1", false))
	require.Equal(t, "v.sub(1);\n", varaccess.Modify(acc, "-", "1", false))
	require.Equal(t, "v.mul(2);\n", varaccess.Modify(acc, "*", "2", false))
	require.Equal(t, "v.div(2);\n", varaccess.Modify(acc, "/", "2", false))
	require.Equal(t, "", varaccess.Modify(acc, "%", "2", false))

	require.Equal(t, "v.setString(\"a\");\n", varaccess.Modify(acc, "=", `"a"`, true))
	require.Equal(t, "v.concatenate(\"a\");\n", varaccess.Modify(acc, "+", `"a"`, true))
	require.Equal(t, "", varaccess.Modify(acc, "-", `"a"`, true))
}

func TestCompare(t *testing.T) {
	require.Equal(t, "b.val = v.getAsNumber() === 5;", varaccess.Compare("b.val", "v", "=", "5", false))
	require.Equal(t, "b.val = v.getAsNumber() === 5;", varaccess.Compare("b.val", "v", "", "5", false))
	require.Equal(t, "b.val = v.getAsNumber() >= 5;", varaccess.Compare("b.val", "v", ">=", "5", false))
	require.Equal(t, "b.val = v.getAsNumber() != 5;", varaccess.Compare("b.val", "v", "!=", "5", false))
	require.Equal(t, "", varaccess.Compare("b.val", "v", "~", "5", false))

	require.Equal(t, `b.val = v.getAsString() === "a";`, varaccess.Compare("b.val", "v", "=", `"a"`, true))
	require.Equal(t, `b.val = v.getAsString() !== "a";`, varaccess.Compare("b.val", "v", "!=", `"a"`, true))
	require.Equal(t, "", varaccess.Compare("b.val", "v", "<", `"a"`, true))
}

func TestHas(t *testing.T) {
	require.Equal(t, `runtimeScene.getVariables().hasVariable("X")`, varaccess.Has(varaccess.Scene, "X"))
	require.Equal(t, `runtimeScene.getGame().getVariables().hasVariable("X")`, varaccess.Has(varaccess.Global, "X"))
}
