package codegen_test

import (
	"strings"
	"testing"

	"github.com/specialistvlad/scenepack/internal/codegen"
	"github.com/specialistvlad/scenepack/internal/project"
	"github.com/specialistvlad/scenepack/internal/testutil"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, p *project.Project, l *project.Layout) *codegen.SceneCode {
	t.Helper()
	code, err := codegen.GenerateSceneCode(testutil.Registry(), p, l)
	require.NoError(t, err)
	require.Equal(t, strings.Count(code.Code, "{"), strings.Count(code.Code, "}"), "unbalanced braces:\n%s", code.Code)
	return code
}

func spriteLayout(names ...string) (*project.Project, *project.Layout) {
	p, l := testutil.NewProject()
	for _, n := range names {
		l.Objects = append(l.Objects, project.Object{Name: n, Type: "Sprite"})
	}
	return p, l
}

func TestGenerateSceneCode_VariableConditionGatesAction(t *testing.T) {
	// --- Arrange ---
	p, l := testutil.NewProject()
	l.Variables.Set("X", "0")
	l.Variables.Set("Y", "0")
	l.Events = []*project.Event{testutil.Event(
		[]*project.Instruction{testutil.Cond("VarScene", "X", "=", "5")},
		[]*project.Instruction{testutil.Act("ModVarScene", "Y", "=", "10")},
	)}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	expected := `gdjs.MainCode = {};
gdjs.MainCode.conditionTrue_0 = {val:false};
gdjs.MainCode.condition0IsTrue_0 = {val:false};

gdjs.MainCode.func = function(runtimeScene) {

{
gdjs.MainCode.condition0IsTrue_0.val = false;
{
gdjs.MainCode.conditionTrue_0 = gdjs.MainCode.condition0IsTrue_0;
gdjs.MainCode.conditionTrue_0.val = runtimeScene.getVariables().getFromIndex(0).getAsNumber() === 5;
}
if (gdjs.MainCode.condition0IsTrue_0.val) {
runtimeScene.getVariables().getFromIndex(1).setNumber(10);
}
}
return;
}
`
	require.Equal(t, expected, code.Code)
	require.Equal(t, "Main", code.Layout)
	require.Equal(t, "gdjs.MainCode", code.Namespace)
	require.Empty(t, code.Unresolved)
}

func TestGenerateSceneCode_UndeclaredVariablesAreReadByName(t *testing.T) {
	// --- Arrange ---
	p, l := testutil.NewProject()
	p.Variables.Set("Lives", "3")
	l.Events = []*project.Event{testutil.Event(nil, []*project.Instruction{
		testutil.Act("ModVarScene", "Score", "+", "1"),
		testutil.Act("ModVarGlobal", "Lives", "-", "1"),
		testutil.Act("ModVarSceneTxt", "Name", "+", `"!"`),
	})}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.Contains(t, code.Code, `runtimeScene.getVariables().get("Score").add(1);`)
	require.Contains(t, code.Code, `runtimeScene.getGame().getVariables().getFromIndex(0).sub(1);`)
	require.Contains(t, code.Code, `runtimeScene.getVariables().get("Name").concatenate("!");`)
}

func TestGenerateSceneCode_EmptyLayout(t *testing.T) {
	// --- Arrange ---
	p, l := testutil.NewProject()

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.Equal(t, "gdjs.MainCode = {};\n\ngdjs.MainCode.func = function(runtimeScene) {\nreturn;\n}\n", code.Code)
}

func TestGenerateSceneCode_ConditionsAreChained(t *testing.T) {
	// --- Arrange ---
	p, l := testutil.NewProject()
	l.Events = []*project.Event{testutil.Event(
		[]*project.Instruction{
			testutil.Cond("VarScene", "A", ">", "1"),
			testutil.Cond("VarScene", "B", "<", "2"),
		},
		[]*project.Instruction{testutil.Act("ModVarScene", "C", "=", "3")},
	)}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.Contains(t, code.Code, "gdjs.MainCode.condition0IsTrue_0.val = false;\ngdjs.MainCode.condition1IsTrue_0.val = false;\n")
	require.Contains(t, code.Code, "}if ( gdjs.MainCode.condition0IsTrue_0.val ) {\n{\ngdjs.MainCode.conditionTrue_0 = gdjs.MainCode.condition1IsTrue_0;\n")
	require.Contains(t, code.Code, "if (gdjs.MainCode.condition1IsTrue_0.val) {\n"+`runtimeScene.getVariables().get("C").setNumber(3);`)
	require.Contains(t, code.Code, `get("B").getAsNumber() < 2;`)
}

func TestGenerateSceneCode_SubEventsUseDeeperTemporaries(t *testing.T) {
	// --- Arrange ---
	p, l := testutil.NewProject()
	inner := testutil.Event(
		[]*project.Instruction{testutil.Cond("VarScene", "B", "=", "2")},
		[]*project.Instruction{testutil.Act("ModVarScene", "C", "=", "3")},
	)
	l.Events = []*project.Event{testutil.Event(
		[]*project.Instruction{testutil.Cond("VarScene", "A", "=", "1")},
		nil,
		inner,
	)}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.Contains(t, code.Code, "gdjs.MainCode.conditionTrue_1 = {val:false};\n")
	require.Contains(t, code.Code, "gdjs.MainCode.condition0IsTrue_1 = {val:false};\n")
	outer := strings.Index(code.Code, "if (gdjs.MainCode.condition0IsTrue_0.val) {")
	nested := strings.Index(code.Code, "gdjs.MainCode.conditionTrue_1 = gdjs.MainCode.condition0IsTrue_1;")
	require.Positive(t, outer)
	require.Greater(t, nested, outer)
}

func TestGenerateSceneCode_TemporariesAreDeclaredOnce(t *testing.T) {
	// --- Arrange ---
	p, l := testutil.NewProject()
	event := func() *project.Event {
		return testutil.Event([]*project.Instruction{testutil.Cond("VarSceneDef", "A")}, nil)
	}
	l.Events = []*project.Event{event(), event(), event()}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.Equal(t, 1, strings.Count(code.Code, "gdjs.MainCode.condition0IsTrue_0 = {val:false};"))
	require.Equal(t, 3, strings.Count(code.Code, `runtimeScene.getVariables().hasVariable("A");`))
}

func TestGenerateSceneCode_UnknownInstructionsGenerateNothing(t *testing.T) {
	// --- Arrange ---
	p, l := testutil.NewProject()
	l.Events = []*project.Event{testutil.Event(
		[]*project.Instruction{testutil.Cond("NoSuchCondition", "a")},
		[]*project.Instruction{
			testutil.Act("NoSuchAction"),
			testutil.Act("ModVarScene", "Y", "=", "Variable(X) + Unknown(1)"),
		},
	)}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.NotContains(t, code.Code, "NoSuch")
	require.NotContains(t, code.Code, "if (")
	require.Contains(t, code.Code, `runtimeScene.getVariables().get("Y").setNumber(0);`)
	require.Equal(t, []string{"condition:NoSuchCondition", "action:NoSuchAction", "expression:Unknown"}, code.Unresolved)
}

func TestGenerateSceneCode_DisabledEventsAreSkipped(t *testing.T) {
	// --- Arrange ---
	p, l := testutil.NewProject()
	e := testutil.Event(nil, []*project.Instruction{testutil.Act("ModVarScene", "Y", "=", "1")})
	e.Disabled = true
	l.Events = []*project.Event{e}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.NotContains(t, code.Code, "setNumber")
}

func TestGenerateSceneCode_InvertedConditions(t *testing.T) {
	// --- Arrange ---
	p, l := spriteLayout("A", "B")
	l.Events = []*project.Event{
		testutil.Event([]*project.Instruction{testutil.NotCond("Collision", "A", "B")}, nil),
		testutil.Event([]*project.Instruction{testutil.NotCond("VarScene", "X", "=", "5")}, nil),
	}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.Contains(t, code.Code, `gdjs.MainCode.conditionTrue_0.val = !(gdjs.evtTools.object.hitBoxesCollisionTest(runtimeScene.getObjects("A"), runtimeScene.getObjects("B"), runtimeScene));`)
	require.Contains(t, code.Code, "=== 5;\ngdjs.MainCode.conditionTrue_0.val = !gdjs.MainCode.conditionTrue_0.val;\n")
}

func TestGenerateSceneCode_InvertedConditionWithUnsupportedOperatorStaysFalse(t *testing.T) {
	// --- Arrange ---
	p, l := testutil.NewProject()
	l.Events = []*project.Event{testutil.Event(
		[]*project.Instruction{testutil.NotCond("VarScene", "X", "~", "5")},
		[]*project.Instruction{testutil.Act("ModVarScene", "Y", "=", "1")},
	)}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.NotContains(t, code.Code, "= !gdjs.MainCode.conditionTrue_0.val")
	require.Contains(t, code.Code, "gdjs.MainCode.condition0IsTrue_0.val = false;\n")
	require.Contains(t, code.Code, "if (gdjs.MainCode.condition0IsTrue_0.val) {\n")
}

func TestGenerateSceneCode_ObjectInstructions(t *testing.T) {
	// --- Arrange ---
	p, l := spriteLayout("Player")
	l.Events = []*project.Event{testutil.Event(
		[]*project.Instruction{testutil.Cond("Opacity", "Player", ">", "50")},
		[]*project.Instruction{
			testutil.Act("Opacity", "Player", "+", "10"),
			testutil.Act("PauseAnimation", "Player"),
		},
	)}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.Contains(t, code.Code, `gdjs.MainCode.conditionTrue_0.val = runtimeScene.getObjects("Player").some(function(obj) { return obj.getOpacity() > 50; });`)
	require.Contains(t, code.Code, "for (var i = 0, objs = runtimeScene.getObjects(\"Player\"); i < objs.length; ++i) {\nobjs[i].setOpacity(objs[i].getOpacity() + 10);\n}\n")
	require.Contains(t, code.Code, "objs[i].pauseAnimation();\n")
	require.Equal(t, []string{"spriteruntimeobject.js"}, code.Includes)
}

func TestGenerateSceneCode_ObjectExpressionsUseIteratedInstance(t *testing.T) {
	// --- Arrange ---
	p, l := spriteLayout("Player", "Enemy")
	l.Events = []*project.Event{testutil.Event(nil, []*project.Instruction{
		testutil.Act("Opacity", "Player", "=", "Player.ScaleX() * 100"),
		testutil.Act("Opacity", "Player", "=", "Enemy.ScaleX()"),
	})}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.Contains(t, code.Code, "objs[i].setOpacity(objs[i].getScaleX() * 100);\n")
	require.Contains(t, code.Code, `objs[i].setOpacity(runtimeScene.getObjects("Enemy")[0].getScaleX());`)
	require.Empty(t, code.Unresolved)
}

func TestGenerateSceneCode_GroupsExpandToEveryMember(t *testing.T) {
	// --- Arrange ---
	p, l := spriteLayout("A", "B")
	l.ObjectGroups = []project.ObjectGroup{{Name: "Enemies", Objects: []string{"A", "B"}}}
	l.Events = []*project.Event{testutil.Event(nil, []*project.Instruction{
		testutil.Act("PauseAnimation", "Enemies"),
	})}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.Contains(t, code.Code, `objs = runtimeScene.getObjects("A").concat(runtimeScene.getObjects("B"));`)
}

func TestGenerateSceneCode_UnsupportedOperatorGeneratesNothing(t *testing.T) {
	// --- Arrange ---
	p, l := spriteLayout("Player")
	l.Events = []*project.Event{testutil.Event(nil, []*project.Instruction{
		testutil.Act("Opacity", "Player", "^", "2"),
		testutil.Act("ModVarScene", "Y", "%", "2"),
	})}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.NotContains(t, code.Code, "setOpacity")
	require.NotContains(t, code.Code, `get("Y")`)
	require.Empty(t, code.Unresolved)
}

func TestGenerateSceneCode_FreeMappedConditionWithOperator(t *testing.T) {
	// --- Arrange ---
	p, l := testutil.NewProject()
	l.Events = []*project.Event{testutil.Event(
		[]*project.Instruction{testutil.Cond("SourisX", ">", "100", "", "0")}, nil,
	)}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.Contains(t, code.Code, `gdjs.MainCode.conditionTrue_0.val = gdjs.evtTools.input.getMouseX(runtimeScene, "", 0) > 100;`)
	require.Equal(t, []string{"inputtools.js"}, code.Includes)
}

func TestGenerateSceneCode_LinksInlineEvents(t *testing.T) {
	// --- Arrange ---
	p, l := testutil.NewProject()
	p.ExternalEvents = []*project.ExternalEvents{{
		Name: "Shared",
		Events: []*project.Event{testutil.Event(nil, []*project.Instruction{
			testutil.Act("ModVarScene", "Shared", "=", "1"),
		})},
	}}
	other := p.AddLayout(project.NewLayout("Other"))
	other.Events = []*project.Event{
		testutil.Event(nil, []*project.Instruction{testutil.Act("ModVarScene", "FromOther", "=", "2")}),
		{Link: "Main"},
	}
	l.Events = []*project.Event{
		{Link: "Shared"},
		{Link: "Other"},
		{Link: "Missing"},
	}

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.Contains(t, code.Code, `get("Shared").setNumber(1);`)
	require.Contains(t, code.Code, `get("FromOther").setNumber(2);`)
	require.Equal(t, []string{"link:Main", "link:Missing"}, code.Unresolved)
}

func TestGenerateSceneCode_MangledNamespace(t *testing.T) {
	// --- Arrange ---
	p := project.New("Game")
	l := p.AddLayout(project.NewLayout("Level 1"))

	// --- Act ---
	code := generate(t, p, l)

	// --- Assert ---
	require.Equal(t, "gdjs.Level_32_1Code", code.Namespace)
	require.True(t, strings.HasPrefix(code.Code, "gdjs.Level_32_1Code = {};\n"))
}

func TestGenerateSceneCode_RejectsInvalidInput(t *testing.T) {
	p, l := testutil.NewProject()
	reg := testutil.Registry()

	_, err := codegen.GenerateSceneCode(nil, p, l)
	require.Error(t, err)

	_, err = codegen.GenerateSceneCode(reg, p, nil)
	require.Error(t, err)

	_, err = codegen.GenerateSceneCode(reg, p, project.NewLayout("Main"))
	require.ErrorContains(t, err, "does not belong")
}

func TestMangleName(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"Main", "Main"},
		{"Level 1", "Level_32_1"},
		{"a-b", "a_45_b"},
		{"é", "_233_"},
		{"", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, codegen.MangleName(tc.in))
		})
	}
}
