// Package sprite implements the instructions and expressions of Sprite
// objects, plus the free collision conditions.
package sprite

import "github.com/specialistvlad/scenepack/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

// ObjectType is the type name of sprite objects.
const ObjectType = "Sprite"

const includeFile = "spriteruntimeobject.js"

var (
	object = registry.Parameter{Type: registry.ParamObject, Extra: ObjectType}
	target = registry.Parameter{Type: registry.ParamObject}
	scene  = registry.Parameter{Type: registry.ParamCurrentScene, CodeOnly: true}
	op     = registry.Parameter{Type: registry.ParamOperator}
	relOp  = registry.Parameter{Type: registry.ParamRelationalOperator}
	number = registry.Parameter{Type: registry.ParamExpression}
	text   = registry.Parameter{Type: registry.ParamString}
	yesNo  = registry.Parameter{Type: registry.ParamYesOrNo}
)

func catalog() *registry.Extension {
	ext := registry.NewExtension("Sprite")
	action := func(id string, params ...registry.Parameter) {
		ext.DeclareForObject(ObjectType, registry.Action, id, append([]registry.Parameter{object}, params...)...)
	}
	condition := func(id string, params ...registry.Parameter) {
		ext.DeclareForObject(ObjectType, registry.Condition, id, append([]registry.Parameter{object}, params...)...)
	}
	expression := func(id string, params ...registry.Parameter) {
		ext.DeclareForObject(ObjectType, registry.Expression, id, append([]registry.Parameter{object}, params...)...)
	}

	action("ChangeBlendMode", number)
	action("Opacity", op, number)
	action("ChangeAnimation", op, number)
	action("ChangeDirection", op, number)
	action("ChangeSprite", op, number)
	action("PauseAnimation")
	action("PlayAnimation")
	action("ChangeScaleWidth", op, number)
	action("ChangeScaleHeight", op, number)
	action("ChangeScale", op, number)
	action("TourneVersPos", number, number)
	action("TourneVers", target)
	action("FlipX", yesNo)
	action("FlipY", yesNo)
	action("CopyImageOnImageOfSprite", text, number, number)

	for _, id := range []string{"BlendMode", "Opacity", "Animation", "Direction", "Sprite", "ScaleWidth", "ScaleHeight"} {
		condition(id, relOp, number)
	}
	condition("AnimationEnded")
	condition("AnimStopped")
	condition("SourisSurObjet", scene)

	ext.Declare(registry.Condition, "Collision", target, target, scene)
	ext.Declare(registry.Condition, "EstTourne", target, target, number)

	for _, id := range []string{"X", "Y", "PointX", "PointY"} {
		expression(id, text)
	}
	for _, id := range []string{"Direc", "Direction", "Anim", "Animation", "Sprite", "ScaleX", "ScaleY", "Width", "Height"} {
		expression(id)
	}
	return ext
}

// Register adds the sprite extension to the registry.
func (m *Module) Register(r *registry.Registry) {
	ext := catalog().Clone("Sprite")
	action := func(id string) *registry.Descriptor {
		return ext.EntryForObject(ObjectType, registry.Action, id)
	}
	condition := func(id string) *registry.Descriptor {
		return ext.EntryForObject(ObjectType, registry.Condition, id)
	}
	expression := func(id string) *registry.Descriptor {
		return ext.EntryForObject(ObjectType, registry.Expression, id)
	}

	action("ChangeBlendMode").SetFunctionName("setBlendMode").AddIncludeFile(includeFile)
	action("Opacity").SetFunctionName("setOpacity").SetAssociatedGetter("getOpacity").AddIncludeFile(includeFile)
	condition("BlendMode").SetFunctionName("getBlendMode").AddIncludeFile(includeFile)
	condition("Opacity").SetFunctionName("getOpacity").AddIncludeFile(includeFile)

	action("ChangeAnimation").SetFunctionName("setAnimation").SetAssociatedGetter("getAnimation")
	action("ChangeDirection").SetFunctionName("setDirectionOrAngle").SetAssociatedGetter("getDirectionOrAngle")
	action("ChangeSprite").SetFunctionName("setAnimationFrame").SetAssociatedGetter("getAnimationFrame")
	condition("Animation").SetFunctionName("getAnimation")
	condition("Direction").SetFunctionName("getDirectionOrAngle")
	condition("Sprite").SetFunctionName("getAnimationFrame")
	condition("AnimationEnded").SetFunctionName("hasAnimationEnded")
	action("PauseAnimation").SetFunctionName("pauseAnimation")
	action("PlayAnimation").SetFunctionName("playAnimation")
	condition("AnimStopped").SetFunctionName("animationPaused")

	action("ChangeScaleWidth").SetFunctionName("setScaleX").SetAssociatedGetter("getScaleX")
	action("ChangeScaleHeight").SetFunctionName("setScaleY").SetAssociatedGetter("getScaleY")
	condition("ScaleWidth").SetFunctionName("getScaleX")
	condition("ScaleHeight").SetFunctionName("getScaleY")
	action("TourneVersPos").SetFunctionName("turnTowardPosition")
	action("TourneVers").SetFunctionName("turnTowardObject")
	action("FlipX").SetFunctionName("flipX")
	action("FlipY").SetFunctionName("flipY")
	condition("SourisSurObjet").SetFunctionName("cursorOnObject")

	// No pixel perfect collision on this platform.
	ext.Entry(registry.Condition, "Collision").SetFunctionName("gdjs.evtTools.object.hitBoxesCollisionTest")
	ext.Entry(registry.Condition, "EstTourne").SetFunctionName("gdjs.evtTools.object.turnedTowardTest")

	expression("X").SetFunctionName("getPointX")
	expression("Y").SetFunctionName("getPointY")
	expression("PointX").SetFunctionName("getPointX")
	expression("PointY").SetFunctionName("getPointY")
	expression("Direc").SetFunctionName("getDirectionOrAngle")
	expression("Direction").SetFunctionName("getDirectionOrAngle")
	expression("Anim").SetFunctionName("getAnimation")
	expression("Animation").SetFunctionName("getAnimation")
	expression("Sprite").SetFunctionName("getAnimationFrame")
	expression("ScaleX").SetFunctionName("getScaleX")
	expression("ScaleY").SetFunctionName("getScaleY")

	ext.StripUnimplemented()
	r.AddExtension(ext)
}
