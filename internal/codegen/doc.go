// Package codegen turns the event tree of a layout into the runtime code of
// that scene.
//
// Each layout produces one source file declaring gdjs.<Scene>Code with a
// func(runtimeScene) entry point. Conditions store their result in boolean
// temporaries named condition<i>IsTrue_<depth>; the actions and sub-events
// of an event are only reached when every condition of the event is true.
// Instructions whose identifier is not in the registry generate nothing.
package codegen
