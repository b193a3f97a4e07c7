// Package modules lists the extensions compiled into the binary.
package modules

import (
	"github.com/specialistvlad/scenepack/internal/registry"
	"github.com/specialistvlad/scenepack/modules/externallayouts"
	"github.com/specialistvlad/scenepack/modules/mathtools"
	"github.com/specialistvlad/scenepack/modules/mouse"
	"github.com/specialistvlad/scenepack/modules/sprite"
	"github.com/specialistvlad/scenepack/modules/stringinstructions"
	"github.com/specialistvlad/scenepack/modules/variables"
)

// Core returns the built-in extensions in registration order.
func Core() []registry.Module {
	return []registry.Module{
		&variables.Module{},
		&mathtools.Module{},
		&stringinstructions.Module{},
		&mouse.Module{},
		&sprite.Module{},
		&externallayouts.Module{},
	}
}
