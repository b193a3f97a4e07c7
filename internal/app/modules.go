package app

import (
	"github.com/specialistvlad/scenepack/internal/registry"
	"github.com/specialistvlad/scenepack/modules"
)

// coreModules returns the definitive list of the extensions compiled into
// the scenepack binary.
func coreModules() []registry.Module {
	return modules.Core()
}
