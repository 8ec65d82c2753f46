package memory

import (
	"FF7Ultima/addresses"
	"FF7Ultima/types"
	"FF7Ultima/utils"
)

// CurrentModule reads which subsystem the game is running.
func CurrentModule(ff7 *utils.ClassMemory, t *addresses.Table) (types.Module, error) {
	m, err := utils.ReadAndAssert[uint16](ff7, t.CurrentModule)
	if err != nil {
		return types.ModuleNone, err
	}
	return types.Module(m), nil
}

// IsInGame reports whether the game has initialised far enough for the
// decoders to return meaningful data.
func IsInGame(ff7 *utils.ClassMemory, t *addresses.Table) (bool, error) {
	m, err := CurrentModule(ff7, t)
	if err != nil {
		return false, err
	}
	return m != types.ModuleNone, nil
}
