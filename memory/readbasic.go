package memory

import (
	"FF7Ultima/addresses"
	"FF7Ultima/types"
	"FF7Ultima/utils"
)

// ReadBasicData reads the flat runtime state, one location per field.
func ReadBasicData(ff7 *utils.ClassMemory, t *addresses.Table) (*types.BasicData, error) {
	r := newFieldReader(ff7)

	b := &types.BasicData{
		CurrentModule:          read[uint16](r, t.CurrentModule),
		GameMoment:             read[uint16](r, t.GameMoment),
		FieldID:                read[uint16](r, t.FieldID),
		FieldFPS:               read[float64](r, t.FieldFPS),
		BattleFPS:              read[float64](r, t.BattleFPS),
		WorldFPS:               read[float64](r, t.WorldFPS),
		InGameTime:             read[uint32](r, t.InGameTime),
		DiscID:                 read[uint8](r, t.DiscID),
		MenuVisibility:         read[uint16](r, t.MenuVisibility),
		MenuLocks:              read[uint16](r, t.MenuLocks),
		FieldMovementDisabled:  read[uint8](r, t.FieldMovementDisabled),
		FieldMenuAccessEnabled: read[uint8](r, t.FieldMenuAccessEnabled),
		PartyLockingMask:       read[uint16](r, t.PartyLockingMask),
		PartyVisibilityMask:    read[uint16](r, t.PartyVisibilityMask),
		Gil:                    read[uint32](r, t.Gil),
		GP:                     read[uint16](r, t.GP),
		BattleCount:            read[uint16](r, t.BattleCount),
		BattleEscapeCount:      read[uint16](r, t.BattleEscapeCount),
		FieldBattleCheck:       read[uint32](r, t.FieldBattleCheck),
		GameObjPtr:             read[uint32](r, t.GameObjPtr),
		BattleSwirlCheck:       read[uint8](r, t.BattleSwirlCheck),
		InstantATBCheck:        read[uint16](r, t.InstantATBCheck),
		UnfocusPatchCheck:      read[uint8](r, t.UnfocusPatchCheck),
		FFNxCheck:              read[uint8](r, t.FFNxCheck),
		StepID:                 read[uint32](r, t.StepID),
		StepFraction:           read[uint32](r, t.StepFraction),
		DangerValue:            read[uint32](r, t.DangerValue),
		BattleID:               read[uint16](r, t.BattleID),
		InvincibilityCheck:     read[uint16](r, t.BattleInitCharsCall),
		ExpMultiplier:          read[uint8](r, t.BattleExpCalc+8),
		APMultiplier:           read[uint8](r, t.BattleAPCalc+2),
		BattleChocoboRating:    read[uint8](r, t.BattleChocoboRating),
		MenuAlwaysEnabled:      read[uint8](r, t.MenuAlwaysEnabled),
		WorldZoomTiltEnabled:   read[uint8](r, t.WorldZoomTiltEnabled),
		WorldZoom:              read[uint16](r, t.WorldZoom),
		WorldTilt:              read[uint16](r, t.WorldTilt),
		WorldSpeedMultiplier:   read[uint8](r, t.WorldSpeedMultiplier),
		PartyMemberIDs:         r.raw(t.PartyMemberIDs, 3),
		KeyItems:               r.raw(t.KeyItems, 8),
	}
	if r.err != nil {
		return nil, r.err
	}
	return b, nil
}
