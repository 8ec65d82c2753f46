package memory

import (
	"fmt"

	"FF7Ultima/addresses"
	"FF7Ultima/types"
	"FF7Ultima/utils"
)

const (
	battleCharLength  = 104
	battleATBLength   = 68
	battleArrayLength = 0x34
	enemyRecordLength = 16
	enemyDataLength   = 184
	charRecordLength  = 0x84

	firstEnemySlot = 4
	lastEnemySlot  = 9

	noItem = 0xFFFF
)

// readBattleStats fills the stats every battle slot shares.
func readBattleStats(ff7 *utils.ClassMemory, t *addresses.Table, slot uint32, c *types.BattleChar) error {
	b := readBlock(ff7, t.BattleCharBase+slot*battleCharLength, 0x34)
	c.Status = field[uint32](b, 0x0)
	c.Flags = field[uint8](b, 0x5)
	c.MP = field[uint16](b, 0x28)
	c.MaxMP = field[uint16](b, 0x2A)
	c.HP = field[uint32](b, 0x2C)
	c.MaxHP = field[uint32](b, 0x30)
	if b.err != nil {
		return b.err
	}

	atb, err := utils.ReadAndAssert[uint16](ff7, t.BattleATBBase+slot*battleATBLength+2)
	if err != nil {
		return err
	}
	c.ATB = atb
	return nil
}

// ReadBattleAllies reads the three party slots of the current battle.
func ReadBattleAllies(ff7 *utils.ClassMemory, t *addresses.Table) ([]types.BattleChar, error) {
	ids, err := ff7.ReadRaw(t.PartyMemberIDs, 3)
	if err != nil {
		return nil, err
	}

	allies := make([]types.BattleChar, 0, 3)
	for i, id := range ids {
		slot := uint32(i)
		c := types.BattleChar{
			Name: readNameOr(ff7, t.PartyMemberNames+uint32(id)*charRecordLength, unknownName),
		}
		if err := readBattleStats(ff7, t, slot, &c); err != nil {
			return nil, err
		}
		limit, err := utils.ReadAndAssert[uint16](ff7, t.BattleCharArray+slot*battleArrayLength+8)
		if err != nil {
			return nil, err
		}
		c.Limit = limit
		allies = append(allies, c)
	}
	return allies, nil
}

// ReadBattleEnemies reads battle slots 4 to 9.
func ReadBattleEnemies(ff7 *utils.ClassMemory, t *addresses.Table) ([]types.BattleChar, error) {
	enemies := make([]types.BattleChar, 0, lastEnemySlot-firstEnemySlot+1)
	for slot := uint32(firstEnemySlot); slot <= lastEnemySlot; slot++ {
		sceneIdx, err := utils.ReadAndAssert[uint8](ff7, t.EnemyObjBase+(slot-firstEnemySlot)*enemyRecordLength)
		if err != nil {
			sceneIdx = 0
		}
		c := types.BattleChar{
			Name:    readNameOr(ff7, t.EnemyDataBase+uint32(sceneIdx)*enemyDataLength, unknownName),
			SceneID: sceneIdx,
		}
		if err := readBattleStats(ff7, t, slot, &c); err != nil {
			return nil, err
		}
		enemies = append(enemies, c)
	}
	return enemies, nil
}

// ReadEnemyData reads the scene record of enemy id. Loot and morph names
// come from the item catalog.
func ReadEnemyData(ff7 *utils.ClassMemory, t *addresses.Table, id uint32) (*types.EnemyData, error) {
	b := readBlock(ff7, t.EnemyDataBase+id*enemyDataLength, enemyDataLength)
	e := &types.EnemyData{
		Level:                field[uint8](b, 0x20),
		Speed:                field[uint8](b, 0x21),
		Luck:                 field[uint8](b, 0x22),
		Evade:                field[uint8](b, 0x23),
		Strength:             field[uint8](b, 0x24),
		Defense:              uint16(field[uint8](b, 0x25)) * 2,
		Magic:                field[uint8](b, 0x26),
		MagicDefense:         uint16(field[uint8](b, 0x27)) * 2,
		AP:                   field[uint16](b, 0x9E),
		BackDamageMultiplier: field[uint8](b, 0xA2) / 8,
		Exp:                  field[uint32](b, 0xA8),
		Gil:                  field[uint32](b, 0xAC),
		StatusImmunities:     field[uint32](b, 0xB0),
	}
	for i := 0; i < 8; i++ {
		e.Elements = append(e.Elements, types.Elemental{
			Element: types.ElementType(field[uint8](b, 0x28+i)),
			Effect:  types.ElementEffect(field[uint8](b, 0x30+i)),
		})
	}
	morphID := field[uint16](b, 0xA0)
	if b.err != nil {
		return nil, b.err
	}

	itemNames, err := ReadItemNames(ff7, t)
	if err != nil {
		return nil, err
	}
	itemName := func(id uint16) (string, error) {
		if int(id) >= len(itemNames) {
			return "", fmt.Errorf("item %d of %d: %w", id, len(itemNames), ErrIndexOutOfRange)
		}
		return itemNames[id], nil
	}

	e.Items = []types.LootItem{}
	for i := 0; i < 4; i++ {
		rate := field[uint8](b, 0x88+i)
		itemID := field[uint16](b, 0x8C+i*2)
		if itemID == noItem {
			break
		}
		name, err := itemName(itemID)
		if err != nil {
			return nil, err
		}
		loot := types.LootItem{Name: name, Type: types.Drop, Rate: rate % 128}
		if rate >= 128 {
			loot.Type = types.Steal
		}
		e.Items = append(e.Items, loot)
	}

	if morphID != noItem {
		name, err := itemName(morphID)
		if err != nil {
			return nil, err
		}
		e.Morph = &name
	}
	return e, nil
}
