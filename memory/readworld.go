package memory

import (
	"FF7Ultima/addresses"
	"FF7Ultima/types"
	"FF7Ultima/utils"
)

const (
	worldModelLength = 192
	worldModelSlots  = 16
	chocoboEntries   = 32
)

func parseWorldModel(b *block) types.WorldModel {
	return types.WorldModel{
		X:         field[uint32](b, 0xC),
		Y:         field[int32](b, 0x10),
		Z:         field[uint32](b, 0x14),
		Direction: field[int16](b, 0x40),
		ModelID:   field[uint8](b, 0x50),
	}
}

// ReadWorldCurrentModel reads the model the player controls on the world
// map. With no world object loaded it returns a zero model at NoLocation.
func ReadWorldCurrentModel(ff7 *utils.ClassMemory, t *addresses.Table) (*types.WorldModel, error) {
	ptr, err := utils.ReadAndAssert[uint32](ff7, t.WorldCurrentObjPtr)
	if err != nil {
		return nil, err
	}
	if ptr == 0 {
		return &types.WorldModel{LocationID: types.NoLocation}, nil
	}

	b := readBlock(ff7, ptr, 0x64)
	m := parseWorldModel(b)
	m.WalkmeshType = field[uint8](b, 0x4A)
	m.ChocoboTracks = field[uint8](b, 0x4B)&0x80 != 0
	trianglePtr := field[uint32](b, 0x60)
	if b.err != nil {
		return nil, b.err
	}

	m.LocationID = types.NoLocation
	if trianglePtr != 0 {
		loc, err := utils.ReadAndAssert[uint8](ff7, trianglePtr+0xB)
		if err != nil {
			return nil, err
		}
		m.LocationID = (loc & 0x7F) >> 1
	}
	return &m, nil
}

// ReadWorldModels reads the occupied world model slots.
func ReadWorldModels(ff7 *utils.ClassMemory, t *addresses.Table) ([]types.WorldModel, error) {
	models := []types.WorldModel{}
	for i := uint32(0); i < worldModelSlots; i++ {
		b := readBlock(ff7, t.WorldModels+i*worldModelLength, worldModelLength)
		if field[uint32](b, 188) == 0 {
			if b.err != nil {
				return nil, b.err
			}
			continue
		}
		m := parseWorldModel(b)
		if b.err != nil {
			return nil, b.err
		}
		m.Index = uint8(i)
		models = append(models, m)
	}
	return models, nil
}

// ChocoboRatingForScene looks scene up in the world encounter table and
// returns its chocobo rating, or 0 when the scene has none.
func ChocoboRatingForScene(ff7 *utils.ClassMemory, t *addresses.Table, scene uint8) (uint8, error) {
	b := readBlock(ff7, t.WorldEncWBinData+0x20, chocoboEntries*4)
	for i := 0; i < chocoboEntries; i++ {
		if field[uint8](b, i*4) == scene {
			rating := field[uint8](b, i*4+2)
			return rating, b.err
		}
	}
	return 0, b.err
}
