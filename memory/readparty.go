package memory

import (
	"FF7Ultima/addresses"
	"FF7Ultima/types"
	"FF7Ultima/utils"
)

const partySize = 9

// ReadPartyMembers reads the nine character records of the save map.
func ReadPartyMembers(ff7 *utils.ClassMemory, t *addresses.Table) ([]types.PartyMember, error) {
	members := make([]types.PartyMember, 0, partySize)
	for i := uint32(0); i < partySize; i++ {
		base := t.CharacterRecords + i*charRecordLength
		name, err := ReadName(ff7, base+0x10)
		if err != nil {
			return nil, err
		}

		b := readBlock(ff7, base, 0x40)
		member := types.PartyMember{
			ID:     field[uint8](b, 0x0),
			Name:   name,
			Limit:  field[uint8](b, 0xF),
			Status: field[uint8](b, 0x1F),
			HP:     field[uint16](b, 0x2C),
			MP:     field[uint16](b, 0x30),
			MaxHP:  field[uint16](b, 0x38),
			MaxMP:  field[uint16](b, 0x3A),
			Exp:    field[uint32](b, 0x3C),
		}
		if b.err != nil {
			return nil, b.err
		}
		members = append(members, member)
	}
	return members, nil
}
