package memory

import (
	"unicode/utf8"

	"FF7Ultima/addresses"
	"FF7Ultima/types"
	"FF7Ultima/utils"
)

const (
	fieldModelLength = 400
	// the game stores field model Z 10 units low
	fieldModelZOffset = 10
)

// ReadFieldModels reads the models of the current field map. A null model
// pointer yields an empty list.
func ReadFieldModels(ff7 *utils.ClassMemory, t *addresses.Table) ([]types.FieldModel, error) {
	count, err := utils.ReadAndAssert[uint8](ff7, t.FieldNumModels)
	if err != nil {
		return nil, err
	}
	modelPtr, err := utils.ReadAndAssert[uint32](ff7, t.FieldModelsPtr)
	if err != nil {
		return nil, err
	}
	models := []types.FieldModel{}
	if modelPtr == 0 {
		return models, nil
	}

	for i := uint32(0); i < uint32(count); i++ {
		b := readBlock(ff7, modelPtr+i*fieldModelLength, 0x20)
		model := types.FieldModel{
			X:         field[int32](b, 0x4),
			Y:         field[int32](b, 0x8),
			Z:         field[int32](b, 0xC) + fieldModelZOffset,
			Direction: field[uint8](b, 0x1C),
		}
		if b.err != nil {
			return nil, b.err
		}
		models = append(models, model)
	}
	return models, nil
}

// ReadFieldData reads the current field id and name plus the model names
// listed in section 3 of the loaded field file.
func ReadFieldData(ff7 *utils.ClassMemory, t *addresses.Table) (*types.FieldData, error) {
	r := newFieldReader(ff7)
	fd := &types.FieldData{
		FieldID:         read[uint16](r, t.FieldID),
		FieldName:       r.raw(t.FieldName, 16),
		FieldModelNames: []string{},
	}
	dataPtr := read[uint32](r, t.FieldDataPtr)
	if r.err != nil {
		return nil, r.err
	}
	if dataPtr == 0 {
		return fd, nil
	}

	section3 := dataPtr + read[uint32](r, dataPtr+0x0E) + 4
	fd.FieldModelCount = read[uint16](r, section3+2)
	modelsAddr := section3 + 6

	offset := uint32(0)
	for i := uint16(0); i < fd.FieldModelCount && r.err == nil; i++ {
		nameSize := uint32(read[uint16](r, modelsAddr+offset))
		name := r.raw(modelsAddr+offset+2, int(nameSize))
		animations := read[uint16](r, modelsAddr+offset+nameSize+16)
		if utf8.Valid(name) {
			fd.FieldModelNames = append(fd.FieldModelNames, utils.ReadNullTerminatedString(name))
		} else {
			fd.FieldModelNames = append(fd.FieldModelNames, unknownName)
		}
		offset += nameSize + 48

		for j := uint16(0); j < animations && r.err == nil; j++ {
			offset += uint32(read[uint16](r, modelsAddr+offset)) + 4
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return fd, nil
}
