package memory

import (
	"bytes"

	"FF7Ultima/ff7text"
	"FF7Ultima/utils"
)

const (
	maxNameLength = 24
	unknownName   = "???"
)

// ReadName reads an encoded name of at most 24 bytes, ending at 0xFF. Bytes
// that do not decode are returned as they are. Only bytes up to the
// terminator need to be readable.
func ReadName(ff7 *utils.ClassMemory, addr uint32) (string, error) {
	buf, err := ff7.ReadRaw(addr, maxNameLength)
	if err != nil {
		buf, err = readNameBytes(ff7, addr)
		if err != nil {
			return "", err
		}
	}
	if i := bytes.IndexByte(buf, ff7text.End); i >= 0 {
		buf = buf[:i]
	}
	name, err := ff7text.Decode(buf)
	if err != nil {
		return string(buf), nil
	}
	return name, nil
}

// readNameBytes reads one byte at a time up to the terminator, for names
// that sit next to unreadable memory.
func readNameBytes(ff7 *utils.ClassMemory, addr uint32) ([]byte, error) {
	buf := make([]byte, 0, maxNameLength)
	for i := uint32(0); i < maxNameLength; i++ {
		c, err := utils.ReadAndAssert[uint8](ff7, addr+i)
		if err != nil {
			return nil, err
		}
		if c == ff7text.End {
			break
		}
		buf = append(buf, c)
	}
	return buf, nil
}

// readNameOr returns placeholder when the name cannot be read.
func readNameOr(ff7 *utils.ClassMemory, addr uint32, placeholder string) string {
	name, err := ReadName(ff7, addr)
	if err != nil {
		utils.Log.Debugf("name at 0x%X unreadable: %v", addr, err)
		return placeholder
	}
	return name
}
