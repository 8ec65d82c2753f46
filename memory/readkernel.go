package memory

import (
	"fmt"

	"FF7Ultima/addresses"
	"FF7Ultima/utils"
)

// KernelResolver finds the start of a kernel text section in the target.
type KernelResolver interface {
	SectionBase(ff7 *utils.ClassMemory, id uint32) (uint32, error)
}

// DirectResolver is used when the texts are loaded at a fixed base, with a
// table of 2-byte section offsets next to it.
type DirectResolver struct {
	TextsBase      uint32
	SectionOffsets uint32
}

func (r DirectResolver) SectionBase(ff7 *utils.ClassMemory, id uint32) (uint32, error) {
	off, err := utils.ReadAndAssert[uint16](ff7, r.SectionOffsets+2*id)
	if err != nil {
		return 0, err
	}
	return r.TextsBase + uint32(off), nil
}

// LegacyResolver walks from the call site of the kernel loader to the
// section pointer table it fills.
type LegacyResolver struct {
	ReadFnCall uint32
}

func (r LegacyResolver) SectionBase(ff7 *utils.ClassMemory, id uint32) (uint32, error) {
	fn, err := followRelativeCall(ff7, r.ReadFnCall)
	if err != nil {
		return 0, err
	}
	table, err := utils.ReadAndAssert[uint32](ff7, fn+0x1B)
	if err != nil {
		return 0, err
	}
	return utils.ReadAndAssert[uint32](ff7, table+4*id)
}

// followRelativeCall resolves the target of the rel32 operand at addr.
// The displacement counts from the end of the operand and wraps.
func followRelativeCall(ff7 *utils.ClassMemory, addr uint32) (uint32, error) {
	rel, err := utils.ReadAndAssert[uint32](ff7, addr)
	if err != nil {
		return 0, err
	}
	return rel + addr + 4, nil
}

// SelectResolver picks the strategy from the word at KernelTextsBase: zero
// means the texts were never copied there.
func SelectResolver(ff7 *utils.ClassMemory, t *addresses.Table) (KernelResolver, error) {
	flag, err := utils.ReadAndAssert[uint32](ff7, t.KernelTextsBase)
	if err != nil {
		return nil, err
	}
	if flag == 0 {
		return LegacyResolver{ReadFnCall: t.KernelReadFnCall}, nil
	}
	return DirectResolver{TextsBase: t.KernelTextsBase, SectionOffsets: t.KernelSectionOffsets}, nil
}

// ReadKernelSection reads count names from section id. Each entry is a
// 2-byte offset relative to the section start. An unreadable name becomes
// "???"; an unreadable offset fails the whole section.
func ReadKernelSection(ff7 *utils.ClassMemory, r KernelResolver, id, count uint32) ([]string, error) {
	base, err := r.SectionBase(ff7, id)
	if err != nil {
		return nil, fmt.Errorf("kernel section %d: %w", id, err)
	}
	names := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		off, err := utils.ReadAndAssert[uint16](ff7, base+i*2)
		if err != nil {
			return nil, fmt.Errorf("kernel section %d entry %d: %w", id, i, err)
		}
		names = append(names, readNameOr(ff7, base+uint32(off), unknownName))
	}
	return names, nil
}

type kernelSection struct {
	id, count uint32
}

var (
	commandSections = []kernelSection{{8, 32}}
	attackSections  = []kernelSection{{9, 128}}
	// items, weapons, armor, accessories
	itemSections    = []kernelSection{{10, 128}, {11, 128}, {12, 32}, {13, 32}}
	materiaSections = []kernelSection{{14, 96}}
	keyItemSections = []kernelSection{{15, 64}}
)

func readCatalog(ff7 *utils.ClassMemory, t *addresses.Table, sections []kernelSection) ([]string, error) {
	r, err := SelectResolver(ff7, t)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, s := range sections {
		part, err := ReadKernelSection(ff7, r, s.id, s.count)
		if err != nil {
			return nil, err
		}
		names = append(names, part...)
	}
	return names, nil
}

// ReadItemNames returns the 320 names of items, weapons, armor and
// accessories in item id order.
func ReadItemNames(ff7 *utils.ClassMemory, t *addresses.Table) ([]string, error) {
	return readCatalog(ff7, t, itemSections)
}

func ReadMateriaNames(ff7 *utils.ClassMemory, t *addresses.Table) ([]string, error) {
	return readCatalog(ff7, t, materiaSections)
}

func ReadKeyItemNames(ff7 *utils.ClassMemory, t *addresses.Table) ([]string, error) {
	return readCatalog(ff7, t, keyItemSections)
}

func ReadCommandNames(ff7 *utils.ClassMemory, t *addresses.Table) ([]string, error) {
	return readCatalog(ff7, t, commandSections)
}

func ReadAttackNames(ff7 *utils.ClassMemory, t *addresses.Table) ([]string, error) {
	return readCatalog(ff7, t, attackSections)
}
