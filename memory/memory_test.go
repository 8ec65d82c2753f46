package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"FF7Ultima/addresses"
	"FF7Ultima/ff7text"
	"FF7Ultima/types"
	"FF7Ultima/utils"
	"FF7Ultima/utils/memtest"

	"github.com/google/go-cmp/cmp"
)

func setup(t *testing.T) (*memtest.Process, *utils.ClassMemory, *addresses.Table) {
	t.Helper()
	tbl, err := addresses.ForBuild(addresses.DefaultBuild)
	if err != nil {
		t.Fatal(err)
	}
	proc := memtest.New()
	return proc, proc.Memory(memtest.Live), tbl
}

func pokeName(t *testing.T, proc *memtest.Process, addr uint32, name string) {
	t.Helper()
	enc, err := ff7text.Encode(name)
	if err != nil {
		t.Fatal(err)
	}
	proc.Poke(addr, enc...)
}

// pokeSection lays out a kernel text section: a table of 2-byte offsets
// followed by the encoded names.
func pokeSection(t *testing.T, proc *memtest.Process, base uint32, names []string) {
	t.Helper()
	cursor := uint32(len(names) * 2)
	for i, n := range names {
		enc, err := ff7text.Encode(n)
		if err != nil {
			t.Fatal(err)
		}
		proc.PokeU16(base+uint32(i*2), uint16(cursor))
		proc.Poke(base+cursor, enc...)
		cursor += uint32(len(enc))
	}
}

func catalog(prefix string, from, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", prefix, from+i)
	}
	return out
}

// pokeDirectKernel stores every section at a fixed base, as the game does
// when its texts are already loaded.
func pokeDirectKernel(t *testing.T, proc *memtest.Process, tbl *addresses.Table) {
	proc.PokeU32(tbl.KernelTextsBase, 1)
	next := 0
	for _, s := range itemSections {
		off := uint16((s.id - 7) * 0x1000)
		proc.PokeU16(tbl.KernelSectionOffsets+2*s.id, off)
		pokeSection(t, proc, tbl.KernelTextsBase+uint32(off), catalog("Item", next, int(s.count)))
		next += int(s.count)
	}
	off := uint16((14 - 7) * 0x1000)
	proc.PokeU16(tbl.KernelSectionOffsets+2*14, off)
	pokeSection(t, proc, tbl.KernelTextsBase+uint32(off), catalog("Materia", 0, 96))
}

func TestReadName(t *testing.T) {
	proc, ff7, _ := setup(t)
	pokeName(t, proc, 0x800000, "Cloud")
	proc.Poke(0x800100, 0x21, 0xFE, 0xFF)

	if name, err := ReadName(ff7, 0x800000); err != nil || name != "Cloud" {
		t.Errorf("Expected Cloud, got %q (%v)", name, err)
	}
	if name, err := ReadName(ff7, 0x800100); err != nil || name != string([]byte{0x21, 0xFE}) {
		t.Errorf("Expected raw bytes on decode failure, got %q (%v)", name, err)
	}

	proc.Fail(0x800205)
	if _, err := ReadName(ff7, 0x800200); err == nil {
		t.Error("Expected read failure to propagate")
	}
}

func TestReadNameStopsAtTerminator(t *testing.T) {
	proc, ff7, tbl := setup(t)
	proc.Poke(0x800000, 0x2D, 0x30, ff7text.End)
	proc.Fail(0x800005)

	if name, err := ReadName(ff7, 0x800000); err != nil || name != "MP" {
		t.Errorf("Expected MP, got %q (%v)", name, err)
	}

	proc.Poke(tbl.PartyMemberIDs, 0, 1, 2)
	for i := uint32(0); i < 3; i++ {
		pokeName(t, proc, tbl.PartyMemberNames+i*charRecordLength, "Cloud")
	}
	proc.Fail(tbl.PartyMemberNames + 2*charRecordLength + 20)

	allies, err := ReadBattleAllies(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if allies[2].Name != "Cloud" {
		t.Errorf("Expected Cloud next to unreadable memory, got %q", allies[2].Name)
	}
}

func TestReadBasicData(t *testing.T) {
	proc, ff7, tbl := setup(t)
	proc.PokeU16(tbl.CurrentModule, uint16(types.ModuleField))
	proc.PokeU32(tbl.Gil, 123456)
	proc.PokeF64(tbl.FieldFPS, 30)
	proc.PokeU32(tbl.FieldBattleCheck, types.MaxBattlesCode)
	proc.PokeU16(tbl.InstantATBCheck, types.InstantATBCode)
	proc.Poke(tbl.BattleExpCalc+8, 2)
	proc.Poke(tbl.BattleAPCalc+2, 3)
	proc.Poke(tbl.PartyMemberIDs, 0, 3, 2)
	proc.Poke(tbl.KeyItems, 0xFF, 0, 0, 0, 0, 0, 0, 0x01)

	b, err := ReadBasicData(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if b.Module() != types.ModuleField || b.Gil != 123456 || b.FieldFPS != 30 {
		t.Errorf("Unexpected basic data: module %v gil %d fps %v", b.Module(), b.Gil, b.FieldFPS)
	}
	if b.ExpMultiplier != 2 || b.APMultiplier != 3 {
		t.Errorf("Expected multipliers 2 and 3, got %d and %d", b.ExpMultiplier, b.APMultiplier)
	}
	if !b.MaxBattlesEnabled() || !b.InstantATBEnabled() || !b.BattleSwirlDisabled() {
		t.Error("Unexpected derived flags")
	}
	if diff := cmp.Diff([]uint8{0, 3, 2}, b.PartyMemberIDs); diff != "" {
		t.Errorf("party ids (-want +got):\n%s", diff)
	}
	if len(b.KeyItems) != 8 || !b.HasKeyItem(56) {
		t.Errorf("Unexpected key items %v", b.KeyItems)
	}
}

func TestReadBasicDataFailsWhole(t *testing.T) {
	proc, ff7, tbl := setup(t)
	proc.Fail(tbl.Gil)

	b, err := ReadBasicData(ff7, tbl)
	var rerr *utils.ReadError
	if !errors.As(err, &rerr) || rerr.Address != tbl.Gil {
		t.Errorf("Expected ReadError at gil, got %v", err)
	}
	if b != nil {
		t.Error("Expected no partial record")
	}
}

func TestReadBasicDataWithoutProcess(t *testing.T) {
	tbl, _ := addresses.ForBuild(addresses.DefaultBuild)
	proc := memtest.New()
	_, err := ReadBasicData(proc.Memory(memtest.Target{}), tbl)
	if !errors.Is(err, utils.ErrProcessNotFound) {
		t.Errorf("Expected ErrProcessNotFound, got %v", err)
	}
}

func TestReadFieldModels(t *testing.T) {
	proc, ff7, tbl := setup(t)
	proc.Poke(tbl.FieldNumModels, 2)

	models, err := ReadFieldModels(ff7, tbl)
	if err != nil || len(models) != 0 {
		t.Fatalf("Expected empty list for null pointer, got %v (%v)", models, err)
	}

	proc.PokeU32(tbl.FieldModelsPtr, 0x100000)
	proc.PokeI32(0x100000+4, -100)
	proc.PokeI32(0x100000+8, 200)
	proc.PokeI32(0x100000+0xC, 5)
	proc.Poke(0x100000+0x1C, 64)
	proc.PokeI32(0x100000+400+0xC, -10)

	models, err = ReadFieldModels(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	want := []types.FieldModel{
		{X: -100, Y: 200, Z: 15, Direction: 64},
		{Z: 0},
	}
	if diff := cmp.Diff(want, models); diff != "" {
		t.Errorf("field models (-want +got):\n%s", diff)
	}

	proc.Fail(0x100000 + 400 + 8)
	if _, err := ReadFieldModels(ff7, tbl); err == nil {
		t.Error("Expected failure inside the second model to propagate")
	}
}

func TestReadFieldData(t *testing.T) {
	proc, ff7, tbl := setup(t)
	proc.PokeU16(tbl.FieldID, 117)
	proc.Poke(tbl.FieldName, []byte("md1stin")...)

	fd, err := ReadFieldData(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if fd.FieldID != 117 || len(fd.FieldModelNames) != 0 {
		t.Errorf("Unexpected field data without a loaded file: %+v", fd)
	}
	if utils.ReadNullTerminatedString(fd.FieldName) != "md1stin" {
		t.Errorf("Expected md1stin, got %q", fd.FieldName)
	}

	const data = 0x900000
	proc.PokeU32(tbl.FieldDataPtr, data)
	proc.PokeU32(data+0x0E, 0x100)
	section3 := uint32(data + 0x100 + 4)
	proc.PokeU16(section3+2, 2)
	models := section3 + 6
	proc.PokeU16(models, 4)
	proc.Poke(models+2, []byte("aaaa")...)
	proc.PokeU16(models+4+16, 1)
	proc.PokeU16(models+52, 6)
	proc.PokeU16(models+62, 3)
	proc.Poke(models+64, []byte("bbb")...)

	fd, err = ReadFieldData(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if fd.FieldModelCount != 2 {
		t.Errorf("Expected 2 models, got %d", fd.FieldModelCount)
	}
	if diff := cmp.Diff([]string{"aaaa", "bbb"}, fd.FieldModelNames); diff != "" {
		t.Errorf("model names (-want +got):\n%s", diff)
	}
}

func TestReadBattleAllies(t *testing.T) {
	proc, ff7, tbl := setup(t)
	proc.Poke(tbl.PartyMemberIDs, 0, 1, 2)
	pokeName(t, proc, tbl.PartyMemberNames, "Cloud")
	proc.Fail(tbl.PartyMemberNames + charRecordLength + 3)
	pokeName(t, proc, tbl.PartyMemberNames+2*charRecordLength, "Tifa")

	base := tbl.BattleCharBase + 2*battleCharLength
	proc.PokeU32(base, 0x10)
	proc.Poke(base+5, 8)
	proc.PokeU16(base+0x28, 50)
	proc.PokeU16(base+0x2A, 60)
	proc.PokeU32(base+0x2C, 900)
	proc.PokeU32(base+0x30, 1000)
	proc.PokeU16(tbl.BattleATBBase+2*battleATBLength+2, 0x8000)
	proc.PokeU16(tbl.BattleCharArray+2*battleArrayLength+8, 255)

	allies, err := ReadBattleAllies(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if len(allies) != 3 {
		t.Fatalf("Expected 3 allies, got %d", len(allies))
	}
	if allies[0].Name != "Cloud" || allies[1].Name != "???" {
		t.Errorf("Unexpected names %q %q", allies[0].Name, allies[1].Name)
	}
	want := types.BattleChar{
		Name: "Tifa", Status: 0x10, Flags: 8, MP: 50, MaxMP: 60,
		HP: 900, MaxHP: 1000, ATB: 0x8000, Limit: 255,
	}
	if diff := cmp.Diff(want, allies[2]); diff != "" {
		t.Errorf("third ally (-want +got):\n%s", diff)
	}
}

func TestReadBattleEnemies(t *testing.T) {
	proc, ff7, tbl := setup(t)
	proc.Fail(tbl.EnemyObjBase)
	proc.Poke(tbl.EnemyObjBase+enemyRecordLength, 3)
	pokeName(t, proc, tbl.EnemyDataBase, "Guard Hound")
	pokeName(t, proc, tbl.EnemyDataBase+3*enemyDataLength, "MP")
	proc.PokeU32(tbl.BattleCharBase+5*battleCharLength+0x2C, 30)

	enemies, err := ReadBattleEnemies(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if len(enemies) != 6 {
		t.Fatalf("Expected 6 enemy slots, got %d", len(enemies))
	}
	if enemies[0].SceneID != 0 || enemies[0].Name != "Guard Hound" {
		t.Errorf("Expected unreadable scene index to fall back to 0, got %+v", enemies[0])
	}
	if enemies[1].SceneID != 3 || enemies[1].Name != "MP" || enemies[1].HP != 30 {
		t.Errorf("Unexpected second enemy %+v", enemies[1])
	}
	for _, e := range enemies {
		if e.Limit != 0 {
			t.Errorf("Expected enemy limit 0, got %d", e.Limit)
		}
	}
}

func pokeEnemy(proc *memtest.Process, tbl *addresses.Table, id uint32, rates [4]uint8, items [4]uint16, morph uint16) uint32 {
	base := tbl.EnemyDataBase + id*enemyDataLength
	proc.Poke(base+0x20, 12, 40, 3, 5, 20, 10, 9, 7)
	for i := uint32(0); i < 8; i++ {
		proc.Poke(base+0x28+i, uint8(i))
		proc.Poke(base+0x30+i, 0xFF)
	}
	proc.Poke(base+0x88, rates[:]...)
	for i, it := range items {
		proc.PokeU16(base+0x8C+uint32(i*2), it)
	}
	proc.PokeU16(base+0x9E, 16)
	proc.PokeU16(base+0xA0, morph)
	proc.Poke(base+0xA2, 16)
	proc.PokeU32(base+0xA8, 45)
	proc.PokeU32(base+0xAC, 70)
	proc.PokeU32(base+0xB0, 0x200)
	return base
}

func TestReadEnemyData(t *testing.T) {
	proc, ff7, tbl := setup(t)
	pokeDirectKernel(t, proc, tbl)
	pokeEnemy(proc, tbl, 1, [4]uint8{130, 50, 0, 0}, [4]uint16{5, 300, noItem, 7}, noItem)

	e, err := ReadEnemyData(ff7, tbl, 1)
	if err != nil {
		t.Fatal(err)
	}
	wantItems := []types.LootItem{
		{Name: "Item 5", Type: types.Steal, Rate: 2},
		{Name: "Item 300", Type: types.Drop, Rate: 50},
	}
	if diff := cmp.Diff(wantItems, e.Items); diff != "" {
		t.Errorf("loot (-want +got):\n%s", diff)
	}
	if e.Morph != nil {
		t.Errorf("Expected no morph, got %q", *e.Morph)
	}
	if e.Level != 12 || e.Speed != 40 || e.Defense != 20 || e.MagicDefense != 14 || e.Magic != 9 {
		t.Errorf("Unexpected stats %+v", e)
	}
	if e.BackDamageMultiplier != 2 || e.AP != 16 || e.Exp != 45 || e.Gil != 70 || e.StatusImmunities != 0x200 {
		t.Errorf("Unexpected rewards %+v", e)
	}
	if len(e.Elements) != 8 || e.Elements[8-1].Element != types.ElementWind || e.Elements[0].Effect != types.EffectNothing {
		t.Errorf("Unexpected elements %+v", e.Elements)
	}
}

func TestReadEnemyDataMorph(t *testing.T) {
	proc, ff7, tbl := setup(t)
	pokeDirectKernel(t, proc, tbl)
	pokeEnemy(proc, tbl, 2, [4]uint8{}, [4]uint16{noItem, noItem, noItem, noItem}, 12)

	e, err := ReadEnemyData(ff7, tbl, 2)
	if err != nil {
		t.Fatal(err)
	}
	if e.Morph == nil || *e.Morph != "Item 12" {
		t.Errorf("Expected morph Item 12, got %v", e.Morph)
	}
	if len(e.Items) != 0 {
		t.Errorf("Expected no loot, got %v", e.Items)
	}
}

func TestReadEnemyDataItemOutOfRange(t *testing.T) {
	proc, ff7, tbl := setup(t)
	pokeDirectKernel(t, proc, tbl)
	pokeEnemy(proc, tbl, 3, [4]uint8{1}, [4]uint16{320, noItem}, noItem)

	if _, err := ReadEnemyData(ff7, tbl, 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestKernelDirectResolution(t *testing.T) {
	proc, ff7, tbl := setup(t)
	pokeDirectKernel(t, proc, tbl)

	r, err := SelectResolver(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(DirectResolver); !ok {
		t.Fatalf("Expected DirectResolver, got %T", r)
	}

	items, err := ReadItemNames(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 320 || items[0] != "Item 0" || items[128] != "Item 128" || items[319] != "Item 319" {
		t.Errorf("Unexpected item catalog: %d entries, %q %q", len(items), items[0], items[len(items)-1])
	}

	materia, err := ReadMateriaNames(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(catalog("Materia", 0, 96), materia); diff != "" {
		t.Errorf("materia (-want +got):\n%s", diff)
	}
}

func TestKernelCommandAndAttackNames(t *testing.T) {
	proc, ff7, tbl := setup(t)
	proc.PokeU32(tbl.KernelTextsBase, 1)
	proc.PokeU16(tbl.KernelSectionOffsets+2*8, 0x1000)
	pokeSection(t, proc, tbl.KernelTextsBase+0x1000, catalog("Command", 0, 32))
	proc.PokeU16(tbl.KernelSectionOffsets+2*9, 0x2000)
	pokeSection(t, proc, tbl.KernelTextsBase+0x2000, catalog("Attack", 0, 128))

	commands, err := ReadCommandNames(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(catalog("Command", 0, 32), commands); diff != "" {
		t.Errorf("commands (-want +got):\n%s", diff)
	}

	attacks, err := ReadAttackNames(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(catalog("Attack", 0, 128), attacks); diff != "" {
		t.Errorf("attacks (-want +got):\n%s", diff)
	}
}

func TestKernelLegacyResolution(t *testing.T) {
	proc, ff7, tbl := setup(t)
	const fn, table = 0x401000, 0x600000
	proc.PokeU32(tbl.KernelReadFnCall, fn-tbl.KernelReadFnCall-4)
	proc.PokeU32(fn+0x1B, table)
	proc.PokeU32(table+4*15, 0x700000)
	pokeSection(t, proc, 0x700000, catalog("Key", 0, 64))

	r, err := SelectResolver(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.(LegacyResolver); !ok {
		t.Fatalf("Expected LegacyResolver, got %T", r)
	}

	keys, err := ReadKeyItemNames(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(catalog("Key", 0, 64), keys); diff != "" {
		t.Errorf("key items (-want +got):\n%s", diff)
	}
}

func TestKernelSectionPlaceholder(t *testing.T) {
	proc, ff7, _ := setup(t)
	r := DirectResolver{TextsBase: 0x300000, SectionOffsets: 0x310000}
	proc.PokeU16(0x310000+2*8, 0x100)
	proc.PokeU16(0x300100, 0x10)
	proc.PokeU16(0x300102, 0x100)
	pokeName(t, proc, 0x300110, "Attack")
	pokeName(t, proc, 0x300200, "Magic")
	proc.Fail(0x300201)

	names, err := ReadKernelSection(ff7, r, 8, 2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Attack", "???"}, names); diff != "" {
		t.Errorf("section (-want +got):\n%s", diff)
	}

	proc.Fail(0x300100 + 2)
	if _, err := ReadKernelSection(ff7, r, 8, 2); err == nil {
		t.Error("Expected an unreadable offset to fail the section")
	}
}

func TestReadWorldCurrentModel(t *testing.T) {
	proc, ff7, tbl := setup(t)

	m, err := ReadWorldCurrentModel(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(types.WorldModel{LocationID: types.NoLocation}, *m); diff != "" {
		t.Errorf("null object sentinel (-want +got):\n%s", diff)
	}

	const obj, tri = 0xA00000, 0xA10000
	proc.PokeU32(tbl.WorldCurrentObjPtr, obj)
	proc.PokeU32(obj+0xC, 1000)
	proc.PokeI32(obj+0x10, -50)
	proc.PokeU32(obj+0x14, 7)
	proc.PokeU16(obj+0x40, 0xFFA6)
	proc.Poke(obj+0x4A, 3, 0x80)
	proc.Poke(obj+0x50, 4)

	m, err = ReadWorldCurrentModel(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if m.LocationID != types.NoLocation {
		t.Errorf("Expected NoLocation without a triangle, got %d", m.LocationID)
	}

	proc.PokeU32(obj+0x60, tri)
	proc.Poke(tri+0xB, 0x97)
	m, err = ReadWorldCurrentModel(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	want := types.WorldModel{
		X: 1000, Y: -50, Z: 7, Direction: -90, ModelID: 4,
		WalkmeshType: 3, LocationID: 11, ChocoboTracks: true,
	}
	if diff := cmp.Diff(want, *m); diff != "" {
		t.Errorf("world model (-want +got):\n%s", diff)
	}
}

func TestReadWorldModels(t *testing.T) {
	proc, ff7, tbl := setup(t)
	for _, slot := range []uint32{0, 2} {
		base := tbl.WorldModels + slot*worldModelLength
		proc.PokeU32(base+188, 1)
		proc.PokeU32(base+0xC, 100+slot)
		proc.Poke(base+0x50, uint8(slot+1))
	}

	models, err := ReadWorldModels(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	want := []types.WorldModel{
		{Index: 0, X: 100, ModelID: 1},
		{Index: 2, X: 102, ModelID: 3},
	}
	if diff := cmp.Diff(want, models); diff != "" {
		t.Errorf("world models (-want +got):\n%s", diff)
	}
}

func TestChocoboRatingForScene(t *testing.T) {
	proc, ff7, tbl := setup(t)
	entry := tbl.WorldEncWBinData + 0x20 + 3*4
	proc.Poke(entry, 42, 0, 5)

	if r, err := ChocoboRatingForScene(ff7, tbl, 42); err != nil || r != 5 {
		t.Errorf("Expected rating 5, got %d (%v)", r, err)
	}
	if r, err := ChocoboRatingForScene(ff7, tbl, 43); err != nil || r != 0 {
		t.Errorf("Expected rating 0 for an absent scene, got %d (%v)", r, err)
	}
}

func TestReadPartyMembers(t *testing.T) {
	proc, ff7, tbl := setup(t)
	for i := uint32(0); i < partySize; i++ {
		pokeName(t, proc, tbl.CharacterRecords+i*charRecordLength+0x10, fmt.Sprintf("Member %d", i))
	}
	base := tbl.CharacterRecords + charRecordLength
	proc.Poke(base, 1)
	proc.Poke(base+0xF, 2)
	proc.Poke(base+0x1F, 4)
	proc.PokeU16(base+0x2C, 300)
	proc.PokeU16(base+0x30, 20)
	proc.PokeU16(base+0x38, 400)
	proc.PokeU16(base+0x3A, 30)
	proc.PokeU32(base+0x3C, 9999)

	members, err := ReadPartyMembers(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != partySize {
		t.Fatalf("Expected %d members, got %d", partySize, len(members))
	}
	want := types.PartyMember{ID: 1, Name: "Member 1", Status: 4, HP: 300, MaxHP: 400, MP: 20, MaxMP: 30, Limit: 2, Exp: 9999}
	if diff := cmp.Diff(want, members[1]); diff != "" {
		t.Errorf("party member (-want +got):\n%s", diff)
	}
}

func TestReadGameData(t *testing.T) {
	proc, ff7, tbl := setup(t)
	proc.PokeU16(tbl.CurrentModule, uint16(types.ModuleWorld))
	for i := uint32(0); i < partySize; i++ {
		pokeName(t, proc, tbl.CharacterRecords+i*charRecordLength+0x10, "Cloud")
	}

	gd, err := ReadGameData(ff7, tbl)
	if err != nil {
		t.Fatal(err)
	}
	if gd.Basic.Module() != types.ModuleWorld || len(gd.PartyMembers) != partySize || len(gd.BattleEnemies) != 6 {
		t.Errorf("Unexpected snapshot %+v", gd.Basic)
	}
	if in, err := IsInGame(ff7, tbl); err != nil || !in {
		t.Errorf("Expected in game, got %v (%v)", in, err)
	}

	proc.Fail(tbl.WorldModels + 188)
	if _, err := ReadGameData(ff7, tbl); err == nil {
		t.Error("Expected snapshot to fail with any decoder")
	}
}

func TestPollStopsWithContext(t *testing.T) {
	proc, ff7, tbl := setup(t)
	proc.PokeU16(tbl.CurrentModule, uint16(types.ModuleField))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := 0
	Poll(ctx, ff7, tbl, time.Millisecond, func(gd *types.GameData, err error) {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		} else if gd.Basic.Module() != types.ModuleField {
			t.Errorf("Expected Field, got %v", gd.Basic.Module())
		}
		calls++
		if calls == 2 {
			cancel()
		}
	})
	if calls != 2 {
		t.Errorf("Expected 2 snapshots before cancel, got %d", calls)
	}
}
