// Package addresses holds the fixed virtual addresses of each supported
// game build.
package addresses

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"
)

// DefaultBuild is the build used when none is configured.
const DefaultBuild = "steam"

// Table maps every symbolic location the decoders and callers use to its
// address. The yaml tag is the symbolic name.
type Table struct {
	CurrentModule          uint32 `yaml:"current_module"`
	GameMoment             uint32 `yaml:"game_moment"`
	FieldID                uint32 `yaml:"field_id"`
	FieldFPS               uint32 `yaml:"field_fps"`
	BattleFPS              uint32 `yaml:"battle_fps"`
	WorldFPS               uint32 `yaml:"world_fps"`
	InGameTime             uint32 `yaml:"in_game_time"`
	DiscID                 uint32 `yaml:"disc_id"`
	MenuVisibility         uint32 `yaml:"menu_visibility"`
	MenuLocks              uint32 `yaml:"menu_locks"`
	FieldMovementDisabled  uint32 `yaml:"field_movement_disabled"`
	FieldMenuAccessEnabled uint32 `yaml:"field_menu_access_enabled"`
	PartyLockingMask       uint32 `yaml:"party_locking_mask"`
	PartyVisibilityMask    uint32 `yaml:"party_visibility_mask"`
	Gil                    uint32 `yaml:"gil"`
	GP                     uint32 `yaml:"gp"`
	BattleCount            uint32 `yaml:"battle_count"`
	BattleEscapeCount      uint32 `yaml:"battle_escape_count"`
	FieldBattleCheck       uint32 `yaml:"field_battle_check"`
	GameObjPtr             uint32 `yaml:"game_obj_ptr"`
	BattleSwirlCheck       uint32 `yaml:"battle_swirl_check"`
	InstantATBCheck        uint32 `yaml:"instant_atb_check"`
	UnfocusPatchCheck      uint32 `yaml:"unfocus_patch_check"`
	FFNxCheck              uint32 `yaml:"ffnx_check"`
	StepID                 uint32 `yaml:"step_id"`
	StepFraction           uint32 `yaml:"step_fraction"`
	DangerValue            uint32 `yaml:"danger_value"`
	BattleID               uint32 `yaml:"battle_id"`
	BattleChocoboRating    uint32 `yaml:"battle_chocobo_rating"`
	KeyItems               uint32 `yaml:"key_items"`

	FieldNumModels uint32 `yaml:"field_num_models"`
	FieldModelsPtr uint32 `yaml:"field_models_ptr"`
	FieldDataPtr   uint32 `yaml:"field_data_ptr"`
	FieldName      uint32 `yaml:"field_name"`

	BattleCharBase   uint32 `yaml:"battle_char_base"`
	BattleATBBase    uint32 `yaml:"battle_atb_base"`
	BattleCharArray  uint32 `yaml:"battle_char_array"`
	AllyLimit        uint32 `yaml:"ally_limit"`
	PartyMemberIDs   uint32 `yaml:"party_member_ids"`
	PartyMemberNames uint32 `yaml:"party_member_names"`
	CharacterRecords uint32 `yaml:"character_records"`
	EnemyObjBase     uint32 `yaml:"enemy_obj_base"`
	EnemyDataBase    uint32 `yaml:"enemy_data_base"`

	WorldCurrentObjPtr   uint32 `yaml:"world_current_obj_ptr"`
	WorldModels          uint32 `yaml:"world_models"`
	WorldEncWBinData     uint32 `yaml:"world_enc_w_bin_data"`
	WorldZoomTiltEnabled uint32 `yaml:"world_zoom_tilt_enabled"`
	WorldZoom            uint32 `yaml:"world_zoom"`
	WorldTilt            uint32 `yaml:"world_tilt"`
	WorldSpeedMultiplier uint32 `yaml:"world_speed_multiplier"`

	ItemNamesBase        uint32 `yaml:"item_names_base"`
	KernelTextsBase      uint32 `yaml:"kernel_texts_base"`
	KernelSectionOffsets uint32 `yaml:"kernel_section_offsets"`
	KernelReadFnCall     uint32 `yaml:"kernel_read_fn_call"`

	CodeCave            uint32 `yaml:"code_cave"`
	BattleInitCharsFn   uint32 `yaml:"battle_init_chars_fn"`
	BattleInitCharsCall uint32 `yaml:"battle_init_chars_call"`
	BattleExpCalc       uint32 `yaml:"battle_exp_calc"`
	BattleAPCalc        uint32 `yaml:"battle_ap_calc"`
	MenuAlwaysEnabled   uint32 `yaml:"menu_always_enabled"`

	// Locations only callers that patch the game use.
	FieldObjPtr         uint32 `yaml:"field_obj_ptr"`
	FieldBattleDisable  uint32 `yaml:"field_battle_disable"`
	WorldBattleDisable  uint32 `yaml:"world_battle_disable"`
	WorldBattleEnable   uint32 `yaml:"world_battle_enable"`
	BattleMode          uint32 `yaml:"battle_mode"`
	BattleEndCheck      uint32 `yaml:"battle_end_check"`
	SoundBufferFocus    uint32 `yaml:"sound_buffer_focus"`
	MovieIsPlaying      uint32 `yaml:"movie_is_playing"`
	MovieSkip           uint32 `yaml:"movie_skip"`
	BattleModuleField   uint32 `yaml:"battle_module_field"`
	BattleIDWorld       uint32 `yaml:"battle_id_world"`
	WorldBattleFlag1    uint32 `yaml:"world_battle_flag1"`
	WorldBattleFlag2    uint32 `yaml:"world_battle_flag2"`
	WorldBattleFlag3    uint32 `yaml:"world_battle_flag3"`
	WorldBattleFlag4    uint32 `yaml:"world_battle_flag4"`
	BattleSwirlDisable1 uint32 `yaml:"battle_swirl_disable1"`
	BattleSwirlDisable2 uint32 `yaml:"battle_swirl_disable2"`
	InstantATBSet       uint32 `yaml:"instant_atb_set"`
	IntroSkip           uint32 `yaml:"intro_skip"`
}

// steam is the 1.02 English Steam release (ff7_en.exe).
var steam = Table{
	CurrentModule:          0xCBF9DC,
	GameMoment:             0xDC08DC,
	FieldID:                0xCC15D0,
	FieldFPS:               0xCFF890,
	BattleFPS:              0x9AB090,
	WorldFPS:               0xDE6938,
	InGameTime:             0xDC08B8,
	DiscID:                 0xDC0BDC,
	MenuVisibility:         0xDC08F8,
	MenuLocks:              0xDC08FA,
	FieldMovementDisabled:  0xCC0DBA,
	FieldMenuAccessEnabled: 0xCC0DBC,
	PartyLockingMask:       0xDC0DDC,
	PartyVisibilityMask:    0xDC0DDE,
	Gil:                    0xDC08B4,
	GP:                     0xDC0A26,
	BattleCount:            0xDC08F4,
	BattleEscapeCount:      0xDC08F6,
	FieldBattleCheck:       0x60B40A,
	GameObjPtr:             0xDB2BB8,
	BattleSwirlCheck:       0x4027E5,
	InstantATBCheck:        0x433ABD,
	UnfocusPatchCheck:      0x74A561,
	FFNxCheck:              0x41B965,
	StepID:                 0xCC165C,
	StepFraction:           0xCC1664,
	DangerValue:            0xCC1668,
	BattleID:               0x9AAD3C,
	BattleChocoboRating:    0xDC0CD8,
	KeyItems:               0xDC0A3C,

	FieldNumModels: 0xCFF73E,
	FieldModelsPtr: 0xCFF738,
	FieldDataPtr:   0xCFF594,
	FieldName:      0xCC1EF0,

	BattleCharBase:   0x9AB0DC,
	BattleATBBase:    0x9A8B12,
	BattleCharArray:  0x9A8DBA,
	AllyLimit:        0x9A8DC2,
	PartyMemberIDs:   0xDC0230,
	PartyMemberNames: 0xDBFD9C,
	CharacterRecords: 0xDBFD8C,
	EnemyObjBase:     0x9A8794,
	EnemyDataBase:    0x9A8E9C,

	WorldCurrentObjPtr:   0xE3A7D0,
	WorldModels:          0xE39BC8,
	WorldEncWBinData:     0xE2E9D8,
	WorldZoomTiltEnabled: 0xDE6A0C,
	WorldZoom:            0xDE6A10,
	WorldTilt:            0xDE6A14,
	WorldSpeedMultiplier: 0x74BCB5,

	ItemNamesBase:        0x9A5E54,
	KernelTextsBase:      0xDB9220,
	KernelSectionOffsets: 0x91E7C0,
	KernelReadFnCall:     0x419458,

	CodeCave:            0x41BE87,
	BattleInitCharsFn:   0x5CF650,
	BattleInitCharsCall: 0x437EFE,
	BattleExpCalc:       0x43153F,
	BattleAPCalc:        0x431576,
	MenuAlwaysEnabled:   0x6CA38C,

	FieldObjPtr:         0xCBF9D8,
	FieldBattleDisable:  0x60B40A,
	WorldBattleDisable:  0x7675F6,
	WorldBattleEnable:   0x767758,
	BattleMode:          0x9AAD64,
	BattleEndCheck:      0x9AB0C2,
	SoundBufferFocus:    0x74A561,
	MovieIsPlaying:      0x9A1010,
	MovieSkip:           0x9A1014,
	BattleModuleField:   0xCBF6B8,
	BattleIDWorld:       0xE3A88C,
	WorldBattleFlag1:    0xE2BBC8,
	WorldBattleFlag2:    0x969950,
	WorldBattleFlag3:    0xE3A884,
	WorldBattleFlag4:    0xE045E4,
	BattleSwirlDisable1: 0x402712,
	BattleSwirlDisable2: 0x4027E5,
	InstantATBSet:       0x433ABD,
	IntroSkip:           0xF4F448,
}

var builds = map[string]Table{
	DefaultBuild: steam,
}

// Builds lists the registered build names.
func Builds() []string {
	names := make([]string, 0, len(builds))
	for name := range builds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForBuild returns a copy of the table registered under name.
func ForBuild(name string) (*Table, error) {
	t, ok := builds[name]
	if !ok {
		return nil, fmt.Errorf("unknown game build %q (known: %v)", name, Builds())
	}
	return &t, nil
}

// overrideFile is the on-disk form read by Load.
type overrideFile struct {
	Base      string            `yaml:"base"`
	Addresses map[string]uint32 `yaml:"addresses"`
}

// Load reads a yaml file naming a base build and a set of address overrides:
//
//	base: steam
//	addresses:
//	  kernel_texts_base: 0xDB9220
//
// Unknown symbolic names are rejected.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading address file: %w", err)
	}
	return Parse(data)
}

// Parse is Load without the file read.
func Parse(data []byte) (*Table, error) {
	var f overrideFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("error decoding address file: %w", err)
	}
	if f.Base == "" {
		f.Base = DefaultBuild
	}
	t, err := ForBuild(f.Base)
	if err != nil {
		return nil, err
	}
	if len(f.Addresses) == 0 {
		return t, nil
	}
	raw, err := yaml.Marshal(f.Addresses)
	if err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalStrict(raw, t); err != nil {
		return nil, fmt.Errorf("error applying address overrides: %w", err)
	}
	return t, nil
}

// Map returns every symbolic name with its address.
func (t *Table) Map() map[string]uint32 {
	raw, err := yaml.Marshal(t)
	if err != nil {
		panic(fmt.Sprintf("addresses: marshal table: %v", err))
	}
	m := make(map[string]uint32)
	if err := yaml.Unmarshal(raw, &m); err != nil {
		panic(fmt.Sprintf("addresses: unmarshal table: %v", err))
	}
	return m
}

// Lookup returns the address registered under a symbolic name.
func (t *Table) Lookup(name string) (uint32, bool) {
	addr, ok := t.Map()[name]
	return addr, ok
}
