// Package types holds the records decoded from the game's memory.
package types

// Module is the game subsystem currently running.
type Module uint16

const (
	ModuleNone        Module = 0
	ModuleField       Module = 1
	ModuleBattle      Module = 2
	ModuleWorld       Module = 3
	ModuleMenu        Module = 5
	ModuleHighway     Module = 6
	ModuleChocobo     Module = 7
	ModuleSnowboard   Module = 8
	ModuleCondor      Module = 9
	ModuleSubmarine   Module = 10
	ModuleJet         Module = 11
	ModuleChangeDisc  Module = 12
	ModuleQuit        Module = 19
	ModuleStart       Module = 20
	ModuleBattleSwirl Module = 23
	ModuleEnding      Module = 25
	ModuleGameOver    Module = 26
	ModuleIntro       Module = 27
	ModuleCredits     Module = 28
)

var moduleNames = map[Module]string{
	ModuleNone:        "None",
	ModuleField:       "Field",
	ModuleBattle:      "Battle",
	ModuleWorld:       "World",
	ModuleMenu:        "Menu",
	ModuleHighway:     "Highway",
	ModuleChocobo:     "Chocobo",
	ModuleSnowboard:   "Snowboard",
	ModuleCondor:      "Condor",
	ModuleSubmarine:   "Submarine",
	ModuleJet:         "Jet",
	ModuleChangeDisc:  "ChangeDisc",
	ModuleQuit:        "Quit",
	ModuleStart:       "Start",
	ModuleBattleSwirl: "BattleSwirl",
	ModuleEnding:      "Ending",
	ModuleGameOver:    "GameOver",
	ModuleIntro:       "Intro",
	ModuleCredits:     "Credits",
}

func (m Module) String() string {
	if name, ok := moduleNames[m]; ok {
		return name
	}
	return "Unknown"
}

// Values the patch-check locations hold when the corresponding patch is applied.
const (
	FieldBattlesDisabledCode = 0x2E0E9
	MaxBattlesCode           = 0x90909090
	InstantATBCode           = 0x45C7
)

// BasicData is the flat runtime state read one location at a time.
type BasicData struct {
	CurrentModule          uint16  `yaml:"current_module"`
	GameMoment             uint16  `yaml:"game_moment"`
	FieldID                uint16  `yaml:"field_id"`
	FieldFPS               float64 `yaml:"field_fps"`
	BattleFPS              float64 `yaml:"battle_fps"`
	WorldFPS               float64 `yaml:"world_fps"`
	InGameTime             uint32  `yaml:"in_game_time"`
	DiscID                 uint8   `yaml:"disc_id"`
	MenuVisibility         uint16  `yaml:"menu_visibility"`
	MenuLocks              uint16  `yaml:"menu_locks"`
	FieldMovementDisabled  uint8   `yaml:"field_movement_disabled"`
	FieldMenuAccessEnabled uint8   `yaml:"field_menu_access_enabled"`
	PartyLockingMask       uint16  `yaml:"party_locking_mask"`
	PartyVisibilityMask    uint16  `yaml:"party_visibility_mask"`
	Gil                    uint32  `yaml:"gil"`
	GP                     uint16  `yaml:"gp"`
	BattleCount            uint16  `yaml:"battle_count"`
	BattleEscapeCount      uint16  `yaml:"battle_escape_count"`
	FieldBattleCheck       uint32  `yaml:"field_battle_check"`
	GameObjPtr             uint32  `yaml:"game_obj_ptr"`
	BattleSwirlCheck       uint8   `yaml:"battle_swirl_check"`
	InstantATBCheck        uint16  `yaml:"instant_atb_check"`
	UnfocusPatchCheck      uint8   `yaml:"unfocus_patch_check"`
	FFNxCheck              uint8   `yaml:"ffnx_check"`
	StepID                 uint32  `yaml:"step_id"`
	StepFraction           uint32  `yaml:"step_fraction"`
	DangerValue            uint32  `yaml:"danger_value"`
	BattleID               uint16  `yaml:"battle_id"`
	InvincibilityCheck     uint16  `yaml:"invincibility_check"`
	ExpMultiplier          uint8   `yaml:"exp_multiplier"`
	APMultiplier           uint8   `yaml:"ap_multiplier"`
	BattleChocoboRating    uint8   `yaml:"battle_chocobo_rating"`
	MenuAlwaysEnabled      uint8   `yaml:"menu_always_enabled"`
	WorldZoomTiltEnabled   uint8   `yaml:"world_zoom_tilt_enabled"`
	WorldZoom              uint16  `yaml:"world_zoom"`
	WorldTilt              uint16  `yaml:"world_tilt"`
	WorldSpeedMultiplier   uint8   `yaml:"world_speed_multiplier"`
	PartyMemberIDs         []uint8 `yaml:"party_member_ids,flow"`
	KeyItems               []byte  `yaml:"key_items,flow"`
}

func (b *BasicData) Module() Module {
	return Module(b.CurrentModule)
}

// Connected reports whether the game has left its pre-init state.
func (b *BasicData) Connected() bool {
	return b.Module() != ModuleNone
}

func (b *BasicData) BattlesDisabled() bool {
	return b.FieldBattleCheck == FieldBattlesDisabledCode
}

func (b *BasicData) MaxBattlesEnabled() bool {
	return b.FieldBattleCheck == MaxBattlesCode
}

func (b *BasicData) BattleSwirlDisabled() bool {
	return b.BattleSwirlCheck == 0
}

func (b *BasicData) InstantATBEnabled() bool {
	return b.InstantATBCheck == InstantATBCode
}

// HasKeyItem reports whether bit id of the key item mask is set.
func (b *BasicData) HasKeyItem(id int) bool {
	if id < 0 || id/8 >= len(b.KeyItems) {
		return false
	}
	return b.KeyItems[id/8]&(1<<(id%8)) != 0
}
