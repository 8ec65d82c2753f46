package types

import (
	"testing"

	"gopkg.in/yaml.v2"
)

func TestModuleString(t *testing.T) {
	cases := map[Module]string{
		ModuleNone:        "None",
		ModuleBattle:      "Battle",
		ModuleBattleSwirl: "BattleSwirl",
		ModuleCredits:     "Credits",
		Module(4):         "Unknown",
	}
	for m, want := range cases {
		if m.String() != want {
			t.Errorf("Module(%d): expected %s, got %s", m, want, m.String())
		}
	}
}

func TestBasicDataPredicates(t *testing.T) {
	b := BasicData{
		CurrentModule:    uint16(ModuleWorld),
		FieldBattleCheck: 0x2E0E9,
		BattleSwirlCheck: 0,
		InstantATBCheck:  0x45C7,
		KeyItems:         []byte{0x01, 0x80},
	}
	if !b.Connected() || b.Module() != ModuleWorld {
		t.Errorf("Expected connected in World, got %v", b.Module())
	}
	if !b.BattlesDisabled() || b.MaxBattlesEnabled() {
		t.Error("Expected battles disabled and max battles off")
	}
	if !b.BattleSwirlDisabled() || !b.InstantATBEnabled() {
		t.Error("Expected swirl disabled and instant ATB on")
	}
	if !b.HasKeyItem(0) || !b.HasKeyItem(15) || b.HasKeyItem(1) || b.HasKeyItem(64) {
		t.Error("Unexpected key item bits")
	}

	b = BasicData{FieldBattleCheck: 0x90909090, BattleSwirlCheck: 0xE8}
	if b.Connected() {
		t.Error("Expected module None to report disconnected")
	}
	if !b.MaxBattlesEnabled() || b.BattlesDisabled() || b.BattleSwirlDisabled() {
		t.Error("Unexpected patch state for max battles")
	}
}

func TestLootTypeYAML(t *testing.T) {
	out, err := yaml.Marshal(LootItem{Name: "Potion", Type: Steal, Rate: 2})
	if err != nil {
		t.Fatal(err)
	}
	want := "name: Potion\ntype: Steal\nrate: 2\n"
	if string(out) != want {
		t.Errorf("Expected %q, got %q", want, out)
	}
}

func TestElementNames(t *testing.T) {
	if ElementHoly.String() != "Holy" || ElementNothing.String() != "Nothing" {
		t.Errorf("unexpected element names %s %s", ElementHoly, ElementNothing)
	}
	if EffectAbsorb.String() != "Absorb" || ElementEffect(3).String() != "Unknown" {
		t.Errorf("unexpected effect names %s %s", EffectAbsorb, ElementEffect(3))
	}
}
