package types

// LootType says how an enemy's item is obtained.
type LootType int

const (
	Drop LootType = iota
	Steal
)

func (l LootType) String() string {
	if l == Steal {
		return "Steal"
	}
	return "Drop"
}

func (l LootType) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// LootItem is one drop or steal entry. Rate is the raw rate with the
// steal bit cleared.
type LootItem struct {
	Name string   `yaml:"name"`
	Type LootType `yaml:"type"`
	Rate uint8    `yaml:"rate"`
}

// Elemental pairs an element with the enemy's reaction to it.
type Elemental struct {
	Element ElementType   `yaml:"element"`
	Effect  ElementEffect `yaml:"effect"`
}

type ElementType uint8

const (
	ElementFire ElementType = iota
	ElementIce
	ElementBolt
	ElementEarth
	ElementBio
	ElementGravity
	ElementWater
	ElementWind
	ElementHoly
	ElementHealth
	ElementCut
	ElementHit
	ElementPunch
	ElementShoot
	ElementScream
	ElementHidden
	ElementNothing ElementType = 0xFF
)

var elementNames = [...]string{
	"Fire", "Ice", "Bolt", "Earth", "Bio", "Gravity", "Water", "Wind",
	"Holy", "Health", "Cut", "Hit", "Punch", "Shoot", "Scream", "Hidden",
}

func (e ElementType) String() string {
	if int(e) < len(elementNames) {
		return elementNames[e]
	}
	if e == ElementNothing {
		return "Nothing"
	}
	return "Unknown"
}

type ElementEffect uint8

const (
	EffectDeath        ElementEffect = 0
	EffectDoubleDamage ElementEffect = 2
	EffectHalfDamage   ElementEffect = 4
	EffectNullify      ElementEffect = 5
	EffectAbsorb       ElementEffect = 6
	EffectFullCure     ElementEffect = 7
	EffectNothing      ElementEffect = 0xFF
)

func (e ElementEffect) String() string {
	switch e {
	case EffectDeath:
		return "Death"
	case EffectDoubleDamage:
		return "DoubleDamage"
	case EffectHalfDamage:
		return "HalfDamage"
	case EffectNullify:
		return "Nullify"
	case EffectAbsorb:
		return "Absorb"
	case EffectFullCure:
		return "FullCure"
	case EffectNothing:
		return "Nothing"
	}
	return "Unknown"
}

// EnemyData is the scene record of an enemy. Defense and MagicDefense are
// already doubled to the values the damage formula uses.
type EnemyData struct {
	Level                uint8       `yaml:"level"`
	Speed                uint8       `yaml:"speed"`
	Luck                 uint8       `yaml:"luck"`
	Evade                uint8       `yaml:"evade"`
	Strength             uint8       `yaml:"strength"`
	Defense              uint16      `yaml:"defense"`
	Magic                uint8       `yaml:"magic"`
	MagicDefense         uint16      `yaml:"magic_defense"`
	Elements             []Elemental `yaml:"elements"`
	Items                []LootItem  `yaml:"items"`
	StatusImmunities     uint32      `yaml:"status_immunities"`
	Gil                  uint32      `yaml:"gil"`
	Exp                  uint32      `yaml:"exp"`
	AP                   uint16      `yaml:"ap"`
	BackDamageMultiplier uint8       `yaml:"back_damage_multiplier"`
	Morph                *string     `yaml:"morph"`
}
