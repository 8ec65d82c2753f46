package types

// FieldModel is a model on the current field map. Z already carries the +10
// correction the game stores it without.
type FieldModel struct {
	X         int32 `yaml:"x"`
	Y         int32 `yaml:"y"`
	Z         int32 `yaml:"z"`
	Direction uint8 `yaml:"direction"`
}

// FieldData describes the loaded field file.
type FieldData struct {
	FieldID         uint16   `yaml:"field_id"`
	FieldName       []byte   `yaml:"field_name,flow"`
	FieldModelCount uint16   `yaml:"field_model_count"`
	FieldModelNames []string `yaml:"field_model_names"`
}

// BattleChar is an ally or enemy slot in battle.
type BattleChar struct {
	Name    string `yaml:"name"`
	Flags   uint8  `yaml:"flags"`
	Status  uint32 `yaml:"status"`
	HP      uint32 `yaml:"hp"`
	MaxHP   uint32 `yaml:"max_hp"`
	MP      uint16 `yaml:"mp"`
	MaxMP   uint16 `yaml:"max_mp"`
	ATB     uint16 `yaml:"atb"`
	Limit   uint16 `yaml:"limit"`
	SceneID uint8  `yaml:"scene_id"`
}

// NoLocation is the location id reported when the world walkmesh triangle is
// unknown.
const NoLocation = 255

// WorldModel is a model on the world map.
type WorldModel struct {
	Index         uint8  `yaml:"index"`
	X             uint32 `yaml:"x"`
	Y             int32  `yaml:"y"`
	Z             uint32 `yaml:"z"`
	Direction     int16  `yaml:"direction"`
	ModelID       uint8  `yaml:"model_id"`
	WalkmeshType  uint8  `yaml:"walkmesh_type"`
	LocationID    uint8  `yaml:"location_id"`
	ChocoboTracks bool   `yaml:"chocobo_tracks"`
}

// PartyMember is one of the nine character records of the save map.
type PartyMember struct {
	ID     uint8  `yaml:"id"`
	Name   string `yaml:"name"`
	Status uint8  `yaml:"status"`
	HP     uint16 `yaml:"hp"`
	MaxHP  uint16 `yaml:"max_hp"`
	MP     uint16 `yaml:"mp"`
	MaxMP  uint16 `yaml:"max_mp"`
	Limit  uint8  `yaml:"limit"`
	Exp    uint32 `yaml:"exp"`
}

// GameData is one pass over every decoder. Fields are read at different
// instants and need not be mutually consistent.
type GameData struct {
	Basic             BasicData     `yaml:"basic"`
	FieldModels       []FieldModel  `yaml:"field_models"`
	WorldModels       []WorldModel  `yaml:"world_models"`
	BattleAllies      []BattleChar  `yaml:"battle_allies"`
	BattleEnemies     []BattleChar  `yaml:"battle_enemies"`
	FieldData         FieldData     `yaml:"field_data"`
	WorldCurrentModel WorldModel    `yaml:"world_current_model"`
	PartyMembers      []PartyMember `yaml:"party_members"`
}
