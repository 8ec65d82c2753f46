package memory

import (
	"context"
	"time"

	"FF7Ultima/addresses"
	"FF7Ultima/types"
	"FF7Ultima/utils"
)

// ReadGameData runs every snapshot decoder once. Each part is read at its
// own instant; the first failure aborts the whole snapshot.
func ReadGameData(ff7 *utils.ClassMemory, t *addresses.Table) (*types.GameData, error) {
	basic, err := ReadBasicData(ff7, t)
	if err != nil {
		return nil, err
	}
	fieldModels, err := ReadFieldModels(ff7, t)
	if err != nil {
		return nil, err
	}
	worldModels, err := ReadWorldModels(ff7, t)
	if err != nil {
		return nil, err
	}
	allies, err := ReadBattleAllies(ff7, t)
	if err != nil {
		return nil, err
	}
	enemies, err := ReadBattleEnemies(ff7, t)
	if err != nil {
		return nil, err
	}
	fieldData, err := ReadFieldData(ff7, t)
	if err != nil {
		return nil, err
	}
	current, err := ReadWorldCurrentModel(ff7, t)
	if err != nil {
		return nil, err
	}
	party, err := ReadPartyMembers(ff7, t)
	if err != nil {
		return nil, err
	}

	return &types.GameData{
		Basic:             *basic,
		FieldModels:       fieldModels,
		WorldModels:       worldModels,
		BattleAllies:      allies,
		BattleEnemies:     enemies,
		FieldData:         *fieldData,
		WorldCurrentModel: *current,
		PartyMembers:      party,
	}, nil
}

// Poll reads a snapshot every interval and hands it to handle until ctx ends.
// It runs on the caller's goroutine.
func Poll(ctx context.Context, ff7 *utils.ClassMemory, t *addresses.Table, interval time.Duration, handle func(*types.GameData, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			handle(ReadGameData(ff7, t))
		}
	}
}
