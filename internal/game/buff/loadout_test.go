package buff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/dfocalc/internal/game/stat"
	"github.com/udisondev/dfocalc/internal/model"
)

func museSnapshot() *model.EquipmentSnapshot {
	return &model.EquipmentSnapshot{
		Status: map[string]float64{
			model.StatSpirit:         5000.4,
			model.StatIntelligence:   1200,
			model.StatusBuffPower:    10000,
			model.StatusBuffPowerAmp: 5,
		},
		Equipment: []model.EquippedItem{
			{SlotName: "Top", ItemStatus: []model.StatEntry{{Name: "Spirit", Value: "50"}}},
			{SlotName: "Necklace", ItemExplainDetail: "Lv.48 Skills +1\nBuff Power +500"},
		},
		Avatars: []model.Avatar{
			{SlotName: "Hat", OptionAbility: "Spirit +45"},
		},
		Skills: []model.Skill{
			{Name: "Lovely Tempo", Level: 9},
			{Name: "On the Stage", Level: 20},
		},
		Buff: &model.BuffLoadout{
			SkillName:  "Lovely Tempo",
			SkillLevel: 12,
			Equipment: []model.EquippedItem{
				{SlotName: "Top", ItemStatus: []model.StatEntry{{Name: "Spirit", Value: "120"}}, ItemExplainDetail: "Lv.30 Buff Skills +1"},
				{SlotName: "Ring", ItemStatus: []model.StatEntry{{Name: "Spirit", Value: "999"}}},
			},
			Avatars: []model.Avatar{
				{SlotName: "Hat", OptionAbility: "Spirit +100"},
			},
		},
	}
}

func TestSeed(t *testing.T) {
	t.Parallel()

	seed := Seed(museSnapshot())
	assert.Equal(t, 5000, seed.Stat(model.StatSpirit))
	assert.Equal(t, 1200, seed.Stat(model.StatIntelligence))
	assert.InDelta(t, 10500.0, EffectiveBuffPower(seed), 1e-9)
}

func TestWornContributions_OnlySkillLevels(t *testing.T) {
	t.Parallel()

	cs := WornContributions(museSnapshot(), model.JobMuse, nil)
	assert.Equal(t, []stat.Contribution{stat.SkillLevel(model.BuffAura, 1, "[ITEM_DETAIL] ")}, cs)
}

func TestSwitchContributions(t *testing.T) {
	t.Parallel()

	snap := museSnapshot()
	worn := Seed(snap)
	switched := stat.Accumulate(worn, SwitchContributions(snap, model.JobMuse))

	// Top +70, hat +55; the ring has no worn counterpart.
	assert.Equal(t, 5125, switched.Stat(model.StatSpirit))
	assert.Equal(t, 1, switched.SkillLevelBonus(model.BuffMain))
	assert.Equal(t, 5000, worn.Stat(model.StatSpirit), "worn totals are untouched")

	assert.Empty(t, SwitchContributions(&model.EquipmentSnapshot{}, model.JobMuse))
}

func TestBaseLevels(t *testing.T) {
	t.Parallel()

	snap := museSnapshot()
	assert.Equal(t, [model.BuffSlotCount]int{9, 20, 0, 0}, BaseLevels(snap, model.JobMuse),
		"loadout level is not used as the base")

	snap.Buff.SkillLevel = 0
	assert.Equal(t, 9, BaseLevels(snap, model.JobMuse)[model.BuffMain])
}
