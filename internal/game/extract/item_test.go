package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/dfocalc/internal/game/stat"
	"github.com/udisondev/dfocalc/internal/model"
)

func TestReinforceBonus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		slot      string
		reinforce int
		amplified bool
		want      float64
	}{
		{"weapon below threshold", model.SlotWeapon, 11, false, 0},
		{"weapon +12", model.SlotWeapon, 12, false, 0.4},
		{"weapon +14", model.SlotWeapon, 14, false, 1.0},
		{"weapon +16", model.SlotWeapon, 16, false, 1.2},
		{"earrings +13", model.SlotEarrings, 13, false, 0.7},
		{"ring is not eligible without amplification", "Ring", 15, false, 0},
		{"amplified +9", "Ring", 9, true, 0},
		{"amplified +10", "Ring", 10, true, 0.2},
		{"amplified +11", "Ring", 11, true, 0.4},
		{"amplified +13", "Ring", 13, true, 1.0},
		{"amplified +15", "Ring", 15, true, 1.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			it := &model.EquippedItem{SlotName: tt.slot, Reinforce: tt.reinforce}
			if tt.amplified {
				it.AmplificationName = "Dimension Intelligence"
			}
			assert.InDelta(t, tt.want, ReinforceBonus(it), 1e-9)
		})
	}
}

func TestEngraveBonus(t *testing.T) {
	t.Parallel()

	gold := func(v int) []model.FusionOption {
		return []model.FusionOption{{Engraves: []model.Engrave{{Color: "Gold", Value: v}}}}
	}

	assert.Equal(t, 0.3, EngraveBonus(gold(1)))
	assert.Equal(t, 0.5, EngraveBonus(gold(2)))
	assert.Equal(t, 1.5, EngraveBonus(gold(3)))
	assert.Zero(t, EngraveBonus(gold(4)))
	assert.Zero(t, EngraveBonus([]model.FusionOption{{Engraves: []model.Engrave{{Color: "silver", Value: 3}}}}))
	assert.Zero(t, EngraveBonus(nil))
}

func TestItem_FusionStone(t *testing.T) {
	t.Parallel()

	it := &model.EquippedItem{
		SlotName: "Ring",
		ItemName: "Ring of Test",
		Upgrade: &model.UpgradeInfo{
			ItemID:   "stone",
			ItemName: "Fusion Stone",
			Options:  []model.FusionOption{{Explain: "Overall Damage +1%"}},
		},
		FusionOptions: []model.FusionOption{
			{Explain: "Damage Value +500", Engraves: []model.Engrave{{Color: "gold", Value: 3}}},
		},
	}

	cs := Item(it, model.JobNone)
	assert.Equal(t, []float64{2.5}, values(cs, stat.KindOverallDamage))
	assert.Empty(t, values(cs, stat.KindDamageValue), "own options are replaced by the stone")
}

func TestItem_EternalFragment(t *testing.T) {
	t.Parallel()

	it := &model.EquippedItem{
		SlotName: "Ring",
		ItemName: "Ring of Test",
		Upgrade:  &model.UpgradeInfo{ItemID: "frag", ItemName: "Eternal Fragment"},
		FusionOptions: []model.FusionOption{
			{Explain: "Overall Damage +1%", Engraves: []model.Engrave{{Color: "gold", Value: 3}}},
			{ExplainDetail: "Damage Value +100"},
		},
	}

	cs := Item(it, model.JobNone)
	assert.Equal(t, []float64{1}, values(cs, stat.KindOverallDamage), "fragments ignore engravings")
	assert.Equal(t, []float64{100}, values(cs, stat.KindDamageValue))
}

func TestItem_NoUpgradeSkipsFusion(t *testing.T) {
	t.Parallel()

	it := &model.EquippedItem{
		SlotName:      "Ring",
		FusionOptions: []model.FusionOption{{Explain: "Overall Damage +1%"}},
	}
	assert.Empty(t, Item(it, model.JobNone))
}

func TestItem_BuffExplainDropsCooldownStat(t *testing.T) {
	t.Parallel()

	it := &model.EquippedItem{
		SlotName:        "Top",
		ItemStatus:      []model.StatEntry{{Name: "Skill Cooldown Reduction", Value: "10%"}, {Name: "Intelligence", Value: "80"}},
		ItemBuffExplain: "Skill Cooldown -10%",
	}

	cs := Item(it, model.JobNone)
	assert.Empty(t, values(cs, stat.KindCooldownReduction))
	assert.Equal(t, []float64{80}, values(cs, stat.KindStat))
}

func TestItem_AllLanes(t *testing.T) {
	t.Parallel()

	it := &model.EquippedItem{
		SlotName:          model.SlotWeapon,
		ItemName:          "Sword",
		Reinforce:         12,
		ItemStatus:        []model.StatEntry{{Name: "Fire Element Enhancement", Value: "20"}},
		ItemExplainDetail: "Overall Damage +10%",
		Tune:              &model.Tune{Status: []model.StatEntry{{Name: "Damage Value", Value: "30"}}},
		Enchant: &model.Enchant{
			Status:         []model.StatEntry{{Name: "Intelligence", Value: "60"}},
			ReinforceSkill: []model.ReinforceSkill{{Name: "Lovely Tempo", Level: 1}},
		},
		Emblems: []model.Emblem{{ItemName: "Platinum Emblem [On the Stage]"}},
	}

	cs := Item(it, model.JobMuse)
	totals := stat.Accumulate(stat.NewTotals(nil), cs)

	assert.Equal(t, 33.0, totals.Elemental(model.ElementFire))
	assert.InDelta(t, 1.10*1.004, totals.OverallDamageMultiplier(), 1e-12)
	assert.Equal(t, 30.0, totals.DamageValueSum())
	assert.Equal(t, 60, totals.Stat(model.StatIntelligence))
	assert.Equal(t, 1, totals.SkillLevelBonus(model.BuffMain))
	assert.Equal(t, 1, totals.SkillLevelBonus(model.BuffFirstAwakening))

	for _, c := range cs {
		assert.NotEmpty(t, c.Source)
	}
}

func TestEquipment_SkipsSecondaryWeapon(t *testing.T) {
	t.Parallel()

	items := []model.EquippedItem{
		{SlotName: model.SlotSecondaryWeapon, ItemExplainDetail: "Overall Damage +50%"},
		{SlotName: "Ring", ItemExplainDetail: "Overall Damage +5%"},
	}
	assert.Equal(t, []float64{5}, values(Equipment(items, model.JobNone), stat.KindOverallDamage))
}

func TestAvatarAndAux(t *testing.T) {
	t.Parallel()

	aura := &model.Avatar{
		SlotName:          model.SlotAuraAvatar,
		ItemStatus:        []model.StatEntry{{Name: "All Stats", Value: "50"}},
		ItemExplainDetail: "All Elemental Damage +10",
		OptionAbility:     "Cooldown Recovery +2%",
	}
	hat := &model.Avatar{
		SlotName:          "Hat",
		ItemStatus:        []model.StatEntry{{Name: "Spirit", Value: "30"}},
		ItemExplainDetail: "All Elemental Damage +10",
		OptionAbility:     "Intelligence +45",
	}

	auraTotals := stat.Accumulate(stat.NewTotals(nil), Avatar(aura, model.JobNone))
	assert.Equal(t, 50, auraTotals.Stat(model.StatSpirit))
	assert.Equal(t, 10.0, auraTotals.Elemental(model.ElementAll))
	assert.Equal(t, 2.0, auraTotals.CooldownRecoverySum())

	hatTotals := stat.Accumulate(stat.NewTotals(nil), Avatar(hat, model.JobNone))
	assert.Zero(t, hatTotals.Elemental(model.ElementAll), "only the aura avatar carries explain text")
	assert.Equal(t, 45, hatTotals.Stat(model.StatIntelligence))
	assert.Zero(t, hatTotals.Stat(model.StatSpirit), "damage dealers read only the aura item record")

	buffHat := stat.Accumulate(stat.NewTotals(nil), Avatar(hat, model.JobMuse))
	assert.Equal(t, 30, buffHat.Stat(model.StatSpirit), "support jobs read every avatar slot")

	creature := &model.AuxItem{
		ItemName:   "Pet",
		ItemStatus: []model.StatEntry{{Name: "Intelligence", Value: "100"}},
		Children: []model.AuxItem{
			{ItemName: "Red Artifact", ItemStatus: []model.StatEntry{{Name: "Light Element Enhancement", Value: "5"}}},
		},
	}
	auxTotals := stat.Accumulate(stat.NewTotals(nil), Aux(creature, "CREATURE", model.JobNone))
	assert.Equal(t, 100, auxTotals.Stat(model.StatIntelligence))
	assert.Equal(t, 18.0, auxTotals.Elemental(model.ElementLight))
}
