package model

import "testing"

func TestParseRarityTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want RarityTier
	}{
		{"Unique", RarityTier{RarityUnique, 0}},
		{"Legendary III", RarityTier{RarityLegendary, 3}},
		{"epic iv", RarityTier{RarityEpic, 4}},
		{"Primeval", RarityTier{RarityPrimeval, 0}},
		{"Mythic II", RarityTier{}},
		{"", RarityTier{}},
	}

	for _, tt := range tests {
		if got := ParseRarityTier(tt.name); got != tt.want {
			t.Errorf("ParseRarityTier(%q) = %+v; want %+v", tt.name, got, tt.want)
		}
	}
}

func TestParseSetArchetype(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want SetArchetype
	}{
		{"Gold Paradise Set", SetArchetypeParadise},
		{"Golden Glory Set", SetArchetypeParadise},
		{"CLEANSING Set", SetArchetypeCleansing},
		{"Ethereal Dream Set", SetArchetypeEthereal},
		{"Dragon Slayer Set", SetArchetypeDragon},
		{"Serendipity Set", SetArchetypeSerendipity},
		{"Wolf Pack Set", SetArchetypePack},
		{"Plain Set", SetArchetypeNone},
	}

	for _, tt := range tests {
		if got := ParseSetArchetype(tt.name); got != tt.want {
			t.Errorf("ParseSetArchetype(%q) = %v; want %v", tt.name, got, tt.want)
		}
	}
}

func TestNewSetItemInfo(t *testing.T) {
	t.Parallel()

	info := NewSetItemInfo("Serendipity Set", "Epic II", nil)
	if info.Archetype != SetArchetypeSerendipity || info.Tier.Rarity != RarityEpic || info.Tier.Step != 2 {
		t.Errorf("NewSetItemInfo() = %+v", info)
	}
	if RarityPrimeval.Index() != 4 || RarityNone.Index() != 0 {
		t.Error("rarity index must run unique=1 .. primeval=4")
	}
}

func TestEquipmentSnapshot_StatusValue(t *testing.T) {
	t.Parallel()

	var missing EquipmentSnapshot
	if _, ok := missing.StatusValue(StatusAtkAmp); ok {
		t.Error("nil status must report absent")
	}

	snap := EquipmentSnapshot{
		Status: map[string]float64{StatusAtkAmp: 12.5},
		Skills: []Skill{{Name: "Lovely Tempo", Level: 20}},
	}
	if v, ok := snap.StatusValue(StatusAtkAmp); !ok || v != 12.5 {
		t.Errorf("StatusValue() = %v, %v", v, ok)
	}
	if got := snap.SkillLevel("Lovely Tempo"); got != 20 {
		t.Errorf("SkillLevel() = %d; want 20", got)
	}
	if got := snap.SkillLevel("Unknown"); got != 0 {
		t.Errorf("SkillLevel(unknown) = %d; want 0", got)
	}
}

func TestFold(t *testing.T) {
	t.Parallel()

	if Fold("Overall DAMAGE") != Fold("overall damage") {
		t.Error("Fold must be case-insensitive")
	}
}
