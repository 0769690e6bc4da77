package data

import (
	"testing"

	"github.com/udisondev/dfocalc/internal/model"
)

func TestLoadBuffLevels(t *testing.T) {
	t.Parallel()

	if err := LoadBuffLevels(); err != nil {
		t.Fatalf("LoadBuffLevels() error: %v", err)
	}

	jobs := []model.Job{model.JobCrusaderM, model.JobCrusaderF, model.JobEnchantress, model.JobMuse}
	wantMax := map[model.BuffSlot]int{
		model.BuffMain:           40,
		model.BuffFirstAwakening: 50,
		model.BuffThirdAwakening: 50,
		model.BuffAura:           50,
	}

	for _, job := range jobs {
		for slot, want := range wantMax {
			table := BuffLevelTable(job, slot)
			if got := table.MaxLevel(); got != want {
				t.Errorf("%s/%s MaxLevel() = %d; want %d", job, slot, got, want)
			}
			for lv := 1; lv <= want; lv++ {
				if _, ok := table[lv]; !ok {
					t.Errorf("%s/%s: level %d missing", job, slot, lv)
				}
			}
		}
	}
}

func TestLevelTable_Lookup(t *testing.T) {
	t.Parallel()

	table := BuffLevelTable(model.JobMuse, model.BuffMain)

	c, lv, ok := table.Lookup(5)
	if !ok || lv != 5 || c.Stat != 207 || c.Atk != 47 {
		t.Errorf("Lookup(5) = %+v, %d, %v", c, lv, ok)
	}

	c, lv, ok = table.Lookup(99)
	if !ok || lv != 40 || c.Stat != 593 {
		t.Errorf("Lookup(99) = %+v, %d, %v; want clamp to 40", c, lv, ok)
	}

	if _, _, ok := table.Lookup(0); ok {
		t.Error("Lookup(0) must report not learned")
	}
	if BuffLevelTable(model.JobNone, model.BuffMain) != nil {
		t.Error("damage dealers have no level table")
	}
}

func TestBuffLevelTable_Aura(t *testing.T) {
	t.Parallel()

	crusader := BuffLevelTable(model.JobCrusaderM, model.BuffAura)
	common := BuffLevelTable(model.JobCrusaderF, model.BuffAura)

	if crusader[2].Stat != 48 {
		t.Errorf("crusader aura level 2 = %v; want 48", crusader[2].Stat)
	}
	if common[2].Stat != 37 {
		t.Errorf("common aura level 2 = %v; want 37", common[2].Stat)
	}
	if third := BuffLevelTable(model.JobMuse, model.BuffThirdAwakening); third[1].Percent != 109 {
		t.Errorf("third awakening level 1 = %v; want 109", third[1].Percent)
	}
}

func TestAverageSetDamage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tier   string
		want   float64
		wantOK bool
	}{
		{"Unique I", 48.5, true},
		{"Legendary V", 263.8, true},
		{"Epic III", 358.0, true},
		{"Primeval", 447.4, true},
		{"Epic", 0, false},
		{"Mythic", 0, false},
	}

	for _, tt := range tests {
		got, ok := AverageSetDamage(model.ParseRarityTier(tt.tier))
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("AverageSetDamage(%q) = %v, %v; want %v, %v", tt.tier, got, ok, tt.want, tt.wantOK)
		}
	}
}
