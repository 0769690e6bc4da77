package buff

import (
	"math"

	"github.com/udisondev/dfocalc/internal/data"
	"github.com/udisondev/dfocalc/internal/game/extract"
	"github.com/udisondev/dfocalc/internal/game/stat"
	"github.com/udisondev/dfocalc/internal/model"
)

// Seed builds the starting totals from the status block. The status block
// already includes every worn item's stats and buff power.
func Seed(snap *model.EquipmentSnapshot) stat.Totals {
	base := make(map[string]int, len(model.RawStats))
	for _, name := range model.RawStats {
		if v, ok := snap.StatusValue(name); ok {
			base[name] = int(math.Round(v))
		}
	}

	t := stat.NewTotals(base)
	if v, ok := snap.StatusValue(model.StatusBuffPower); ok {
		t = stat.Fold(t, stat.BuffPower(v, "[STATUS]"))
	}
	if v, ok := snap.StatusValue(model.StatusBuffPowerAmp); ok {
		t = stat.Fold(t, stat.BuffPowerAmp(v, "[STATUS]"))
	}
	return t
}

// buffKind reports whether a contribution can change a buff result.
func buffKind(k stat.Kind) bool {
	switch k {
	case stat.KindStat, stat.KindBuffPower, stat.KindBuffPowerAmp, stat.KindSkillLevel:
		return true
	default:
		return false
	}
}

func onlyKind(cs []stat.Contribution, keep func(stat.Kind) bool) []stat.Contribution {
	out := make([]stat.Contribution, 0, len(cs))
	for _, c := range cs {
		if keep(c.Kind) {
			out = append(out, c)
		}
	}
	return out
}

// WornContributions returns the skill level bonuses of the worn loadout.
// Stats and buff power are not included; Seed already carries them.
func WornContributions(snap *model.EquipmentSnapshot, job model.Job, setBonus []stat.Contribution) []stat.Contribution {
	all := extract.Snapshot(snap, job)
	all = append(all, setBonus...)
	return onlyKind(all, func(k stat.Kind) bool { return k == stat.KindSkillLevel })
}

// SwitchContributions returns the delta of swapping the buff loadout in:
// for every slot where both a buff item and a worn item exist, the buff
// item's contributions minus the worn item's.
func SwitchContributions(snap *model.EquipmentSnapshot, job model.Job) []stat.Contribution {
	lo := snap.Buff
	if lo == nil {
		return nil
	}

	var out []stat.Contribution
	swap := func(in, worn []stat.Contribution) {
		out = append(out, onlyKind(in, buffKind)...)
		for _, c := range onlyKind(worn, buffKind) {
			out = append(out, c.Negate())
		}
	}

	for i := range lo.Equipment {
		b := &lo.Equipment[i]
		if w := wornItem(snap.Equipment, b.SlotName); w != nil {
			swap(extract.Item(b, job), extract.Item(w, job))
		}
	}
	for i := range lo.Avatars {
		b := &lo.Avatars[i]
		if w := wornAvatar(snap.Avatars, b.SlotName); w != nil {
			swap(extract.Avatar(b, job), extract.Avatar(w, job))
		}
	}
	if lo.Creature != nil && snap.Creature != nil {
		swap(extract.Aux(lo.Creature, "CREATURE", job), extract.Aux(snap.Creature, "CREATURE", job))
	}
	return out
}

func wornItem(items []model.EquippedItem, slot string) *model.EquippedItem {
	for i := range items {
		if items[i].SlotName == slot {
			return &items[i]
		}
	}
	return nil
}

func wornAvatar(avatars []model.Avatar, slot string) *model.Avatar {
	for i := range avatars {
		if avatars[i].SlotName == slot {
			return &avatars[i]
		}
	}
	return nil
}

// BaseLevels reads learned levels from the skill list. The buff loadout's own
// level already includes its gear and is ignored, since gear bonuses are
// added on top of these levels.
func BaseLevels(snap *model.EquipmentSnapshot, job model.Job) [model.BuffSlotCount]int {
	var lv [model.BuffSlotCount]int
	for slot := model.BuffSlot(0); slot < model.BuffSlotCount; slot++ {
		lv[slot] = snap.SkillLevel(data.SkillName(job, slot))
	}
	return lv
}
