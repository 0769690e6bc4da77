// Package setbonus resolves the special-case bonus of the active set.
package setbonus

import (
	"log/slog"
	"math"
	"strings"

	"github.com/udisondev/dfocalc/internal/data"
	"github.com/udisondev/dfocalc/internal/game/extract"
	"github.com/udisondev/dfocalc/internal/game/stat"
	"github.com/udisondev/dfocalc/internal/model"
)

const statSkillCooldown = "Skill Cooldown Reduction"

// Options selects caller policy for a resolution.
type Options struct {
	// CleansingCDR picks the Cleansing cooldown mode (55% CDR) over the
	// damage mode (+17.5% overall, 30% CDR).
	CleansingCDR bool

	// AverageSetDamage replaces the archetype table with one flat
	// tier-agnostic contribution.
	AverageSetDamage bool
}

// Aggregates are the cross-item reinforcement sums some archetypes need.
type Aggregates struct {
	// Total is the reinforcement summed over every non-weapon item.
	Total int
	// Accessory is the reinforcement summed over ring, bracelet and necklace.
	Accessory int
}

// ComputeAggregates sums reinforcement across the worn equipment.
func ComputeAggregates(items []model.EquippedItem) Aggregates {
	var agg Aggregates
	for i := range items {
		it := &items[i]
		if it.IsWeapon() {
			continue
		}
		agg.Total += it.Reinforce
		if it.IsAccessory() {
			agg.Accessory += it.Reinforce
		}
	}
	return agg
}

// Resolution is the outcome of resolving one set.
type Resolution struct {
	Archetype model.SetArchetype
	// Bonus holds the archetype-specific contributions.
	Bonus []stat.Contribution
	// Status is the set status after archetype overrides, nil in average mode.
	Status []model.StatEntry
	// Contributions is Bonus followed by Status run through the structured lane.
	Contributions []stat.Contribution
}

// Resolve computes the set's contributions, including its remaining raw status
// entries routed through the structured lane.
func Resolve(snap *model.EquipmentSnapshot, job model.Job, opts Options) Resolution {
	set := snap.Set
	if set == nil {
		return Resolution{}
	}
	src := "[SET] " + set.Name

	if opts.AverageSetDamage {
		if v, ok := data.AverageSetDamage(set.Tier); ok {
			bonus := []stat.Contribution{stat.OverallDamage(v, src)}
			return Resolution{Archetype: set.Archetype, Bonus: bonus, Contributions: bonus}
		}
		slog.Debug("no average set damage for tier, using literal set", "set", set.Name, "rarity", set.RarityName)
	}

	status := set.Status
	var out []stat.Contribution
	tier := set.Tier.Rarity

	switch set.Archetype {
	case model.SetArchetypeParadise:
		agg := ComputeAggregates(snap.Equipment)
		acc, total := paradiseBonus(tier, agg)
		for _, v := range [...]float64{acc, total} {
			if v > 0 {
				out = append(out, stat.OverallDamage(v, src))
			}
		}
		status = dropStat(status, statSkillCooldown)

	case model.SetArchetypeCleansing:
		if tier >= model.RarityLegendary {
			cdr := "30%"
			if opts.CleansingCDR {
				cdr = "55%"
			} else {
				out = append(out, stat.OverallDamage(17.5, src))
			}
			status = overrideStat(status, statSkillCooldown, cdr)
		}

	case model.SetArchetypeEthereal:
		if idx := tier.Index(); idx > 0 {
			out = append(out, stat.OverallDamage(10*float64(idx), src))
		}

	case model.SetArchetypeDragon:
		switch tier {
		case model.RarityEpic:
			out = append(out, stat.OverallDamage(1.5, src))
		case model.RarityPrimeval:
			out = append(out, stat.OverallDamage(3, src))
		}

	case model.SetArchetypeSerendipity:
		out = append(out, serendipity(tier, src)...)

	case model.SetArchetypePack:
		if v, ok := packBonus[tier]; ok {
			out = append(out, stat.OverallDamage(v, src))
		}

	default:
		slog.Debug("set has no special-case bonus", "set", set.Name)
	}

	all := append([]stat.Contribution(nil), out...)
	all = append(all, extract.Structured(status, extract.TextContext{Source: src, Job: job})...)
	return Resolution{
		Archetype:     set.Archetype,
		Bonus:         out,
		Status:        status,
		Contributions: all,
	}
}

// paradiseBonus: accessory reinforcement pays every 3 levels up to a tier cap,
// total reinforcement above 110 pays 2% per 11 levels for epic and primeval.
// The two parts fold as separate overall damage multipliers.
func paradiseBonus(tier model.Rarity, agg Aggregates) (acc, total float64) {
	var accCap int
	switch tier {
	case model.RarityUnique:
		accCap = 7
	case model.RarityLegendary, model.RarityEpic, model.RarityPrimeval:
		accCap = 12
	default:
		return 0, 0
	}

	acc = float64(min(agg.Accessory/3, accCap))
	if tier == model.RarityEpic || tier == model.RarityPrimeval {
		steps := int(math.Floor(float64(agg.Total-110) / 11))
		total = float64(max(0, min(steps, 2)) * 2)
	}
	return acc, total
}

// serendipityProcs are the conditional overall damage % per tier, combined
// multiplicatively into one expected value.
var serendipityProcs = map[model.Rarity][]float64{
	model.RarityUnique:    {4},
	model.RarityLegendary: {1.5, 4},
	model.RarityEpic:      {4, 10},
	model.RarityPrimeval:  {4, 3, 10},
}

func serendipity(tier model.Rarity, src string) []stat.Contribution {
	procs, ok := serendipityProcs[tier]
	if !ok {
		return nil
	}

	m := 1.0
	for _, p := range procs {
		m *= 1 + p/100
	}
	out := []stat.Contribution{
		stat.OverallDamage(3, src),
		stat.OverallDamage((m-1)*100, src),
	}
	if tier > model.RarityUnique {
		out = append(out, stat.Elemental(model.ElementAll, 33, src))
	}
	return out
}

var packBonus = map[model.Rarity]float64{
	model.RarityUnique:    5,
	model.RarityLegendary: 6,
	model.RarityEpic:      7,
	model.RarityPrimeval:  8,
}

func dropStat(entries []model.StatEntry, name string) []model.StatEntry {
	out := make([]model.StatEntry, 0, len(entries))
	for _, e := range entries {
		if !strings.EqualFold(e.Name, name) {
			out = append(out, e)
		}
	}
	return out
}

// overrideStat replaces the value of the first entry called name. A status
// without that entry is returned unchanged. The input slice is never modified.
func overrideStat(entries []model.StatEntry, name, value string) []model.StatEntry {
	out := make([]model.StatEntry, 0, len(entries))
	found := false
	for _, e := range entries {
		if !found && strings.EqualFold(e.Name, name) {
			e.Value = value
			found = true
		}
		out = append(out, e)
	}
	return out
}
