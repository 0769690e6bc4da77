package stat

import (
	"maps"
	"math"
	"slices"
	"sort"

	"github.com/udisondev/dfocalc/internal/model"
)

// ElementalFloor is the base value of every concrete element before gear.
const ElementalFloor = 13.0

// Totals is the running aggregate of one evaluation.
//
// Float kinds keep their magnitudes as sorted multisets and reduce them on
// read, so any permutation of the same contributions gives bit-identical
// results (float multiplication and addition are not associative).
// Integer kinds (skill levels, stats) are exact and summed directly.
type Totals struct {
	overall   []float64
	cdr       []float64
	recovery  []float64
	damage    []float64
	buffPower []float64
	buffAmp   []float64
	elemental [model.ElementAll + 1][]float64
	skill     [model.BuffSlotCount]int
	stats     map[string]int
}

// NewTotals returns empty totals seeded with the character's base stats.
func NewTotals(base map[string]int) Totals {
	t := Totals{stats: make(map[string]int, len(base))}
	for name, v := range base {
		t.stats[name] = v
	}
	return t
}

// Clone returns a deep copy.
func (t Totals) Clone() Totals {
	c := Totals{
		overall:   slices.Clone(t.overall),
		cdr:       slices.Clone(t.cdr),
		recovery:  slices.Clone(t.recovery),
		damage:    slices.Clone(t.damage),
		buffPower: slices.Clone(t.buffPower),
		buffAmp:   slices.Clone(t.buffAmp),
		skill:     t.skill,
		stats:     maps.Clone(t.stats),
	}
	for i := range t.elemental {
		c.elemental[i] = slices.Clone(t.elemental[i])
	}
	if c.stats == nil {
		c.stats = make(map[string]int)
	}
	return c
}

// Fold is the pure reducer: it returns t with c applied and leaves t untouched.
func Fold(t Totals, c Contribution) Totals {
	next := t.Clone()
	next.add(c)
	return next
}

// Accumulate folds every contribution into a copy of base.
func Accumulate(base Totals, cs []Contribution) Totals {
	next := base.Clone()
	for _, c := range cs {
		next.add(c)
	}
	return next
}

func insertSorted(s []float64, v float64) []float64 {
	i := sort.SearchFloat64s(s, v)
	return slices.Insert(s, i, v)
}

func (t *Totals) add(c Contribution) {
	if c.Value == 0 || math.IsNaN(c.Value) || math.IsInf(c.Value, 0) {
		return
	}

	switch c.Kind {
	case KindOverallDamage:
		t.overall = insertSorted(t.overall, c.Value)
	case KindCooldownReduction:
		t.cdr = insertSorted(t.cdr, c.Value)
	case KindCooldownRecovery:
		t.recovery = insertSorted(t.recovery, c.Value)
	case KindDamageValue:
		t.damage = insertSorted(t.damage, c.Value)
	case KindBuffPower:
		t.buffPower = insertSorted(t.buffPower, c.Value)
	case KindBuffPowerAmp:
		t.buffAmp = insertSorted(t.buffAmp, c.Value)
	case KindElemental:
		if c.Element < 0 || c.Element > model.ElementAll {
			return
		}
		t.elemental[c.Element] = insertSorted(t.elemental[c.Element], c.Value)
	case KindSkillLevel:
		if c.Slot < 0 || c.Slot >= model.BuffSlotCount {
			return
		}
		t.skill[c.Slot] += int(math.Round(c.Value))
	case KindStat:
		if c.Stat == "" {
			return
		}
		if t.stats == nil {
			t.stats = make(map[string]int)
		}
		t.stats[c.Stat] += int(math.Round(c.Value))
	}
}

func sum(s []float64) float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// OverallDamageMultiplier is Π(1 + pct/100), starting at 1.0.
func (t Totals) OverallDamageMultiplier() float64 {
	m := 1.0
	for _, v := range t.overall {
		m *= 1 + v/100
	}
	return m
}

// CooldownReductionMultiplier is Π(1 − pct/100), starting at 1.0.
func (t Totals) CooldownReductionMultiplier() float64 {
	m := 1.0
	for _, v := range t.cdr {
		m *= 1 - v/100
	}
	return m
}

func (t Totals) CooldownRecoverySum() float64 { return sum(t.recovery) }
func (t Totals) DamageValueSum() float64      { return sum(t.damage) }
func (t Totals) BuffPowerSum() float64        { return sum(t.buffPower) }
func (t Totals) BuffPowerAmpSum() float64     { return sum(t.buffAmp) }

// Elemental returns the raw bucket value: the floor plus gear for concrete
// elements, gear only for ElementAll. The All fold happens in the damage evaluator.
func (t Totals) Elemental(e model.Element) float64 {
	if e < 0 || e > model.ElementAll {
		return 0
	}
	v := sum(t.elemental[e])
	if e != model.ElementAll {
		v += ElementalFloor
	}
	return v
}

// SkillLevelBonus returns the summed level bonus of a buff slot.
func (t Totals) SkillLevelBonus(slot model.BuffSlot) int {
	if slot < 0 || slot >= model.BuffSlotCount {
		return 0
	}
	return t.skill[slot]
}

// Stat returns the running total of a raw stat.
func (t Totals) Stat(name string) int {
	return t.stats[name]
}

// Stats returns a copy of all stat totals.
func (t Totals) Stats() map[string]int {
	return maps.Clone(t.stats)
}
