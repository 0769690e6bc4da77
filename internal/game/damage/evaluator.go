// Package damage evaluates the damage formula from aggregated totals.
package damage

import (
	"math"

	"github.com/udisondev/dfocalc/internal/game/stat"
	"github.com/udisondev/dfocalc/internal/model"
)

const (
	elementalBase  = 1.05
	elementalSlope = 0.0045

	// MinCooldownMultiplier caps how far cooldowns can shrink.
	MinCooldownMultiplier = 0.3

	dpsScale = 1000
)

// Result is one damage evaluation. Complete is false when a required input
// was missing; Missing names it and every number is zero.
type Result struct {
	Complete bool   `json:"complete"`
	Missing  string `json:"missing,omitempty"`

	FinalDamage         float64 `json:"finalDamage"`
	CooldownReduction   float64 `json:"cooldownReduction"`
	DPS                 float64 `json:"dps"`
	EffectiveCooldown   float64 `json:"effectiveCooldown"`
	ElementalMultiplier float64 `json:"elementalMultiplier"`
	MaxElemental        float64 `json:"maxElemental"`
	OverallMultiplier   float64 `json:"overallMultiplier"`
	DamageValue         float64 `json:"damageValue"`
}

// Incomplete returns the typed result for a missing input.
func Incomplete(missing string) Result {
	return Result{Missing: missing}
}

// Evaluate finalizes totals into a Result.
func Evaluate(t stat.Totals, atkAmp float64) Result {
	all := t.Elemental(model.ElementAll)
	maxElem := math.Inf(-1)
	for _, e := range model.ConcreteElements {
		maxElem = max(maxElem, t.Elemental(e)+all)
	}
	elemMul := elementalBase + elementalSlope*maxElem

	damageValue := t.DamageValueSum() * (1 + atkAmp/100)
	overall := t.OverallDamageMultiplier()
	final := damageValue * overall * elemMul

	eff := max(MinCooldownMultiplier, t.CooldownReductionMultiplier()*100/(100+t.CooldownRecoverySum()))

	return Result{
		Complete:            true,
		FinalDamage:         final,
		CooldownReduction:   (1 - eff) * 100,
		DPS:                 final / eff / dpsScale,
		EffectiveCooldown:   eff,
		ElementalMultiplier: elemMul,
		MaxElemental:        maxElem,
		OverallMultiplier:   overall,
		DamageValue:         damageValue,
	}
}

// Display is the rounded output view.
type Display struct {
	Complete          bool    `json:"complete"`
	Missing           string  `json:"missing,omitempty"`
	FinalDamage       int64   `json:"finalDamage"`
	CooldownReduction float64 `json:"cooldownReduction"`
	DPS               int64   `json:"dps"`
}

// Rounded returns the display view: integers for damage and dps, two
// decimals for the cooldown percent.
func (r Result) Rounded() Display {
	return Display{
		Complete:          r.Complete,
		Missing:           r.Missing,
		FinalDamage:       int64(math.Round(r.FinalDamage)),
		CooldownReduction: math.Round(r.CooldownReduction*100) / 100,
		DPS:               int64(math.Round(r.DPS)),
	}
}
