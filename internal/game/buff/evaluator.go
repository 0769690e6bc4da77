// Package buff evaluates buff skill power for support jobs.
package buff

import (
	"github.com/udisondev/dfocalc/internal/data"
	"github.com/udisondev/dfocalc/internal/game/stat"
	"github.com/udisondev/dfocalc/internal/model"
)

// SlotResult is the evaluated bonus of one buff skill.
type SlotResult struct {
	Slot      string `json:"slot"`
	SkillName string `json:"skill_name"`
	Learned   bool   `json:"learned"`

	// Level is the resolved level after gear bonuses and table clamping.
	Level            int     `json:"level"`
	StatBonus        float64 `json:"stat_bonus"`
	AtkBonus         float64 `json:"atk_bonus,omitempty"`
	IncreasePercent  float64 `json:"increase_percent,omitempty"`
	AppliedStatName  string  `json:"applied_stat_name"`
	AppliedStatValue int     `json:"applied_stat_value"`
}

// Result is the full buff evaluation. Applicable is false for jobs that are
// not support jobs; Missing names an absent input.
type Result struct {
	Applicable bool   `json:"applicable"`
	Job        string `json:"job"`
	Missing    string `json:"missing,omitempty"`

	BuffPower       float64 `json:"buff_power"`
	SwitchBuffPower float64 `json:"switch_buff_power"`

	Main           SlotResult `json:"main"`
	FirstAwakening SlotResult `json:"first_awakening"`
	ThirdAwakening SlotResult `json:"third_awakening"`
	Aura           SlotResult `json:"aura"`
}

// Input is everything the buff formulas read.
type Input struct {
	Job model.Job

	// Worn drives the awakenings and the aura.
	Worn stat.Totals
	// Switched is Worn with buff-enhancement gear swapped in; drives the main buff.
	Switched stat.Totals

	// BaseLevels are the learned skill levels before gear bonuses.
	BaseLevels [model.BuffSlotCount]int
}

// NotApplicable is the result for damage dealers and unknown jobs.
func NotApplicable(job model.Job) Result {
	return Result{Job: job.String()}
}

// Incomplete is the result for a support job whose input lacks a required block.
func Incomplete(job model.Job, missing string) Result {
	return Result{Applicable: true, Job: job.String(), Missing: missing}
}

// EffectiveBuffPower is buff power scaled by buff power amplification.
func EffectiveBuffPower(t stat.Totals) float64 {
	return t.BuffPowerSum() * (1 + t.BuffPowerAmpSum()/100)
}

// Bonus is the shared buff formula:
//
//	coeff × ((stat + X) / (c + 1)) × (buffPower + Y) × Z
func Bonus(coeff, statValue, buffPower float64, k data.FormulaConstants) float64 {
	return coeff * ((statValue + k.X) / (k.C + 1)) * (buffPower + k.Y) * k.Z
}

// Evaluate computes all four buff slots.
func Evaluate(in Input) Result {
	if !in.Job.IsBuffer() {
		return NotApplicable(in.Job)
	}

	res := Result{
		Applicable:      true,
		Job:             in.Job.String(),
		BuffPower:       EffectiveBuffPower(in.Worn),
		SwitchBuffPower: EffectiveBuffPower(in.Switched),
	}

	res.Main = formulaSlot(in.Job, model.BuffMain, in.Switched, in.BaseLevels[model.BuffMain], res.SwitchBuffPower)

	res.FirstAwakening = formulaSlot(in.Job, model.BuffFirstAwakening, in.Worn, in.BaseLevels[model.BuffFirstAwakening], res.BuffPower)

	res.ThirdAwakening = newSlot(in.Job, model.BuffThirdAwakening, in.Worn)
	if lv := in.BaseLevels[model.BuffThirdAwakening] + in.Worn.SkillLevelBonus(model.BuffThirdAwakening); lv > 0 {
		if c, resolved, ok := data.BuffLevelTable(in.Job, model.BuffThirdAwakening).Lookup(lv); ok {
			res.ThirdAwakening.Learned = true
			res.ThirdAwakening.Level = resolved
			res.ThirdAwakening.IncreasePercent = c.Percent
			res.ThirdAwakening.StatBonus = res.FirstAwakening.StatBonus * c.Percent / 100
		}
	}

	res.Aura = newSlot(in.Job, model.BuffAura, in.Worn)
	if lv := in.BaseLevels[model.BuffAura] + in.Worn.SkillLevelBonus(model.BuffAura); lv > 0 {
		if c, resolved, ok := data.BuffLevelTable(in.Job, model.BuffAura).Lookup(lv); ok {
			res.Aura.Learned = true
			res.Aura.Level = resolved
			res.Aura.StatBonus = c.Stat
		}
	}

	return res
}

func newSlot(job model.Job, slot model.BuffSlot, t stat.Totals) SlotResult {
	name, value := data.ApplicableStat(job, t.Stats())
	return SlotResult{
		Slot:             slot.String(),
		SkillName:        data.SkillName(job, slot),
		AppliedStatName:  name,
		AppliedStatValue: value,
	}
}

// formulaSlot evaluates main or first awakening.
func formulaSlot(job model.Job, slot model.BuffSlot, t stat.Totals, base int, buffPower float64) SlotResult {
	res := newSlot(job, slot, t)

	level := base + t.SkillLevelBonus(slot)
	// The first awakening reports one level below its effective level.
	if slot == model.BuffFirstAwakening && base != 0 {
		level++
	}
	if level < 1 {
		return res
	}

	k, ok := data.Constants(job, slot)
	if !ok {
		return res
	}
	c, resolved, ok := data.BuffLevelTable(job, slot).Lookup(level)
	if !ok {
		return res
	}

	res.Learned = true
	res.Level = resolved
	statValue := float64(res.AppliedStatValue)
	res.StatBonus = Bonus(c.Stat, statValue, buffPower, k)
	if slot == model.BuffMain {
		res.AtkBonus = Bonus(c.Atk, statValue, buffPower, k)
	}
	return res
}
