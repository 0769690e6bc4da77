// Package engine runs one evaluation call over an equipment snapshot.
//
// The job picks the pipeline: support jobs get the buff formulas, everyone
// else gets the damage formula in literal and normalized set mode. Evaluate
// performs no I/O and keeps no state between calls.
package engine

import (
	"log/slog"

	"github.com/udisondev/dfocalc/internal/data"
	"github.com/udisondev/dfocalc/internal/game/buff"
	"github.com/udisondev/dfocalc/internal/game/damage"
	"github.com/udisondev/dfocalc/internal/game/extract"
	"github.com/udisondev/dfocalc/internal/game/setbonus"
	"github.com/udisondev/dfocalc/internal/game/stat"
	"github.com/udisondev/dfocalc/internal/model"
)

// Pipeline names.
const (
	ModeDamage = "damage"
	ModeBuff   = "buff"
)

const missingStatus = "status"

// Options are the caller policies of one evaluation.
type Options struct {
	CleansingCDR bool
}

// DamageReport holds both damage modes side by side.
type DamageReport struct {
	Literal    damage.Result `json:"literal"`
	Normalized damage.Result `json:"normalized"`
	Display    DamageDisplay `json:"display"`
}

// DamageDisplay is the rounded view of both modes.
type DamageDisplay struct {
	Literal    damage.Display `json:"literal"`
	Normalized damage.Display `json:"normalized"`
}

// Report is the outcome of one evaluation call.
type Report struct {
	ServerID      string `json:"serverId"`
	CharacterID   string `json:"characterId"`
	CharacterName string `json:"characterName"`
	Fingerprint   string `json:"fingerprint,omitempty"`

	Job          string `json:"job"`
	Mode         string `json:"mode"`
	SetArchetype string `json:"setArchetype"`

	Damage *DamageReport `json:"damage,omitempty"`
	Buff   *buff.Result  `json:"buff,omitempty"`

	// Attribution lists every contribution of the primary pipeline
	// (literal mode for damage, worn plus switch delta for buff).
	Attribution []string `json:"attribution,omitempty"`
}

// Evaluate runs the pipeline that fits the snapshot's job.
func Evaluate(snap *model.EquipmentSnapshot, opts Options) Report {
	var buffSkill string
	if snap.Buff != nil {
		buffSkill = snap.Buff.SkillName
	}
	job := data.ClassifyJob(snap.Profile, buffSkill)

	rep := Report{
		ServerID:      snap.Profile.ServerID,
		CharacterID:   snap.Profile.CharacterID,
		CharacterName: snap.Profile.CharacterName,
		Fingerprint:   snap.Fingerprint,
		Job:           job.String(),
		SetArchetype:  model.SetArchetypeNone.String(),
	}
	if snap.Set != nil {
		rep.SetArchetype = snap.Set.Archetype.String()
	}

	if job.IsBuffer() {
		rep.Mode = ModeBuff
		res, cs := evaluateBuff(snap, job, opts)
		rep.Buff = &res
		rep.Attribution = attribution(cs)
		return rep
	}

	slog.Debug("evaluating as damage dealer", "character", snap.Profile.CharacterName, "job", snap.Profile.JobGrowName)
	rep.Mode = ModeDamage
	dr, cs := evaluateDamage(snap, opts)
	rep.Damage = &dr
	rep.Attribution = attribution(cs)
	return rep
}

func evaluateDamage(snap *model.EquipmentSnapshot, opts Options) (DamageReport, []stat.Contribution) {
	if snap.Status == nil {
		inc := damage.Incomplete(missingStatus)
		return DamageReport{
			Literal:    inc,
			Normalized: inc,
			Display:    DamageDisplay{Literal: inc.Rounded(), Normalized: inc.Rounded()},
		}, nil
	}

	// A status block without the entry means no amplification, not unknown.
	atkAmp, _ := snap.StatusValue(model.StatusAtkAmp)
	items := extract.Snapshot(snap, model.JobNone)

	run := func(average bool) (damage.Result, []stat.Contribution) {
		set := setbonus.Resolve(snap, model.JobNone, setbonus.Options{
			CleansingCDR:     opts.CleansingCDR,
			AverageSetDamage: average,
		})
		cs := make([]stat.Contribution, 0, len(items)+len(set.Contributions))
		cs = append(cs, set.Contributions...)
		cs = append(cs, items...)
		return damage.Evaluate(stat.Accumulate(stat.NewTotals(nil), cs), atkAmp), cs
	}

	literal, cs := run(false)
	normalized, _ := run(true)

	return DamageReport{
		Literal:    literal,
		Normalized: normalized,
		Display:    DamageDisplay{Literal: literal.Rounded(), Normalized: normalized.Rounded()},
	}, cs
}

func evaluateBuff(snap *model.EquipmentSnapshot, job model.Job, opts Options) (buff.Result, []stat.Contribution) {
	if snap.Status == nil {
		return buff.Incomplete(job, missingStatus), nil
	}

	set := setbonus.Resolve(snap, job, setbonus.Options{CleansingCDR: opts.CleansingCDR})
	wornCs := buff.WornContributions(snap, job, set.Contributions)
	switchCs := buff.SwitchContributions(snap, job)

	worn := stat.Accumulate(buff.Seed(snap), wornCs)
	switched := stat.Accumulate(worn, switchCs)

	res := buff.Evaluate(buff.Input{
		Job:        job,
		Worn:       worn,
		Switched:   switched,
		BaseLevels: buff.BaseLevels(snap, job),
	})
	return res, append(wornCs, switchCs...)
}

func attribution(cs []stat.Contribution) []string {
	if len(cs) == 0 {
		return nil
	}
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
