// Package extract turns raw item data into stat.Contribution values.
//
// Two lanes feed the same currency: structured name/value lists (itemStatus,
// enchant, tune, set status) and free text matched against a declarative
// pattern table (explain details, fusion options, avatar options, emblems).
package extract

import (
	"strings"

	"github.com/udisondev/dfocalc/internal/data"
	"github.com/udisondev/dfocalc/internal/game/stat"
	"github.com/udisondev/dfocalc/internal/model"
)

const statSkillCooldown = "Skill Cooldown Reduction"

func source(kind, name string) string {
	return "[" + kind + "] " + name
}

// Item extracts every contribution of one equipped item.
func Item(it *model.EquippedItem, job model.Job) []stat.Contribution {
	if it == nil {
		return nil
	}

	var out []stat.Contribution

	// Items whose buff explain already describes a skill cooldown carry the
	// same bonus twice: once as a stat, once in the text.
	ctx := TextContext{Source: source("ITEM", it.ItemName), Job: job}
	status := it.ItemStatus
	if strings.Contains(model.Fold(it.ItemBuffExplain), "skill cooldown") {
		status = withoutStat(status, statSkillCooldown)
	}
	out = append(out, Structured(status, ctx)...)

	out = append(out, ScanText(it.ItemExplainDetail, TextContext{
		Source: source("ITEM_DETAIL", it.ItemName),
		Job:    job,
	})...)

	out = append(out, fusion(it, job)...)

	if it.Tune != nil {
		out = append(out, Structured(it.Tune.Status, TextContext{Source: source("TUNE", it.ItemName), Job: job})...)
	}
	if it.Enchant != nil {
		out = append(out, enchant(it.Enchant, it.ItemName, job)...)
	}

	if bonus := ReinforceBonus(it); bonus > 0 {
		out = append(out, stat.OverallDamage(bonus, source("REINFORCE", it.ItemName)))
	}

	out = append(out, emblems(it.Emblems, it.ItemName, job)...)
	return out
}

// Equipment extracts every worn item. The secondary weapon only matters for
// its owner's job change, not for damage, and is skipped.
func Equipment(items []model.EquippedItem, job model.Job) []stat.Contribution {
	var out []stat.Contribution
	for i := range items {
		if items[i].SlotName == model.SlotSecondaryWeapon {
			continue
		}
		out = append(out, Item(&items[i], job)...)
	}
	return out
}

// fusion scans fusion options. An eternal fragment keeps the item's own
// options; a fusion stone brings its options and the host's engraving.
func fusion(it *model.EquippedItem, job model.Job) []stat.Contribution {
	up := it.Upgrade
	if up == nil || up.ItemID == "" {
		return nil
	}

	var out []stat.Contribution
	if strings.Contains(model.Fold(up.ItemName), "eternal fragment") {
		ctx := TextContext{Source: source("FUSION", it.ItemName), Job: job}
		for _, opt := range it.FusionOptions {
			out = append(out, ScanText(opt.Text(), ctx)...)
		}
		return out
	}

	ctx := TextContext{
		Source:       source("FUSION_STONE", up.ItemName),
		Job:          job,
		Engrave:      EngraveBonus(it.FusionOptions),
		Reinforce:    it.Reinforce,
		HasReinforce: true,
	}
	for _, opt := range up.Options {
		out = append(out, ScanText(opt.Text(), ctx)...)
	}
	return out
}

func enchant(e *model.Enchant, itemName string, job model.Job) []stat.Contribution {
	ctx := TextContext{Source: source("ENCHANT", itemName), Job: job}
	out := Structured(e.Status, ctx)
	out = append(out, ScanText(e.Explain, ctx)...)
	for _, rs := range e.ReinforceSkill {
		if slot, ok := data.SlotForSkill(job, rs.Name); ok && rs.Level != 0 {
			out = append(out, stat.SkillLevel(slot, rs.Level, ctx.Source))
		}
	}
	return out
}

func emblems(es []model.Emblem, owner string, job model.Job) []stat.Contribution {
	var out []stat.Contribution
	for _, e := range es {
		out = append(out, ScanText(e.ItemName, TextContext{Source: source("EMBLEM", owner), Job: job})...)
	}
	return out
}

func withoutStat(entries []model.StatEntry, name string) []model.StatEntry {
	out := make([]model.StatEntry, 0, len(entries))
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Avatar extracts an avatar's stats, option ability and emblems.
// Damage dealers read the item record of the aura avatar only; support jobs
// read every slot, since buff swaps compare per-slot stats.
func Avatar(a *model.Avatar, job model.Job) []stat.Contribution {
	if a == nil {
		return nil
	}
	ctx := TextContext{Source: source("AVATAR", a.SlotName), Job: job}
	var out []stat.Contribution
	if a.SlotName == model.SlotAuraAvatar || job.IsBuffer() {
		out = Structured(a.ItemStatus, ctx)
	}
	if a.SlotName == model.SlotAuraAvatar {
		out = append(out, ScanText(a.ItemExplainDetail, ctx)...)
	}
	out = append(out, ScanText(a.OptionAbility, ctx)...)
	out = append(out, emblems(a.Emblems, a.SlotName, job)...)
	return out
}

// Avatars extracts every avatar slot.
func Avatars(as []model.Avatar, job model.Job) []stat.Contribution {
	var out []stat.Contribution
	for i := range as {
		out = append(out, Avatar(&as[i], job)...)
	}
	return out
}

// Aux extracts a creature, insignia or any of their children (artifacts, gems).
func Aux(a *model.AuxItem, kind string, job model.Job) []stat.Contribution {
	if a == nil {
		return nil
	}
	out := Structured(a.ItemStatus, TextContext{Source: source(kind, a.ItemName), Job: job})
	for i := range a.Children {
		out = append(out, Aux(&a.Children[i], kind, job)...)
	}
	return out
}

// Snapshot is the set-independent contribution stream of a snapshot:
// equipment, avatars, creature with artifacts, insignia with gems.
func Snapshot(snap *model.EquipmentSnapshot, job model.Job) []stat.Contribution {
	var cs []stat.Contribution
	cs = append(cs, Equipment(snap.Equipment, job)...)
	cs = append(cs, Avatars(snap.Avatars, job)...)
	cs = append(cs, Aux(snap.Creature, "CREATURE", job)...)
	cs = append(cs, Aux(snap.Insignia, "INSIGNIA", job)...)
	return cs
}
