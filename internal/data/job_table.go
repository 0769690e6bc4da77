package data

import (
	"strings"

	"github.com/udisondev/dfocalc/internal/model"
)

// jobDef is one canonical row of the support-job table.
// growKeyword must appear in jobGrowName; an empty grow name falls back to the jobId alone.
type jobDef struct {
	job         model.Job
	jobID       string
	jobName     string
	growKeyword string
	skills      [model.BuffSlotCount]string
}

// JobTable is the single source of truth for support jobs.
// One row per job; TestJobTable checks uniqueness of ids and skill names.
var JobTable = []jobDef{
	{
		job:         model.JobCrusaderM,
		jobID:       "d1b9435b94e0944517625577549414e9",
		jobName:     "Priest (M)",
		growKeyword: "crusader",
		skills:      [model.BuffSlotCount]string{"Divine Invocation", "Apocalypse", "The Day of Judgment", "Guardian's Blessing"},
	},
	{
		job:         model.JobCrusaderF,
		jobID:       "26a3934e889417de2b32454634281c60",
		jobName:     "Priest (F)",
		growKeyword: "crusader",
		skills:      [model.BuffSlotCount]string{"Valor Blessing", "Crux of Victoria", "Laus di Angelus", "Guardian's Blessing"},
	},
	{
		job:         model.JobEnchantress,
		jobID:       "5d21752b57f8648e1eda3f1a4e15ec4c",
		jobName:     "Mage (F)",
		growKeyword: "enchantress",
		skills:      [model.BuffSlotCount]string{"Forbidden Curse", "Marionette", "The Little Witch's Whimsy", "First Aid of Love"},
	},
	{
		job:         model.JobMuse,
		jobID:       "dbbdf2dd28072b26f22b77454d665f21",
		jobName:     "Archer",
		growKeyword: "muse",
		skills:      [model.BuffSlotCount]string{"Lovely Tempo", "On the Stage", "FINALE: Special Story", "Ad-lib"},
	},
}

// BuffSlotRequiredLevel is the character level at which each buff tier is learned.
// "Lv.N-M skill" bonuses reach a slot when its required level falls in N..M.
var BuffSlotRequiredLevel = [model.BuffSlotCount]int{
	model.BuffMain:           30,
	model.BuffFirstAwakening: 50,
	model.BuffThirdAwakening: 100,
	model.BuffAura:           48,
}

func jobDefFor(job model.Job) *jobDef {
	for i := range JobTable {
		if JobTable[i].job == job {
			return &JobTable[i]
		}
	}
	return nil
}

// ClassifyJob resolves the support job of a character.
// Order: jobId + grow name, then grow name + job name, then buff skill name.
// Returns model.JobNone for damage dealers.
func ClassifyJob(p model.Profile, buffSkillName string) model.Job {
	grow := model.Fold(p.JobGrowName)

	for _, def := range JobTable {
		if p.JobID != def.jobID {
			continue
		}
		if grow == "" || strings.Contains(grow, def.growKeyword) {
			return def.job
		}
	}

	if grow != "" {
		for _, def := range JobTable {
			if !strings.Contains(grow, def.growKeyword) {
				continue
			}
			// Crusader exists for both Priest jobs, the job name decides.
			if def.growKeyword == "crusader" && !strings.EqualFold(p.JobName, def.jobName) {
				continue
			}
			return def.job
		}
	}

	if buffSkillName != "" {
		for _, def := range JobTable {
			if strings.Contains(buffSkillName, def.skills[model.BuffMain]) {
				return def.job
			}
		}
	}

	return model.JobNone
}

// SkillName returns the skill name of a buff slot for a job, "" for unknown jobs.
func SkillName(job model.Job, slot model.BuffSlot) string {
	def := jobDefFor(job)
	if def == nil || slot < 0 || slot >= model.BuffSlotCount {
		return ""
	}
	return def.skills[slot]
}

// SlotForSkill finds the buff slot whose skill name matches name (case-insensitive).
func SlotForSkill(job model.Job, name string) (model.BuffSlot, bool) {
	def := jobDefFor(job)
	if def == nil {
		return 0, false
	}
	want := model.Fold(strings.TrimSpace(name))
	for slot, skill := range def.skills {
		if model.Fold(skill) == want {
			return model.BuffSlot(slot), true
		}
	}
	return 0, false
}

// ApplicableStat returns the stat that scales the job's buffs.
// Crusader (M) uses the greater of Vitality and Spirit.
func ApplicableStat(job model.Job, stats map[string]int) (string, int) {
	switch job {
	case model.JobCrusaderF, model.JobEnchantress:
		return model.StatIntelligence, stats[model.StatIntelligence]
	case model.JobMuse:
		return model.StatSpirit, stats[model.StatSpirit]
	case model.JobCrusaderM:
		vit, spi := stats[model.StatVitality], stats[model.StatSpirit]
		if vit > spi {
			return model.StatVitality, vit
		}
		return model.StatSpirit, spi
	default:
		return "", 0
	}
}
