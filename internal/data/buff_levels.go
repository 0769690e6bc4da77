package data

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/dfocalc/internal/model"
)

//go:embed tables/buff_levels.yaml
var buffLevelsYAML []byte

// LevelCoeff is one row of a per-level buff table.
// Main tables fill Atk and Stat, aura and 1a tables only Stat, 3a only Percent.
type LevelCoeff struct {
	Atk     float64 `yaml:"atk"`
	Stat    float64 `yaml:"stat"`
	Percent float64 `yaml:"percent"`
}

// LevelTable maps skill level -> coefficients. Levels are contiguous from 1.
type LevelTable map[int]LevelCoeff

// MaxLevel returns the highest level present.
func (t LevelTable) MaxLevel() int {
	maxLv := 0
	for lv := range t {
		if lv > maxLv {
			maxLv = lv
		}
	}
	return maxLv
}

// Lookup resolves a level, clamping above the table's max.
// Levels below 1 are not learned and return false.
func (t LevelTable) Lookup(level int) (LevelCoeff, int, bool) {
	if level < 1 || len(t) == 0 {
		return LevelCoeff{}, 0, false
	}
	if maxLv := t.MaxLevel(); level > maxLv {
		level = maxLv
	}
	c, ok := t[level]
	return c, level, ok
}

type buffLevelFile struct {
	Main           map[string]LevelTable `yaml:"main"`
	Aura           map[string]LevelTable `yaml:"aura"`
	FirstAwakening LevelTable            `yaml:"first_awakening"`
	ThirdAwakening LevelTable            `yaml:"third_awakening"`
}

var (
	buffLevelsOnce sync.Once
	buffLevels     buffLevelFile
	buffLevelsErr  error
)

var jobTableKeys = map[model.Job]string{
	model.JobCrusaderM:   "crusader_m",
	model.JobCrusaderF:   "crusader_f",
	model.JobEnchantress: "enchantress",
	model.JobMuse:        "muse",
}

// LoadBuffLevels decodes the embedded level tables. Safe to call repeatedly.
func LoadBuffLevels() error {
	buffLevelsOnce.Do(func() {
		if err := yaml.Unmarshal(buffLevelsYAML, &buffLevels); err != nil {
			buffLevelsErr = fmt.Errorf("parsing buff level tables: %w", err)
			return
		}
		for job, key := range jobTableKeys {
			if len(buffLevels.Main[key]) == 0 {
				buffLevelsErr = fmt.Errorf("main buff table for %s is empty", job)
				return
			}
		}
	})
	return buffLevelsErr
}

// BuffLevelTable returns the per-level table of a job's slot.
// Returns nil for damage dealers or when the embedded tables are broken.
func BuffLevelTable(job model.Job, slot model.BuffSlot) LevelTable {
	if err := LoadBuffLevels(); err != nil {
		return nil
	}
	key, ok := jobTableKeys[job]
	if !ok {
		return nil
	}

	switch slot {
	case model.BuffMain:
		return buffLevels.Main[key]
	case model.BuffFirstAwakening:
		return buffLevels.FirstAwakening
	case model.BuffThirdAwakening:
		return buffLevels.ThirdAwakening
	case model.BuffAura:
		// Only Crusader (M) has its own aura table.
		if t, ok := buffLevels.Aura[key]; ok {
			return t
		}
		return buffLevels.Aura["common"]
	default:
		return nil
	}
}
