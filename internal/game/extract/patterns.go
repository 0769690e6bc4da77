package extract

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/udisondev/dfocalc/internal/data"
	"github.com/udisondev/dfocalc/internal/game/stat"
	"github.com/udisondev/dfocalc/internal/model"
)

// TextContext carries what a free-text line cannot know on its own.
type TextContext struct {
	Source string
	Job    model.Job

	// Engrave is added to the raw percent of overall-damage patterns.
	Engrave float64

	// Reinforce of the host item; only set for fusion stone text.
	Reinforce    int
	HasReinforce bool
}

// Pattern groups. Within one line only the first matching pattern of a group
// is used, in table order.
const (
	groupOverall   = "overall"
	groupCooldown  = "cooldown-reduction"
	groupBuffPower = "buff-power"
)

// pattern is one row of the free-text table.
//
// build receives every submatch slice of the line (one slice unless all is
// set) and returns false when the captured text turns out to be malformed.
type pattern struct {
	name  string
	re    *regexp.Regexp
	group string
	all   bool
	halt  bool
	build func(ms [][]string, ctx TextContext) ([]stat.Contribution, bool)
}

// patternTable is consulted top to bottom for each line.
var patternTable = []pattern{
	{
		// Fusion stone set: reinforce above +10 adds up to 2% overall damage,
		// the rest of the text block describes the same effect.
		name: "sensory satisfaction",
		re:   regexp.MustCompile(`sensory satisfaction`),
		halt: true,
		build: func(_ [][]string, ctx TextContext) ([]stat.Contribution, bool) {
			if !ctx.HasReinforce {
				return nil, false
			}
			bonus := min(max(ctx.Reinforce-10, 0), 2)
			if bonus == 0 {
				return nil, true
			}
			return []stat.Contribution{stat.OverallDamage(float64(bonus), ctx.Source)}, true
		},
	},
	{
		name:  "overall damage",
		re:    regexp.MustCompile(`overall damage[^\n\d]*\+([\d.]+)%`),
		group: groupOverall,
		build: func(ms [][]string, ctx TextContext) ([]stat.Contribution, bool) {
			v, ok := number(ms[0][1])
			if !ok {
				return nil, false
			}
			return []stat.Contribution{stat.OverallDamage(ctx.Engrave+v, ctx.Source)}, true
		},
	},
	{
		// N% chance to reset a cooldown: expected casts grow by 1/(1-p).
		name:  "chance cooldown reset",
		re:    regexp.MustCompile(`(\d+(?:\.\d+)?)% chance.*?reset.*cooldown`),
		group: groupOverall,
		build: func(ms [][]string, ctx TextContext) ([]stat.Contribution, bool) {
			chance, ok := number(ms[0][1])
			if !ok || chance >= 100 {
				return nil, false
			}
			p := chance / 100
			return []stat.Contribution{stat.OverallDamage(ctx.Engrave+(1/(1-p)-1)*100, ctx.Source)}, true
		},
	},
	{
		name:  "chance skill atk",
		re:    regexp.MustCompile(`(\d+(?:\.\d+)?)% chance.*?skill atk\. \+(\d+(?:\.\d+)?)%`),
		group: groupOverall,
		build: func(ms [][]string, ctx TextContext) ([]stat.Contribution, bool) {
			chance, ok1 := number(ms[0][1])
			bonus, ok2 := number(ms[0][2])
			if !ok1 || !ok2 {
				return nil, false
			}
			return []stat.Contribution{stat.OverallDamage(ctx.Engrave+chance/100*bonus, ctx.Source)}, true
		},
	},
	{
		name: "damage value",
		re:   regexp.MustCompile(`damage value\s*\+\s*([\d,.]+)`),
		build: func(ms [][]string, ctx TextContext) ([]stat.Contribution, bool) {
			v, ok := number(ms[0][1])
			if !ok {
				return nil, false
			}
			return []stat.Contribution{stat.DamageValue(v, ctx.Source)}, true
		},
	},
	{
		name: "cooldown recovery",
		re:   regexp.MustCompile(`cooldown recovery(?: speed)?\s*\+\s*([\d.]+)%`),
		build: func(ms [][]string, ctx TextContext) ([]stat.Contribution, bool) {
			v, ok := number(ms[0][1])
			if !ok {
				return nil, false
			}
			return []stat.Contribution{stat.CooldownRecovery(v, ctx.Source)}, true
		},
	},
	{
		name:  "cooldown reduction",
		re:    regexp.MustCompile(`cooldown reduction\s*\+\s*([\d.]+)%`),
		group: groupCooldown,
		build: cooldownReduction,
	},
	{
		name:  "skill cooldown",
		re:    regexp.MustCompile(`skill cooldown\s*-\s*([\d.]+)%`),
		group: groupCooldown,
		build: cooldownReduction,
	},
	{
		name: "elemental damage",
		re:   regexp.MustCompile(`((?:(?:fire|water|light|shadow)(?:\s*,\s*|\s*/\s*|\s+and\s+))*(?:fire|water|light|shadow|all))\s+element[a-z]*(?:\s+(?:damage|dmg))?\s*\+\s*([\d.]+)`),
		all:  true,
		build: func(ms [][]string, ctx TextContext) ([]stat.Contribution, bool) {
			var out []stat.Contribution
			for _, m := range ms {
				v, ok := number(m[2])
				if !ok {
					continue
				}
				for _, e := range elementsIn(m[1]) {
					out = append(out, stat.Elemental(e, v, ctx.Source))
				}
			}
			return out, len(out) > 0
		},
	},
	{
		name:  "buff power amp",
		re:    regexp.MustCompile(`buff power amp(?:lification|\.)?\s*\+\s*([\d.]+)%`),
		group: groupBuffPower,
		build: func(ms [][]string, ctx TextContext) ([]stat.Contribution, bool) {
			v, ok := number(ms[0][1])
			if !ok {
				return nil, false
			}
			return []stat.Contribution{stat.BuffPowerAmp(v, ctx.Source)}, true
		},
	},
	{
		name:  "buff power",
		re:    regexp.MustCompile(`buff power\s*\+\s*([\d,]+)`),
		group: groupBuffPower,
		build: func(ms [][]string, ctx TextContext) ([]stat.Contribution, bool) {
			v, ok := number(ms[0][1])
			if !ok {
				return nil, false
			}
			return []stat.Contribution{stat.BuffPower(v, ctx.Source)}, true
		},
	},
	{
		name: "raw stat",
		re:   regexp.MustCompile(`(strength|intelligence|vitality|spirit|all stats)\s*\+\s*([\d,]+)\s*(%?)`),
		all:  true,
		build: func(ms [][]string, ctx TextContext) ([]stat.Contribution, bool) {
			var out []stat.Contribution
			for _, m := range ms {
				if m[3] == "%" {
					continue
				}
				v, ok := number(m[2])
				if !ok {
					continue
				}
				out = append(out, rawStat(m[1], v, ctx.Source)...)
			}
			return out, len(out) > 0
		},
	},
	{
		name: "skill level range",
		re:   regexp.MustCompile(`lv\.\s*(\d+)(?:\s*[-~–]\s*(\d+))?\s+(?:all\s+)?(?:(?:buff|active)\s+)?skills?\s*(?:levels?|lv\.?)?\s*\+\s*(\d+)\s*(%?)`),
		build: func(ms [][]string, ctx TextContext) ([]stat.Contribution, bool) {
			m := ms[0]
			if m[4] == "%" {
				return nil, false
			}
			lo, err1 := strconv.Atoi(m[1])
			hi := lo
			var err2 error
			if m[2] != "" {
				hi, err2 = strconv.Atoi(m[2])
			}
			bonus, err3 := strconv.Atoi(m[3])
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, false
			}
			return skillLevelRange(lo, hi, bonus, ctx), true
		},
	},
	{
		name: "platinum emblem",
		re:   regexp.MustCompile(`platinum emblem\s*\[([^\]]+)\]`),
		build: func(ms [][]string, ctx TextContext) ([]stat.Contribution, bool) {
			slot, ok := data.SlotForSkill(ctx.Job, ms[0][1])
			if !ok {
				return nil, true
			}
			return []stat.Contribution{stat.SkillLevel(slot, 1, ctx.Source)}, true
		},
	},
}

func cooldownReduction(ms [][]string, ctx TextContext) ([]stat.Contribution, bool) {
	v, ok := number(ms[0][1])
	if !ok {
		return nil, false
	}
	return []stat.Contribution{stat.CooldownReduction(v, ctx.Source)}, true
}

func number(s string) (float64, bool) {
	return model.ParseNumber(strings.TrimRight(s, "."))
}

var elementWords = []struct {
	word    string
	element model.Element
}{
	{"fire", model.ElementFire},
	{"water", model.ElementWater},
	{"light", model.ElementLight},
	{"shadow", model.ElementShadow},
	{"all", model.ElementAll},
}

func elementsIn(list string) []model.Element {
	var out []model.Element
	for _, w := range elementWords {
		if strings.Contains(list, w.word) {
			out = append(out, w.element)
		}
	}
	return out
}

// rawStat maps a folded stat word to StatFlat contributions; "all stats" fans out.
func rawStat(word string, v float64, source string) []stat.Contribution {
	switch word {
	case "all stats":
		out := make([]stat.Contribution, 0, len(model.RawStats))
		for _, name := range model.RawStats {
			out = append(out, stat.Flat(name, v, source))
		}
		return out
	case "strength":
		return []stat.Contribution{stat.Flat(model.StatStrength, v, source)}
	case "intelligence":
		return []stat.Contribution{stat.Flat(model.StatIntelligence, v, source)}
	case "vitality":
		return []stat.Contribution{stat.Flat(model.StatVitality, v, source)}
	case "spirit":
		return []stat.Contribution{stat.Flat(model.StatSpirit, v, source)}
	default:
		return nil
	}
}

// skillLevelRange routes "Lv.lo-hi skills +bonus" to every buff slot whose
// required level lies inside the range. Damage dealers get nothing.
func skillLevelRange(lo, hi, bonus int, ctx TextContext) []stat.Contribution {
	if !ctx.Job.IsBuffer() || bonus == 0 {
		return nil
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	var out []stat.Contribution
	for slot := model.BuffSlot(0); slot < model.BuffSlotCount; slot++ {
		req := data.BuffSlotRequiredLevel[slot]
		if req >= lo && req <= hi {
			out = append(out, stat.SkillLevel(slot, bonus, ctx.Source))
		}
	}
	return out
}

// ScanText runs every line of text through the pattern table.
func ScanText(text string, ctx TextContext) []stat.Contribution {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var out []stat.Contribution
	for _, line := range strings.Split(model.Fold(text), "\n") {
		cs, halt := scanLine(line, ctx)
		out = append(out, cs...)
		if halt {
			break
		}
	}
	return out
}

func scanLine(line string, ctx TextContext) ([]stat.Contribution, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	var (
		out     []stat.Contribution
		matched = make(map[string]bool, 3)
	)
	for i := range patternTable {
		p := &patternTable[i]
		if p.group != "" && matched[p.group] {
			continue
		}

		var ms [][]string
		if p.all {
			ms = p.re.FindAllStringSubmatch(line, -1)
		} else if m := p.re.FindStringSubmatch(line); m != nil {
			ms = [][]string{m}
		}
		if len(ms) == 0 {
			continue
		}

		cs, ok := p.build(ms, ctx)
		if !ok {
			slog.Debug("skipping malformed text", "source", ctx.Source, "pattern", p.name, "line", line)
			continue
		}
		if p.group != "" {
			matched[p.group] = true
		}
		out = append(out, cs...)
		if p.halt {
			return out, true
		}
	}
	return out, false
}
