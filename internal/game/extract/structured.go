package extract

import (
	"log/slog"
	"strings"

	"github.com/udisondev/dfocalc/internal/game/stat"
	"github.com/udisondev/dfocalc/internal/model"
)

// structuredRule maps a name keyword to a contribution constructor.
// Rules are checked in order, so "buff power amp" precedes "buff power".
type structuredRule struct {
	keyword string
	build   func(v float64, source string) []stat.Contribution
}

func one(f func(float64, string) stat.Contribution) func(float64, string) []stat.Contribution {
	return func(v float64, source string) []stat.Contribution {
		return []stat.Contribution{f(v, source)}
	}
}

func flatStat(name string) func(float64, string) []stat.Contribution {
	return func(v float64, source string) []stat.Contribution {
		return []stat.Contribution{stat.Flat(name, v, source)}
	}
}

var structuredRules = []structuredRule{
	{"damage value", one(stat.DamageValue)},
	{"cooldown reduction", one(stat.CooldownReduction)},
	{"cooldown recovery", one(stat.CooldownRecovery)},
	{"overall damage", one(stat.OverallDamage)},
	{"buff power amp", one(stat.BuffPowerAmp)},
	{"buff power", one(stat.BuffPower)},
	{"all stats", func(v float64, source string) []stat.Contribution { return rawStat("all stats", v, source) }},
	{"strength", flatStat(model.StatStrength)},
	{"intelligence", flatStat(model.StatIntelligence)},
	{"vitality", flatStat(model.StatVitality)},
	{"spirit", flatStat(model.StatSpirit)},
}

// elementOf resolves an elemental stat name ("Light Element Enhancement").
// Resistances are not damage.
func elementOf(folded string) (model.Element, bool) {
	if !strings.Contains(folded, "element") || strings.Contains(folded, "resist") {
		return 0, false
	}
	if strings.Contains(folded, "all element") {
		return model.ElementAll, true
	}
	for _, w := range elementWords[:4] {
		if strings.Contains(folded, w.word) {
			return w.element, true
		}
	}
	return 0, false
}

// StructuredEntry converts one name/value pair. Names that match no rule are
// retried as free text (skill level lines often arrive as a stat name);
// numbers that do not parse are skipped.
func StructuredEntry(e model.StatEntry, ctx TextContext) []stat.Contribution {
	name := model.Fold(strings.TrimSpace(e.Name))
	if name == "" {
		return nil
	}

	v, ok := e.Number()
	if !ok {
		if cs := ScanText(e.Name+" "+e.Value, ctx); len(cs) > 0 {
			return cs
		}
		slog.Debug("skipping malformed entry", "source", ctx.Source, "name", e.Name, "value", e.Value)
		return nil
	}

	if el, ok := elementOf(name); ok {
		return []stat.Contribution{stat.Elemental(el, v, ctx.Source)}
	}
	for _, r := range structuredRules {
		if strings.Contains(name, r.keyword) {
			return r.build(v, ctx.Source)
		}
	}
	return ScanText(e.Name+" "+e.Value, ctx)
}

// Structured converts a whole entry list.
func Structured(entries []model.StatEntry, ctx TextContext) []stat.Contribution {
	var out []stat.Contribution
	for _, e := range entries {
		out = append(out, StructuredEntry(e, ctx)...)
	}
	return out
}
