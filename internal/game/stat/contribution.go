// Package stat holds the single currency every extraction path emits
// (Contribution) and the pure reducer that folds contributions into Totals.
package stat

import (
	"fmt"

	"github.com/udisondev/dfocalc/internal/model"
)

// Kind defines how a contribution combines into Totals.
type Kind int8

const (
	KindOverallDamage     Kind = iota // ×(1 + v/100)
	KindCooldownReduction             // ×(1 − v/100)
	KindCooldownRecovery              // additive percent
	KindDamageValue                   // additive flat
	KindElemental                     // additive per element
	KindSkillLevel                    // additive per buff slot
	KindStat                          // additive per raw stat
	KindBuffPower                     // additive flat
	KindBuffPowerAmp                  // additive percent
)

// String returns the kind label for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindOverallDamage:
		return "OverallDamagePercent"
	case KindCooldownReduction:
		return "CooldownReductionPercent"
	case KindCooldownRecovery:
		return "CooldownRecoveryPercent"
	case KindDamageValue:
		return "DamageValueFlat"
	case KindElemental:
		return "ElementalDamage"
	case KindSkillLevel:
		return "SkillLevelBonus"
	case KindStat:
		return "StatFlat"
	case KindBuffPower:
		return "BuffPowerFlat"
	case KindBuffPowerAmp:
		return "BuffPowerAmpPercent"
	default:
		return "Unknown"
	}
}

// Contribution is one typed modifier. Element, Slot and Stat are only
// meaningful for KindElemental, KindSkillLevel and KindStat respectively.
type Contribution struct {
	Kind    Kind
	Value   float64
	Element model.Element
	Slot    model.BuffSlot
	Stat    string
	Source  string
}

func (c Contribution) String() string {
	switch c.Kind {
	case KindElemental:
		return fmt.Sprintf("%s(%s)=%g [%s]", c.Kind, c.Element, c.Value, c.Source)
	case KindSkillLevel:
		return fmt.Sprintf("%s(%s)=%g [%s]", c.Kind, c.Slot, c.Value, c.Source)
	case KindStat:
		return fmt.Sprintf("%s(%s)=%g [%s]", c.Kind, c.Stat, c.Value, c.Source)
	default:
		return fmt.Sprintf("%s=%g [%s]", c.Kind, c.Value, c.Source)
	}
}

// Negate returns the contribution with its magnitude sign flipped.
// Only additive kinds can be negated meaningfully.
func (c Contribution) Negate() Contribution {
	c.Value = -c.Value
	return c
}

// Additive reports whether the kind combines by plain addition.
func (k Kind) Additive() bool {
	return k != KindOverallDamage && k != KindCooldownReduction
}

// Constructors keep call sites short in the extractor and resolver.

func OverallDamage(pct float64, source string) Contribution {
	return Contribution{Kind: KindOverallDamage, Value: pct, Source: source}
}

func CooldownReduction(pct float64, source string) Contribution {
	return Contribution{Kind: KindCooldownReduction, Value: pct, Source: source}
}

func CooldownRecovery(pct float64, source string) Contribution {
	return Contribution{Kind: KindCooldownRecovery, Value: pct, Source: source}
}

func DamageValue(v float64, source string) Contribution {
	return Contribution{Kind: KindDamageValue, Value: v, Source: source}
}

func Elemental(e model.Element, v float64, source string) Contribution {
	return Contribution{Kind: KindElemental, Element: e, Value: v, Source: source}
}

func SkillLevel(slot model.BuffSlot, levels int, source string) Contribution {
	return Contribution{Kind: KindSkillLevel, Slot: slot, Value: float64(levels), Source: source}
}

func Flat(statName string, v float64, source string) Contribution {
	return Contribution{Kind: KindStat, Stat: statName, Value: v, Source: source}
}

func BuffPower(v float64, source string) Contribution {
	return Contribution{Kind: KindBuffPower, Value: v, Source: source}
}

func BuffPowerAmp(pct float64, source string) Contribution {
	return Contribution{Kind: KindBuffPowerAmp, Value: pct, Source: source}
}
