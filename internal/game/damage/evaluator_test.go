package damage

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dfocalc/internal/game/stat"
	"github.com/udisondev/dfocalc/internal/model"
)

func TestEvaluate_Empty(t *testing.T) {
	t.Parallel()

	r := Evaluate(stat.NewTotals(nil), 0)

	require.True(t, r.Complete)
	assert.Equal(t, 1.0, r.OverallMultiplier)
	assert.InDelta(t, 1.1085, r.ElementalMultiplier, 1e-12)
	assert.Zero(t, r.FinalDamage)
	assert.Zero(t, r.DPS)
	assert.Equal(t, 1.0, r.EffectiveCooldown)
	assert.Zero(t, r.CooldownReduction)
}

func TestEvaluate_Formula(t *testing.T) {
	t.Parallel()

	totals := stat.Accumulate(stat.NewTotals(nil), []stat.Contribution{
		stat.DamageValue(1000, "a"),
		stat.OverallDamage(50, "b"),
		stat.Elemental(model.ElementLight, 20, "c"),
		stat.Elemental(model.ElementAll, 10, "d"),
		stat.CooldownReduction(20, "e"),
		stat.CooldownRecovery(25, "f"),
	})

	r := Evaluate(totals, 100)

	// light = 13 + 20 + 10
	assert.Equal(t, 43.0, r.MaxElemental)
	elem := 1.05 + 0.0045*43
	assert.InDelta(t, elem, r.ElementalMultiplier, 1e-12)
	assert.InDelta(t, 2000.0, r.DamageValue, 1e-9)
	assert.InDelta(t, 2000*1.5*elem, r.FinalDamage, 1e-6)

	// 0.8 * 100/125
	assert.InDelta(t, 0.64, r.EffectiveCooldown, 1e-12)
	assert.InDelta(t, 36.0, r.CooldownReduction, 1e-9)
	assert.InDelta(t, 2000*1.5*elem/0.64/1000, r.DPS, 1e-9)
}

func TestEvaluate_CooldownFloor(t *testing.T) {
	t.Parallel()

	cs := []stat.Contribution{stat.DamageValue(100, "x")}
	for range 20 {
		cs = append(cs, stat.CooldownReduction(30, "x"), stat.CooldownRecovery(50, "y"))
	}

	r := Evaluate(stat.Accumulate(stat.NewTotals(nil), cs), 0)
	assert.Equal(t, MinCooldownMultiplier, r.EffectiveCooldown)
	assert.InDelta(t, 70.0, r.CooldownReduction, 1e-9)
}

func TestEvaluate_Monotonic(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	for i := range 100 {
		base := stat.Accumulate(stat.NewTotals(nil), []stat.Contribution{
			stat.DamageValue(rng.Float64()*5000, "a"),
			stat.OverallDamage(rng.Float64()*100, "b"),
			stat.CooldownReduction(rng.Float64()*50, "c"),
			stat.Elemental(model.ElementFire, rng.Float64()*300, "d"),
		})
		before := Evaluate(base, rng.Float64()*50)

		pct := rng.Float64()*30 + 0.01

		more := stat.Fold(base, stat.OverallDamage(pct, "extra"))
		assert.GreaterOrEqual(t, Evaluate(more, 0).FinalDamage, Evaluate(base, 0).FinalDamage, "iteration %d", i)

		faster := stat.Fold(base, stat.CooldownReduction(pct, "extra"))
		assert.LessOrEqual(t, Evaluate(faster, 0).EffectiveCooldown, before.EffectiveCooldown, "iteration %d", i)
	}
}

func TestIncompleteAndRounded(t *testing.T) {
	t.Parallel()

	inc := Incomplete("status")
	assert.False(t, inc.Complete)
	assert.Equal(t, "status", inc.Missing)
	assert.Zero(t, inc.FinalDamage)

	r := Result{Complete: true, FinalDamage: 1234.56, CooldownReduction: 36.0049, DPS: 12.5}
	assert.Equal(t, Display{Complete: true, FinalDamage: 1235, CooldownReduction: 36, DPS: 13}, r.Rounded())
}
