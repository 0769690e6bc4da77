package data

import "github.com/udisondev/dfocalc/internal/model"

// averageSetDamage is the tier-agnostic overall damage % of a full set,
// indexed by rarity and step (I..V). Primeval has no steps.
var averageSetDamage = map[model.Rarity][]float64{
	model.RarityUnique:    {48.5, 68.3, 88.1, 107.9, 127.7},
	model.RarityLegendary: {184.6, 204.4, 224.2, 244.0, 263.8},
	model.RarityEpic:      {318.4, 338.2, 358.0, 377.8, 397.6},
	model.RarityPrimeval:  {447.4},
}

// AverageSetDamage returns the normalized set bonus for a tier.
// A tier with steps requires a valid step; Primeval ignores it.
func AverageSetDamage(tier model.RarityTier) (float64, bool) {
	row, ok := averageSetDamage[tier.Rarity]
	if !ok {
		return 0, false
	}
	if len(row) == 1 {
		return row[0], true
	}
	if tier.Step < 1 || tier.Step > len(row) {
		return 0, false
	}
	return row[tier.Step-1], true
}
