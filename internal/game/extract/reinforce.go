package extract

import (
	"strings"

	"github.com/udisondev/dfocalc/internal/model"
)

// engraveTiers is the overall damage % an engraving adds to the fusion
// option it sits on. Only gold engravings count.
var engraveTiers = map[int]float64{
	1: 0.3,
	2: 0.5,
	3: 1.5,
}

// EngraveBonus returns the bonus of the first gold engraving found.
func EngraveBonus(options []model.FusionOption) float64 {
	for _, opt := range options {
		for _, e := range opt.Engraves {
			if !strings.EqualFold(e.Color, "gold") {
				continue
			}
			if v, ok := engraveTiers[e.Value]; ok {
				return v
			}
		}
	}
	return 0
}

// ReinforceBonus is the overall damage % granted by reinforcement level.
//
// Plain reinforcement only pays on Earrings and Weapon from +12.
// Amplification pays on every slot from +10.
func ReinforceBonus(it *model.EquippedItem) float64 {
	r := it.Reinforce
	if it.Amplified() {
		if r < 10 {
			return 0
		}
		return 0.2 +
			0.2*float64(min(1, r-10)) +
			0.3*float64(max(0, min(2, r-11))) +
			0.2*float64(max(0, r-13))
	}

	if it.SlotName != model.SlotEarrings && it.SlotName != model.SlotWeapon {
		return 0
	}
	if r < 12 {
		return 0
	}
	return 0.4 +
		0.3*float64(min(2, r-12)) +
		0.2*float64(max(0, r-15))
}
