package data

import "github.com/udisondev/dfocalc/internal/model"

// FormulaConstants are the {c, X, Y, Z} constants of the shared buff formula:
//
//	bonus = coeff × ((stat + X) / (c + 1)) × (buffPower + Y) × Z
type FormulaConstants struct {
	C float64
	X float64
	Y float64
	Z float64
}

var (
	crusaderMainConstants  = FormulaConstants{C: 620, X: 4348, Y: 3488, Z: 0.000357}
	magicalMainConstants   = FormulaConstants{C: 665, X: 4350, Y: 3500, Z: 0.000379}
	firstAwakeningConstant = FormulaConstants{C: 750, X: 5250, Y: 5000, Z: 0.000025}
)

// Constants returns the formula constants of a job's slot.
// Only main and first awakening use the formula; other slots return false.
func Constants(job model.Job, slot model.BuffSlot) (FormulaConstants, bool) {
	if !job.IsBuffer() {
		return FormulaConstants{}, false
	}
	switch slot {
	case model.BuffMain:
		if job == model.JobCrusaderM || job == model.JobCrusaderF {
			return crusaderMainConstants, true
		}
		return magicalMainConstants, true
	case model.BuffFirstAwakening:
		return firstAwakeningConstant, true
	default:
		return FormulaConstants{}, false
	}
}
