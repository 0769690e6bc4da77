package model

// Job is the closed set of support jobs the buff pipeline understands.
// Every other character is a damage dealer (JobNone).
type Job int8

const (
	JobNone Job = iota
	JobCrusaderM
	JobCrusaderF
	JobEnchantress
	JobMuse
)

// String returns the job code.
func (j Job) String() string {
	switch j {
	case JobCrusaderM:
		return "M_SADER"
	case JobCrusaderF:
		return "F_SADER"
	case JobEnchantress:
		return "ENCHANTRESS"
	case JobMuse:
		return "MUSE"
	default:
		return "NONE"
	}
}

// IsBuffer reports whether the job runs the buff pipeline.
func (j Job) IsBuffer() bool {
	return j != JobNone
}

// BuffSlot is one of the four buff skill tiers of a support job.
type BuffSlot int8

const (
	BuffMain BuffSlot = iota
	BuffFirstAwakening
	BuffThirdAwakening
	BuffAura

	BuffSlotCount
)

// String returns the short slot key used in output.
func (s BuffSlot) String() string {
	switch s {
	case BuffMain:
		return "main"
	case BuffFirstAwakening:
		return "1a"
	case BuffThirdAwakening:
		return "3a"
	case BuffAura:
		return "aura"
	default:
		return "unknown"
	}
}

// Element is an elemental damage bucket. ElementAll is synthetic and is
// folded into each concrete element at finalization.
type Element int8

const (
	ElementFire Element = iota
	ElementWater
	ElementLight
	ElementShadow
	ElementAll
)

// ConcreteElements lists the four real elements in evaluation order.
var ConcreteElements = [...]Element{ElementFire, ElementWater, ElementLight, ElementShadow}

// String returns the element label.
func (e Element) String() string {
	switch e {
	case ElementFire:
		return "Fire"
	case ElementWater:
		return "Water"
	case ElementLight:
		return "Light"
	case ElementShadow:
		return "Shadow"
	case ElementAll:
		return "All"
	default:
		return "Unknown"
	}
}

// Raw stat names used by status and item entries.
const (
	StatStrength     = "Strength"
	StatIntelligence = "Intelligence"
	StatVitality     = "Vitality"
	StatSpirit       = "Spirit"
)

// RawStats is the ordered list of the four raw stats.
var RawStats = [...]string{StatStrength, StatIntelligence, StatVitality, StatSpirit}
