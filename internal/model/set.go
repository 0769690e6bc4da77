package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s used for every keyword match.
// A Caser is stateful, so each call gets its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Rarity is the rarity tier of a set (or item).
type Rarity int8

const (
	RarityNone Rarity = iota
	RarityUnique
	RarityLegendary
	RarityEpic
	RarityPrimeval
)

// String returns the upstream rarity word.
func (r Rarity) String() string {
	switch r {
	case RarityUnique:
		return "Unique"
	case RarityLegendary:
		return "Legendary"
	case RarityEpic:
		return "Epic"
	case RarityPrimeval:
		return "Primeval"
	default:
		return "None"
	}
}

// Index is the 1-based tier index (unique=1 .. primeval=4); 0 for none.
func (r Rarity) Index() int {
	return int(r)
}

// RarityTier is a parsed setItemRarityName such as "Legendary III".
// Step is 1..5 for tiers that carry a roman step, 0 otherwise.
type RarityTier struct {
	Rarity Rarity
	Step   int
}

var romanSteps = map[string]int{"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5}

// ParseRarityTier parses "Unique", "Epic IV", "Primeval". Unknown words yield RarityNone.
func ParseRarityTier(name string) RarityTier {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return RarityTier{}
	}

	var tier RarityTier
	switch Fold(parts[0]) {
	case "unique":
		tier.Rarity = RarityUnique
	case "legendary":
		tier.Rarity = RarityLegendary
	case "epic":
		tier.Rarity = RarityEpic
	case "primeval":
		tier.Rarity = RarityPrimeval
	default:
		return RarityTier{}
	}
	if len(parts) > 1 {
		tier.Step = romanSteps[strings.ToUpper(parts[1])]
	}
	return tier
}

// SetArchetype tags set families whose bonus needs special-case logic.
type SetArchetype int8

const (
	SetArchetypeNone SetArchetype = iota
	SetArchetypeParadise
	SetArchetypeCleansing
	SetArchetypeEthereal
	SetArchetypeDragon
	SetArchetypeSerendipity
	SetArchetypePack
)

// String returns the archetype label used in diagnostics.
func (a SetArchetype) String() string {
	switch a {
	case SetArchetypeParadise:
		return "Paradise"
	case SetArchetypeCleansing:
		return "Cleansing"
	case SetArchetypeEthereal:
		return "Ethereal"
	case SetArchetypeDragon:
		return "Dragon"
	case SetArchetypeSerendipity:
		return "Serendipity"
	case SetArchetypePack:
		return "Pack"
	default:
		return "None"
	}
}

// archetypeKeywords is checked in order; the first hit wins, so one set name
// always maps to exactly one archetype.
var archetypeKeywords = []struct {
	keywords  []string
	archetype SetArchetype
}{
	{[]string{"paradise", "gold"}, SetArchetypeParadise},
	{[]string{"cleansing"}, SetArchetypeCleansing},
	{[]string{"ethereal"}, SetArchetypeEthereal},
	{[]string{"dragon"}, SetArchetypeDragon},
	{[]string{"serendipity"}, SetArchetypeSerendipity},
	{[]string{"pack"}, SetArchetypePack},
}

// ParseSetArchetype identifies the archetype by case-insensitive substring match.
func ParseSetArchetype(setName string) SetArchetype {
	name := Fold(setName)
	for _, entry := range archetypeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				return entry.archetype
			}
		}
	}
	return SetArchetypeNone
}

// SetItemInfo is setItemInfo[0] of the equipment response.
// Archetype and Tier are resolved once by NewSetItemInfo.
type SetItemInfo struct {
	Name       string       `json:"setItemName"`
	RarityName string       `json:"setItemRarityName"`
	Status     []StatEntry  `json:"status,omitempty"`
	Archetype  SetArchetype `json:"-"`
	Tier       RarityTier   `json:"-"`
}

// NewSetItemInfo builds a SetItemInfo and resolves archetype and tier.
func NewSetItemInfo(name, rarityName string, status []StatEntry) *SetItemInfo {
	return &SetItemInfo{
		Name:       name,
		RarityName: rarityName,
		Status:     status,
		Archetype:  ParseSetArchetype(name),
		Tier:       ParseRarityTier(rarityName),
	}
}
