package model

import (
	"strconv"
	"strings"
)

// Slot names as reported by the upstream equipment endpoint.
const (
	SlotWeapon          = "Weapon"
	SlotSecondaryWeapon = "Secondary Weapon"
	SlotEarrings        = "Earrings"
	SlotAuraAvatar      = "Aura Avatar"
)

// StatEntry is one name/value pair from an itemStatus, enchant or tune list.
// Value keeps the raw upstream text: "1,234", "12%", "35.5".
type StatEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Number parses Value leniently: strips "%", thousands separators and spaces.
// Returns false for anything that is still not a number.
func (s StatEntry) Number() (float64, bool) {
	return ParseNumber(s.Value)
}

// ParseNumber is the lenient numeric parser shared by every structured lane.
func ParseNumber(raw string) (float64, bool) {
	v := strings.TrimSpace(raw)
	v = strings.ReplaceAll(v, "%", "")
	v = strings.ReplaceAll(v, ",", "")
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Engrave is an engraving attached to a fusion option.
type Engrave struct {
	Color string `json:"color"`
	Value int    `json:"value"`
}

// FusionOption is one line of fusionOption.options.
type FusionOption struct {
	Explain       string    `json:"explain"`
	ExplainDetail string    `json:"explainDetail"`
	Engraves      []Engrave `json:"engrave,omitempty"`
}

// Text returns explainDetail, falling back to explain.
func (o FusionOption) Text() string {
	if o.ExplainDetail != "" {
		return o.ExplainDetail
	}
	return o.Explain
}

// UpgradeInfo references the fusion stone (or eternal fragment) applied to an item.
// Options are the stone's own fusion options, resolved by the fetch layer.
type UpgradeInfo struct {
	ItemID   string         `json:"itemId"`
	ItemName string         `json:"itemName"`
	Options  []FusionOption `json:"options,omitempty"`
}

// ReinforceSkill is a skill level bonus granted by an enchant.
type ReinforceSkill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Enchant is the enchant block of an equipped item.
type Enchant struct {
	Status         []StatEntry      `json:"status,omitempty"`
	Explain        string           `json:"explain,omitempty"`
	ReinforceSkill []ReinforceSkill `json:"reinforceSkill,omitempty"`
}

// Tune is the tune block of an equipped item.
type Tune struct {
	Status []StatEntry `json:"status,omitempty"`
}

// Emblem is an emblem socketed into an avatar or equipment piece.
type Emblem struct {
	SlotColor string `json:"slotColor,omitempty"`
	ItemName  string `json:"itemName"`
}

// EquippedItem is one worn equipment piece, merged with its item detail record.
type EquippedItem struct {
	SlotID            string         `json:"slotId"`
	SlotName          string         `json:"slotName"`
	ItemID            string         `json:"itemId"`
	ItemName          string         `json:"itemName"`
	Reinforce         int            `json:"reinforce"`
	AmplificationName string         `json:"amplificationName,omitempty"`
	ItemStatus        []StatEntry    `json:"itemStatus,omitempty"`
	ItemExplainDetail string         `json:"itemExplainDetail,omitempty"`
	ItemBuffExplain   string         `json:"itemBuffExplain,omitempty"`
	Enchant           *Enchant       `json:"enchant,omitempty"`
	Tune              *Tune          `json:"tune,omitempty"`
	Upgrade           *UpgradeInfo   `json:"upgradeInfo,omitempty"`
	FusionOptions     []FusionOption `json:"fusionOptions,omitempty"`
	Emblems           []Emblem       `json:"emblems,omitempty"`
}

// Amplified reports whether the item carries an amplification (dimensional) stat.
func (it *EquippedItem) Amplified() bool {
	return it.AmplificationName != ""
}

// IsWeapon matches both the main and the secondary weapon slot.
func (it *EquippedItem) IsWeapon() bool {
	return strings.Contains(strings.ToLower(it.SlotName), "weapon")
}

// IsAccessory matches slot names containing ring, bracelet or necklace.
// Earrings match too.
func (it *EquippedItem) IsAccessory() bool {
	s := strings.ToLower(it.SlotName)
	return strings.Contains(s, "ring") || strings.Contains(s, "bracelet") || strings.Contains(s, "necklace")
}

// Avatar is one avatar slot. OptionAbility is the free-text option line.
type Avatar struct {
	SlotID            string      `json:"slotId"`
	SlotName          string      `json:"slotName"`
	ItemID            string      `json:"itemId"`
	ItemName          string      `json:"itemName"`
	ItemStatus        []StatEntry `json:"itemStatus,omitempty"`
	ItemExplainDetail string      `json:"itemExplainDetail,omitempty"`
	OptionAbility     string      `json:"optionAbility,omitempty"`
	Emblems           []Emblem    `json:"emblems,omitempty"`
}

// AuxItem is a creature, artifact, insignia or insignia gem. Children holds
// artifacts (for a creature) or gems (for an insignia).
type AuxItem struct {
	ItemID     string      `json:"itemId"`
	ItemName   string      `json:"itemName"`
	ItemStatus []StatEntry `json:"itemStatus,omitempty"`
	Children   []AuxItem   `json:"children,omitempty"`
}
