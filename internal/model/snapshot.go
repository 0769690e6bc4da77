package model

// Status entry names read by the formula evaluators.
const (
	StatusAtkAmp       = "Atk. Amp."
	StatusBuffPower    = "Buff Power"
	StatusBuffPowerAmp = "Buff Power Amp."
)

// Profile identifies the character the snapshot belongs to.
type Profile struct {
	ServerID      string `json:"serverId"`
	CharacterID   string `json:"characterId"`
	CharacterName string `json:"characterName"`
	JobID         string `json:"jobId"`
	JobName       string `json:"jobName"`
	JobGrowName   string `json:"jobGrowName"`
}

// Skill is one active/passive skill with its learned level.
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// BuffLoadout is the buff-enhancement gear registered for the buff skill.
// Items here override the worn item of the same slot for the main buff only.
type BuffLoadout struct {
	SkillName  string         `json:"skillName"`
	SkillLevel int            `json:"skillLevel"`
	Equipment  []EquippedItem `json:"equipment,omitempty"`
	Avatars    []Avatar       `json:"avatar,omitempty"`
	Creature   *AuxItem       `json:"creature,omitempty"`
}

// EquipmentSnapshot is the validated input of one evaluation call.
// It is never mutated after construction; Status == nil means the status
// block could not be fetched, which is different from an empty status.
type EquipmentSnapshot struct {
	Profile     Profile            `json:"profile"`
	Equipment   []EquippedItem     `json:"equipment"`
	Set         *SetItemInfo       `json:"setItemInfo,omitempty"`
	Avatars     []Avatar           `json:"avatar,omitempty"`
	Creature    *AuxItem           `json:"creature,omitempty"`
	Insignia    *AuxItem           `json:"flag,omitempty"`
	Status      map[string]float64 `json:"status,omitempty"`
	Skills      []Skill            `json:"skills,omitempty"`
	Buff        *BuffLoadout       `json:"buff,omitempty"`
	Fingerprint string             `json:"fingerprint,omitempty"`
}

// StatusValue returns a status entry and whether the status block holds it.
func (s *EquipmentSnapshot) StatusValue(name string) (float64, bool) {
	if s.Status == nil {
		return 0, false
	}
	v, ok := s.Status[name]
	return v, ok
}

// SkillLevel returns the learned level of a skill by exact name, 0 if absent.
func (s *EquipmentSnapshot) SkillLevel(name string) int {
	for _, sk := range s.Skills {
		if sk.Name == name {
			return sk.Level
		}
	}
	return 0
}
