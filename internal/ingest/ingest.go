// Package ingest builds an EquipmentSnapshot from a bundle of raw upstream
// API responses.
//
// A bundle is one JSON document keyed by endpoint:
//
//	{
//	  "profile":       {...},                         // /characters/{id}
//	  "equipment":     {"equipment": [...], "setItemInfo": [...]},
//	  "avatar":        {"avatar": [...]},
//	  "creature":      {"creature": {..., "artifact": [...]}},
//	  "flag":          {"flag": {..., "gems": [...]}},
//	  "status":        {"status": [{"name", "value"}]},
//	  "skill":         {"skill": {"style": {"active": [...], "passive": [...]}}},
//	  "buffEquipment": {"skill": {"buff": {"skillInfo": {...}, "equipment": [...]}}},
//	  "buffAvatar":    {"skill": {"buff": {"avatar": [...]}}},
//	  "buffCreature":  {"skill": {"buff": {"creature": [...]}}},
//	  "items":         {"<itemId>": {...item detail...}}
//	}
//
// Item details (itemStatus, itemExplainDetail, itemBuff, fusionOption of
// fusion stones) are merged into the rows that reference them.
package ingest

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dimchansky/utfbom"
	"github.com/tidwall/gjson"
	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/dfocalc/internal/model"
)

var (
	// ErrInvalidJSON is returned for documents that are not valid JSON.
	ErrInvalidJSON = errors.New("ingest: invalid json")
	// ErrNoEquipment is returned when the bundle has no equipment response.
	ErrNoEquipment = errors.New("ingest: no equipment response")
)

// ReadFile reads a bundle from disk, skipping a UTF-8 byte order mark.
func ReadFile(path string) (*model.EquipmentSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening bundle %s: %w", path, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(utfbom.SkipOnly(f))
	if err != nil {
		return nil, fmt.Errorf("reading bundle %s: %w", path, err)
	}

	snap, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing bundle %s: %w", path, err)
	}
	return snap, nil
}

// Fingerprint is the hex blake2b-256 digest of a raw bundle.
func Fingerprint(raw []byte) string {
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Parse builds a snapshot from a raw bundle.
func Parse(raw []byte) (*model.EquipmentSnapshot, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(raw)

	equipment := doc.Get("equipment.equipment")
	if !equipment.IsArray() {
		return nil, ErrNoEquipment
	}

	items := doc.Get("items")
	snap := &model.EquipmentSnapshot{
		Profile:     parseProfile(doc.Get("profile")),
		Equipment:   parseEquipment(equipment, items),
		Set:         parseSet(doc.Get("equipment.setItemInfo.0")),
		Avatars:     parseAvatars(doc.Get("avatar.avatar"), items),
		Creature:    parseAux(doc.Get("creature.creature"), "artifact", items),
		Insignia:    parseAux(doc.Get("flag.flag"), "gems", items),
		Status:      parseStatus(doc.Get("status")),
		Skills:      parseSkills(doc.Get("skill.skill.style")),
		Buff:        parseBuff(doc, items),
		Fingerprint: Fingerprint(raw),
	}
	return snap, nil
}

func parseProfile(p gjson.Result) model.Profile {
	return model.Profile{
		ServerID:      p.Get("serverId").String(),
		CharacterID:   p.Get("characterId").String(),
		CharacterName: p.Get("characterName").String(),
		JobID:         p.Get("jobId").String(),
		JobName:       p.Get("jobName").String(),
		JobGrowName:   p.Get("jobGrowName").String(),
	}
}

func parseStatEntries(list gjson.Result) []model.StatEntry {
	var out []model.StatEntry
	list.ForEach(func(_, e gjson.Result) bool {
		name := e.Get("name").String()
		if name == "" {
			return true
		}
		out = append(out, model.StatEntry{Name: name, Value: e.Get("value").String()})
		return true
	})
	return out
}

func parseFusionOptions(list gjson.Result) []model.FusionOption {
	var out []model.FusionOption
	list.ForEach(func(_, o gjson.Result) bool {
		opt := model.FusionOption{
			Explain:       o.Get("explain").String(),
			ExplainDetail: o.Get("explainDetail").String(),
		}
		// engrave arrives as an object or a list.
		eng := o.Get("engrave")
		if eng.IsObject() {
			opt.Engraves = append(opt.Engraves, parseEngrave(eng))
		} else {
			eng.ForEach(func(_, e gjson.Result) bool {
				opt.Engraves = append(opt.Engraves, parseEngrave(e))
				return true
			})
		}
		out = append(out, opt)
		return true
	})
	return out
}

func parseEngrave(e gjson.Result) model.Engrave {
	return model.Engrave{Color: e.Get("color").String(), Value: int(e.Get("value").Int())}
}

func parseEmblems(list gjson.Result) []model.Emblem {
	var out []model.Emblem
	list.ForEach(func(_, e gjson.Result) bool {
		if name := e.Get("itemName").String(); name != "" {
			out = append(out, model.Emblem{SlotColor: e.Get("slotColor").String(), ItemName: name})
		}
		return true
	})
	return out
}

func itemDetail(items gjson.Result, id string) gjson.Result {
	if id == "" {
		return gjson.Result{}
	}
	return items.Get(gjson.Escape(id))
}

func parseEquipment(list, items gjson.Result) []model.EquippedItem {
	var out []model.EquippedItem
	list.ForEach(func(_, row gjson.Result) bool {
		out = append(out, parseEquippedItem(row, items))
		return true
	})
	return out
}

func parseEquippedItem(row, items gjson.Result) model.EquippedItem {
	id := row.Get("itemId").String()
	detail := itemDetail(items, id)

	it := model.EquippedItem{
		SlotID:            row.Get("slotId").String(),
		SlotName:          row.Get("slotName").String(),
		ItemID:            id,
		ItemName:          row.Get("itemName").String(),
		Reinforce:         int(row.Get("reinforce").Int()),
		AmplificationName: row.Get("amplificationName").String(),
		ItemStatus:        parseStatEntries(detail.Get("itemStatus")),
		ItemExplainDetail: detail.Get("itemExplainDetail").String(),
		ItemBuffExplain:   detail.Get("itemBuff.explain").String(),
		FusionOptions:     parseFusionOptions(row.Get("fusionOption.options")),
		Emblems:           parseEmblems(row.Get("emblems")),
	}

	if e := row.Get("enchant"); e.Exists() {
		it.Enchant = parseEnchant(e)
	}
	if t := row.Get("tune"); t.Exists() {
		it.Tune = parseTune(t)
	}
	if up := row.Get("upgradeInfo"); up.Get("itemId").Exists() {
		stoneID := up.Get("itemId").String()
		it.Upgrade = &model.UpgradeInfo{
			ItemID:   stoneID,
			ItemName: up.Get("itemName").String(),
			Options:  parseFusionOptions(itemDetail(items, stoneID).Get("fusionOption.options")),
		}
	}
	return it
}

func parseEnchant(e gjson.Result) *model.Enchant {
	en := &model.Enchant{
		Status:  parseStatEntries(e.Get("status")),
		Explain: e.Get("explain").String(),
	}
	// reinforceSkill: [{"jobName", "skills": [{"name", "value"}]}]
	e.Get("reinforceSkill").ForEach(func(_, group gjson.Result) bool {
		group.Get("skills").ForEach(func(_, s gjson.Result) bool {
			en.ReinforceSkill = append(en.ReinforceSkill, model.ReinforceSkill{
				Name:  s.Get("name").String(),
				Level: int(s.Get("value").Int()),
			})
			return true
		})
		return true
	})
	return en
}

// parseTune accepts the object form and the list form of the tune block.
func parseTune(t gjson.Result) *model.Tune {
	tune := &model.Tune{}
	if t.IsArray() {
		t.ForEach(func(_, entry gjson.Result) bool {
			tune.Status = append(tune.Status, parseStatEntries(entry.Get("status"))...)
			return true
		})
		return tune
	}
	tune.Status = parseStatEntries(t.Get("status"))
	return tune
}

func parseSet(s gjson.Result) *model.SetItemInfo {
	name := s.Get("setItemName").String()
	if name == "" {
		return nil
	}
	return model.NewSetItemInfo(name, s.Get("setItemRarityName").String(), parseStatEntries(s.Get("active.status")))
}

func parseAvatars(list, items gjson.Result) []model.Avatar {
	var out []model.Avatar
	list.ForEach(func(_, row gjson.Result) bool {
		id := row.Get("itemId").String()
		detail := itemDetail(items, id)
		out = append(out, model.Avatar{
			SlotID:            row.Get("slotId").String(),
			SlotName:          row.Get("slotName").String(),
			ItemID:            id,
			ItemName:          row.Get("itemName").String(),
			ItemStatus:        parseStatEntries(detail.Get("itemStatus")),
			ItemExplainDetail: detail.Get("itemExplainDetail").String(),
			OptionAbility:     row.Get("optionAbility").String(),
			Emblems:           parseEmblems(row.Get("emblems")),
		})
		return true
	})
	return out
}

// parseAux reads a creature (children under "artifact") or an insignia
// (children under "gems").
func parseAux(row gjson.Result, childKey string, items gjson.Result) *model.AuxItem {
	if !row.IsObject() || row.Get("itemId").String() == "" {
		return nil
	}
	aux := auxItem(row, items)
	row.Get(childKey).ForEach(func(_, child gjson.Result) bool {
		if child.Get("itemId").String() != "" {
			aux.Children = append(aux.Children, *auxItem(child, items))
		}
		return true
	})
	return aux
}

func auxItem(row, items gjson.Result) *model.AuxItem {
	id := row.Get("itemId").String()
	return &model.AuxItem{
		ItemID:     id,
		ItemName:   row.Get("itemName").String(),
		ItemStatus: parseStatEntries(itemDetail(items, id).Get("itemStatus")),
	}
}

// parseStatus returns nil when the status response is absent, which callers
// must tell apart from an empty status.
func parseStatus(s gjson.Result) map[string]float64 {
	list := s.Get("status")
	if !list.IsArray() {
		return nil
	}
	out := make(map[string]float64)
	list.ForEach(func(_, e gjson.Result) bool {
		name := e.Get("name").String()
		if name == "" {
			return true
		}
		v := e.Get("value")
		if n, ok := model.ParseNumber(v.String()); ok {
			out[name] = n
		}
		return true
	})
	return out
}

func parseSkills(style gjson.Result) []model.Skill {
	var out []model.Skill
	for _, key := range []string{"active", "passive"} {
		style.Get(key).ForEach(func(_, s gjson.Result) bool {
			out = append(out, model.Skill{Name: s.Get("name").String(), Level: int(s.Get("level").Int())})
			return true
		})
	}
	return out
}

func parseBuff(doc, items gjson.Result) *model.BuffLoadout {
	eq := doc.Get("buffEquipment.skill.buff")
	av := doc.Get("buffAvatar.skill.buff")
	cr := doc.Get("buffCreature.skill.buff")
	if !eq.Exists() && !av.Exists() && !cr.Exists() {
		return nil
	}

	lo := &model.BuffLoadout{
		SkillName:  eq.Get("skillInfo.name").String(),
		SkillLevel: int(eq.Get("skillInfo.option.level").Int()),
		Equipment:  parseEquipment(eq.Get("equipment"), items),
		Avatars:    parseAvatars(av.Get("avatar"), items),
	}
	if lo.SkillName == "" {
		lo.SkillName = av.Get("skillInfo.name").String()
	}
	// The buff creature response is a one-element list.
	if c := cr.Get("creature.0"); c.Exists() {
		lo.Creature = parseAux(c, "artifact", items)
	} else {
		lo.Creature = parseAux(cr.Get("creature"), "artifact", items)
	}
	return lo
}
