package declarations

import (
	"fmt"

	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

const noRecoverFlag = "NO_RECOVER"

// LegacyDecoder reads the flat declaration shape used before requirement groups
// were spelled out explicitly:
//
//	{"id": "...",
//	 "components": [ [ ["plank", 2], ["log", 1, "NO_RECOVER"] ] ],
//	 "tools":      [ [ "hammer", ["welder", 5] ] ],
//	 "qualities":  [ {"id": "CUT", "level": 1} ],
//	 "skill_used": "fabrication", "difficulty": 3,
//	 "skills_required": ["electronics", 2]}
//
// A bare tool string only needs to be present. A tool count below zero is measured
// in units, above zero in charges. Empty groups are skipped.
type LegacyDecoder struct{}

func (LegacyDecoder) Format() Format { return FormatLegacy }

func (LegacyDecoder) Decode(doc map[string]any) (*crafting.RequirementSet, error) {
	components, err := decodeLegacyGroups[crafting.ComponentGroup](doc, "components", legacyComponent)
	if err != nil {
		return nil, err
	}
	tools, err := decodeLegacyGroups[crafting.ComponentGroup](doc, "tools", legacyTool)
	if err != nil {
		return nil, err
	}
	qualities, err := decodeLegacyGroups[crafting.QualityGroup](doc, "qualities", legacyQuality)
	if err != nil {
		return nil, err
	}
	skills, err := legacySkills(doc)
	if err != nil {
		return nil, err
	}

	return crafting.NewRequirementSet(components, tools, qualities, skills)
}

// decodeLegacyGroups reads a list whose elements are either an array of
// alternatives or a single bare alternative.
func decodeLegacyGroups[G ~[]T, T any](
	doc map[string]any,
	key string,
	one func(raw any, field string) (T, error),
) ([]G, error) {
	raw, ok := doc[key]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &LoadError{Field: key, Reason: "expected array"}
	}

	var groups []G
	for g, entry := range list {
		field := indexed(key, g)
		alts, isGroup := entry.([]any)
		if !isGroup {
			alt, err := one(entry, field)
			if err != nil {
				return nil, err
			}
			groups = append(groups, G{alt})
			continue
		}

		group := make(G, 0, len(alts))
		for a, altRaw := range alts {
			alt, err := one(altRaw, indexed(field, a))
			if err != nil {
				return nil, err
			}
			group = append(group, alt)
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups, nil
}

func legacyComponent(raw any, field string) (crafting.ComponentRequirement, error) {
	tuple, ok := raw.([]any)
	if !ok || len(tuple) < 2 {
		return crafting.ComponentRequirement{}, &LoadError{Field: field, Reason: "expected [item, count] pair"}
	}
	item, ok := tuple[0].(string)
	if !ok || item == "" {
		return crafting.ComponentRequirement{}, &LoadError{Field: field, Reason: "item id must be a string"}
	}
	count, ok := asInt(tuple[1])
	if !ok {
		return crafting.ComponentRequirement{}, &LoadError{Field: field, Reason: "count must be an integer"}
	}

	req := crafting.NewComponent(item, count)
	if len(tuple) > 2 {
		flag, _ := tuple[2].(string)
		req.Recoverable = flag != noRecoverFlag
	}
	return req, nil
}

func legacyTool(raw any, field string) (crafting.ComponentRequirement, error) {
	if item, ok := raw.(string); ok {
		if item == "" {
			return crafting.ComponentRequirement{}, &LoadError{Field: field, Reason: "empty tool id"}
		}
		return crafting.NewTool(item), nil
	}

	tuple, ok := raw.([]any)
	if !ok || len(tuple) < 2 {
		return crafting.ComponentRequirement{}, &LoadError{Field: field, Reason: "expected tool id or [tool, count] pair"}
	}
	item, ok := tuple[0].(string)
	if !ok || item == "" {
		return crafting.ComponentRequirement{}, &LoadError{Field: field, Reason: "tool id must be a string"}
	}
	count, ok := asInt(tuple[1])
	if !ok {
		return crafting.ComponentRequirement{}, &LoadError{Field: field, Reason: "count must be an integer"}
	}

	if count < 0 {
		return crafting.ComponentRequirement{Type: item, Count: -count, Recoverable: true}, nil
	}
	return crafting.NewChargedTool(item, count), nil
}

func legacyQuality(raw any, field string) (crafting.QualityRequirement, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return crafting.QualityRequirement{}, &LoadError{Field: field, Reason: "expected object"}
	}
	id, err := stringField(obj, field, "id")
	if err != nil {
		return crafting.QualityRequirement{}, err
	}
	level, ok, err := intField(obj, field, "level")
	if err != nil {
		return crafting.QualityRequirement{}, err
	}
	if !ok {
		level = 1
	}
	return crafting.NewQualityRequirement(id, level), nil
}

// legacySkills reads "skill_used"/"difficulty" and "skills_required". The latter is
// either one [skill, level] pair or a list of pairs; a later entry for the same
// skill replaces an earlier one.
func legacySkills(doc map[string]any) ([]crafting.SkillRequirement, error) {
	var skills []crafting.SkillRequirement

	if skill, _ := doc["skill_used"].(string); skill != "" {
		difficulty, ok, err := intField(doc, "", "difficulty")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &LoadError{Field: "difficulty", Reason: "missing mandatory field"}
		}
		skills = append(skills, crafting.NewSkillRequirement(skill, difficulty))
	}

	raw, ok := doc["skills_required"]
	if !ok {
		return skills, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &LoadError{Field: "skills_required", Reason: "expected array"}
	}
	if len(list) == 0 {
		return skills, nil
	}

	if _, nested := list[0].([]any); !nested {
		req, err := legacySkillPair(list, "skills_required")
		if err != nil {
			return nil, err
		}
		req.BaseSuccess = crafting.LegacyBaseSuccess
		return append(skills, req), nil
	}

	for i, entry := range list {
		field := indexed("skills_required", i)
		pair, ok := entry.([]any)
		if !ok {
			return nil, &LoadError{Field: field, Reason: "expected [skill, level] pair"}
		}
		req, err := legacySkillPair(pair, field)
		if err != nil {
			return nil, err
		}
		skills = append(skills, req)
	}
	return skills, nil
}

func legacySkillPair(pair []any, field string) (crafting.SkillRequirement, error) {
	if len(pair) < 2 {
		return crafting.SkillRequirement{}, &LoadError{Field: field, Reason: "expected [skill, level] pair"}
	}
	skill, ok := pair[0].(string)
	if !ok || skill == "" {
		return crafting.SkillRequirement{}, &LoadError{Field: field, Reason: "skill id must be a string"}
	}
	level, ok := asInt(pair[1])
	if !ok {
		return crafting.SkillRequirement{}, &LoadError{Field: field, Reason: fmt.Sprintf("level must be an integer, got %T", pair[1])}
	}
	return crafting.NewSkillRequirement(skill, level), nil
}
