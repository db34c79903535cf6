package declarations

import (
	"fmt"

	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

// CurrentDecoder reads declarations with an explicit "requirements" object:
//
//	{"id": "...", "requirements": {
//	    "components": [ {"item": "plank", "count": 2}, [ {...}, {...} ] ],
//	    "tools":      [ {"item": "welder", "charges": 5} ],
//	    "qualities":  [ {"quality": "CUT", "level": 1} ],
//	    "skills":     [ {"skill": "fabrication", "difficulty": 3, "min": 2} ]
//	}}
//
// Each list element is either one object (a single-alternative group) or an array
// of objects (alternatives).
type CurrentDecoder struct{}

func (CurrentDecoder) Format() Format { return FormatCurrent }

func (CurrentDecoder) Decode(doc map[string]any) (*crafting.RequirementSet, error) {
	req, ok := doc["requirements"].(map[string]any)
	if !ok {
		return nil, &LoadError{Field: "requirements", Reason: "expected object"}
	}

	components, err := decodeGroups[crafting.ComponentGroup](req, "components", decodeItem)
	if err != nil {
		return nil, err
	}
	tools, err := decodeGroups[crafting.ComponentGroup](req, "tools", decodeItem)
	if err != nil {
		return nil, err
	}
	qualities, err := decodeGroups[crafting.QualityGroup](req, "qualities", decodeQuality)
	if err != nil {
		return nil, err
	}

	var skills []crafting.SkillRequirement
	if raw, ok := req["skills"]; ok {
		list, ok := raw.([]any)
		if !ok {
			return nil, &LoadError{Field: "requirements.skills", Reason: "expected array"}
		}
		for i, entry := range list {
			field := indexed("requirements.skills", i)
			obj, ok := entry.(map[string]any)
			if !ok {
				return nil, &LoadError{Field: field, Reason: "expected object"}
			}
			skill, err := decodeSkill(obj, field)
			if err != nil {
				return nil, err
			}
			skills = append(skills, skill)
		}
	}

	return crafting.NewRequirementSet(components, tools, qualities, skills)
}

func decodeGroups[G ~[]T, T any](
	req map[string]any,
	key string,
	one func(obj map[string]any, field string) (T, error),
) ([]G, error) {
	raw, ok := req[key]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &LoadError{Field: "requirements." + key, Reason: "expected array"}
	}

	groups := make([]G, 0, len(list))
	for g, entry := range list {
		field := indexed("requirements."+key, g)
		switch v := entry.(type) {
		case map[string]any:
			alt, err := one(v, field)
			if err != nil {
				return nil, err
			}
			groups = append(groups, G{alt})
		case []any:
			if len(v) == 0 {
				return nil, &LoadError{Field: field, Reason: "empty alternative group"}
			}
			group := make(G, 0, len(v))
			for a, altRaw := range v {
				altField := indexed(field, a)
				obj, ok := altRaw.(map[string]any)
				if !ok {
					return nil, &LoadError{Field: altField, Reason: "expected object"}
				}
				alt, err := one(obj, altField)
				if err != nil {
					return nil, err
				}
				group = append(group, alt)
			}
			groups = append(groups, group)
		default:
			return nil, &LoadError{Field: field, Reason: fmt.Sprintf("expected object or array, got %T", entry)}
		}
	}
	return groups, nil
}

func decodeItem(obj map[string]any, field string) (crafting.ComponentRequirement, error) {
	item, err := stringField(obj, field, "item")
	if err != nil {
		return crafting.ComponentRequirement{}, err
	}
	req := crafting.ComponentRequirement{Type: item, Recoverable: true}

	if charges, ok, err := intField(obj, field, "charges"); err != nil {
		return req, err
	} else if ok {
		req.Count = charges
		req.ByCharges = true
	} else if count, ok, err := intField(obj, field, "count"); err != nil {
		return req, err
	} else if ok {
		req.Count = count
	}

	if raw, ok := obj["recoverable"]; ok {
		recoverable, ok := raw.(bool)
		if !ok {
			return req, &LoadError{Field: field + ".recoverable", Reason: "expected boolean"}
		}
		req.Recoverable = recoverable
	}
	return req, nil
}

func decodeQuality(obj map[string]any, field string) (crafting.QualityRequirement, error) {
	quality, err := stringField(obj, field, "quality")
	if err != nil {
		return crafting.QualityRequirement{}, err
	}
	level, ok, err := intField(obj, field, "level")
	if err != nil {
		return crafting.QualityRequirement{}, err
	}
	if !ok {
		return crafting.QualityRequirement{}, &LoadError{Field: field + ".level", Reason: "missing mandatory field"}
	}
	return crafting.NewQualityRequirement(quality, level), nil
}

func decodeSkill(obj map[string]any, field string) (crafting.SkillRequirement, error) {
	skill, err := stringField(obj, field, "skill")
	if err != nil {
		return crafting.SkillRequirement{}, err
	}
	difficulty, ok, err := intField(obj, field, "difficulty")
	if err != nil {
		return crafting.SkillRequirement{}, err
	}
	if !ok {
		return crafting.SkillRequirement{}, &LoadError{Field: field + ".difficulty", Reason: "missing mandatory field"}
	}

	req := crafting.NewSkillRequirement(skill, difficulty)
	if minimum, ok, err := intField(obj, field, "min"); err != nil {
		return req, err
	} else if ok {
		req.Minimum = minimum
	}
	if base, ok, err := floatField(obj, field, "base_success"); err != nil {
		return req, err
	} else if ok {
		req.BaseSuccess = base
	}
	if factor, ok, err := floatField(obj, field, "stat_factor"); err != nil {
		return req, err
	} else if ok {
		req.StatFactor = factor
	}
	return req, nil
}

// Encode renders a requirement set as a current-format document, the canonical
// form declarations are stored in.
func Encode(id, name string, set *crafting.RequirementSet) map[string]any {
	req := map[string]any{}

	if groups := encodeItemGroups(set.Components()); groups != nil {
		req["components"] = groups
	}
	if groups := encodeItemGroups(set.Tools()); groups != nil {
		req["tools"] = groups
	}
	if qualities := set.Qualities(); len(qualities) > 0 {
		groups := make([]any, 0, len(qualities))
		for _, group := range qualities {
			alts := make([]any, 0, len(group))
			for _, q := range group {
				alts = append(alts, map[string]any{"quality": q.Quality, "level": q.Level})
			}
			groups = append(groups, alts)
		}
		req["qualities"] = groups
	}
	if skills := set.Skills(); len(skills) > 0 {
		list := make([]any, 0, len(skills))
		for _, s := range skills {
			list = append(list, map[string]any{
				"skill":        s.Skill,
				"difficulty":   s.Difficulty,
				"min":          s.Minimum,
				"base_success": s.BaseSuccess,
				"stat_factor":  s.StatFactor,
			})
		}
		req["skills"] = list
	}

	doc := map[string]any{"id": id, "requirements": req}
	if name != "" {
		doc["name"] = name
	}
	return doc
}

func encodeItemGroups(groups []crafting.ComponentGroup) []any {
	if len(groups) == 0 {
		return nil
	}
	out := make([]any, 0, len(groups))
	for _, group := range groups {
		alts := make([]any, 0, len(group))
		for _, c := range group {
			entry := map[string]any{"item": c.Type}
			switch {
			case c.ByCharges:
				entry["charges"] = c.Count
			case c.Count > 0:
				entry["count"] = c.Count
			}
			if !c.Recoverable {
				entry["recoverable"] = false
			}
			alts = append(alts, entry)
		}
		out = append(out, alts)
	}
	return out
}
