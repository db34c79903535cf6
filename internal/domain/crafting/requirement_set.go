package crafting

import "sort"

// ComponentGroup is a list of alternative component or tool requirements (logical OR)
type ComponentGroup []ComponentRequirement

// QualityGroup is a list of alternative quality requirements (logical OR)
type QualityGroup []QualityRequirement

// RequirementSet is the immutable, normalised requirement declaration of one action.
//
// Groups combine by logical AND; alternatives inside a group combine by logical OR.
// The set carries no evaluation state: availability lives in Evaluation values,
// so a set can be shared freely between concurrent evaluations.
type RequirementSet struct {
	components []ComponentGroup
	tools      []ComponentGroup
	qualities  []QualityGroup
	skills     map[string]SkillRequirement
}

// NewRequirementSet validates and copies the declaration into an immutable set.
// When two skill requirements name the same skill the later one wins.
func NewRequirementSet(
	components []ComponentGroup,
	tools []ComponentGroup,
	qualities []QualityGroup,
	skills []SkillRequirement,
) (*RequirementSet, error) {
	if err := validateComponentGroups(CategoryComponents, components); err != nil {
		return nil, err
	}
	if err := validateComponentGroups(CategoryTools, tools); err != nil {
		return nil, err
	}
	for i, group := range qualities {
		if len(group) == 0 {
			return nil, &ErrEmptyGroup{Category: CategoryQualities, Index: i}
		}
		for _, q := range group {
			if q.Quality == "" {
				return nil, &ErrInvalidRequirement{Category: CategoryQualities, Key: q.Quality, Reason: "empty quality id"}
			}
			if q.Level < 0 {
				return nil, &ErrInvalidRequirement{Category: CategoryQualities, Key: q.Quality, Reason: "negative level"}
			}
		}
	}

	skillMap := make(map[string]SkillRequirement, len(skills))
	for _, s := range skills {
		if err := s.validate(); err != nil {
			return nil, err
		}
		skillMap[s.Skill] = s
	}

	return &RequirementSet{
		components: cloneComponentGroups(components),
		tools:      cloneComponentGroups(tools),
		qualities:  cloneQualityGroups(qualities),
		skills:     skillMap,
	}, nil
}

func validateComponentGroups(category Category, groups []ComponentGroup) error {
	for i, group := range groups {
		if len(group) == 0 {
			return &ErrEmptyGroup{Category: category, Index: i}
		}
		for _, c := range group {
			if c.Type == "" {
				return &ErrInvalidRequirement{Category: category, Key: c.Type, Reason: "empty item type"}
			}
			if c.Count < 0 {
				return &ErrInvalidRequirement{Category: category, Key: c.Type, Reason: "negative count"}
			}
		}
	}
	return nil
}

// Components returns a copy of the component groups
func (s *RequirementSet) Components() []ComponentGroup { return cloneComponentGroups(s.components) }

// Tools returns a copy of the tool groups
func (s *RequirementSet) Tools() []ComponentGroup { return cloneComponentGroups(s.tools) }

// Qualities returns a copy of the quality groups
func (s *RequirementSet) Qualities() []QualityGroup { return cloneQualityGroups(s.qualities) }

// Skills returns the skill requirements ordered by skill id
func (s *RequirementSet) Skills() []SkillRequirement {
	ids := make([]string, 0, len(s.skills))
	for id := range s.skills {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]SkillRequirement, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.skills[id])
	}
	return out
}

// Skill looks up the requirement for one skill
func (s *RequirementSet) Skill(id string) (SkillRequirement, bool) {
	req, ok := s.skills[id]
	return req, ok
}

// IsEmpty reports whether the set requires nothing at all
func (s *RequirementSet) IsEmpty() bool {
	return len(s.components) == 0 && len(s.tools) == 0 && len(s.qualities) == 0 && len(s.skills) == 0
}

// RemoveItem returns a copy of the set without any tool or component alternative of
// the given item type. Qualities are not changed.
//
// When removal would leave a group empty the set can never be satisfied: RemoveItem
// then returns (nil, true) and the owning declaration must be discarded.
func (s *RequirementSet) RemoveItem(itemType string) (*RequirementSet, bool) {
	tools, emptied := removeFromGroups(s.tools, itemType)
	if emptied {
		return nil, true
	}
	components, emptied := removeFromGroups(s.components, itemType)
	if emptied {
		return nil, true
	}

	skills := make(map[string]SkillRequirement, len(s.skills))
	for id, req := range s.skills {
		skills[id] = req
	}

	return &RequirementSet{
		components: components,
		tools:      tools,
		qualities:  cloneQualityGroups(s.qualities),
		skills:     skills,
	}, false
}

func removeFromGroups(groups []ComponentGroup, itemType string) ([]ComponentGroup, bool) {
	out := make([]ComponentGroup, 0, len(groups))
	for _, group := range groups {
		kept := make(ComponentGroup, 0, len(group))
		for _, c := range group {
			if c.Type != itemType {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			return nil, true
		}
		out = append(out, kept)
	}
	return out, false
}

func cloneComponentGroups(groups []ComponentGroup) []ComponentGroup {
	if groups == nil {
		return nil
	}
	out := make([]ComponentGroup, len(groups))
	for i, group := range groups {
		out[i] = append(ComponentGroup(nil), group...)
	}
	return out
}

func cloneQualityGroups(groups []QualityGroup) []QualityGroup {
	if groups == nil {
		return nil
	}
	out := make([]QualityGroup, len(groups))
	for i, group := range groups {
		out[i] = append(QualityGroup(nil), group...)
	}
	return out
}
