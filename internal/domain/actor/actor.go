package actor

import "fmt"

const (
	// StatIntelligence is the stat that modifies crafting skills unless rebound
	StatIntelligence = "intelligence"

	// DefaultStatValue is read for stats the actor does not define
	DefaultStatValue = 8
)

// SkillProgress is the actor's standing in one skill.
// Progress is the fraction [0,1) of the way to the next level.
type SkillProgress struct {
	Level    int
	Progress float64
}

// Actor is whoever attempts a crafting action: the player or an NPC
type Actor struct {
	id         string
	name       string
	skills     map[string]SkillProgress
	stats      map[string]int
	skillStats map[string]string
}

// NewActor creates an actor with no trained skills and default stats
func NewActor(id, name string) (*Actor, error) {
	if id == "" {
		return nil, fmt.Errorf("actor id cannot be empty")
	}
	return &Actor{
		id:         id,
		name:       name,
		skills:     make(map[string]SkillProgress),
		stats:      make(map[string]int),
		skillStats: make(map[string]string),
	}, nil
}

// Getters

func (a *Actor) ID() string   { return a.id }
func (a *Actor) Name() string { return a.name }

// SetSkill records the actor's level and partial progress in a skill
func (a *Actor) SetSkill(skill string, level int, progress float64) error {
	if skill == "" {
		return fmt.Errorf("skill id cannot be empty")
	}
	if level < 0 {
		return fmt.Errorf("skill %s level cannot be negative", skill)
	}
	if progress < 0 || progress >= 1 {
		return fmt.Errorf("skill %s progress must be in [0,1), got %v", skill, progress)
	}
	a.skills[skill] = SkillProgress{Level: level, Progress: progress}
	return nil
}

// SetStat records a stat value
func (a *Actor) SetStat(stat string, value int) {
	a.stats[stat] = value
}

// BindSkillStat makes a skill use a stat other than intelligence
func (a *Actor) BindSkillStat(skill, stat string) {
	a.skillStats[skill] = stat
}

// SkillLevel returns the whole level in the skill (0 if untrained)
func (a *Actor) SkillLevel(skill string) int {
	return a.skills[skill].Level
}

// AdjustedSkillLevel returns the level plus partial progress
func (a *Actor) AdjustedSkillLevel(skill string) float64 {
	sp := a.skills[skill]
	return float64(sp.Level) + sp.Progress
}

// StatFor returns the value of the stat bound to the skill
func (a *Actor) StatFor(skill string) int {
	stat, ok := a.skillStats[skill]
	if !ok {
		stat = StatIntelligence
	}
	return a.Stat(stat)
}

// Stat returns a stat value, DefaultStatValue when undefined
func (a *Actor) Stat(stat string) int {
	if v, ok := a.stats[stat]; ok {
		return v
	}
	return DefaultStatValue
}

// Skills returns a copy of the trained skills
func (a *Actor) Skills() map[string]SkillProgress {
	out := make(map[string]SkillProgress, len(a.skills))
	for k, v := range a.skills {
		out[k] = v
	}
	return out
}

// Stats returns a copy of the defined stats
func (a *Actor) Stats() map[string]int {
	out := make(map[string]int, len(a.stats))
	for k, v := range a.stats {
		out[k] = v
	}
	return out
}

// SkillStats returns a copy of the skill-to-stat bindings
func (a *Actor) SkillStats() map[string]string {
	out := make(map[string]string, len(a.skillStats))
	for k, v := range a.skillStats {
		out[k] = v
	}
	return out
}

func (a *Actor) String() string {
	return fmt.Sprintf("Actor[%s, skills=%d]", a.id, len(a.skills))
}
