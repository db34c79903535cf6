package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/craftreq/internal/domain/actor"
	"github.com/andrescamacho/craftreq/internal/domain/shared"
)

// GormActorRepository implements actor.Repository using GORM
type GormActorRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormActorRepository creates a new GORM actor repository
func NewGormActorRepository(db *gorm.DB, clock shared.Clock) *GormActorRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormActorRepository{db: db, clock: clock}
}

type skillRecord struct {
	Level    int     `json:"level"`
	Progress float64 `json:"progress,omitempty"`
}

// Save inserts or replaces the actor
func (r *GormActorRepository) Save(ctx context.Context, a *actor.Actor) error {
	model, err := r.entityToModel(a)
	if err != nil {
		return fmt.Errorf("failed to convert actor to model: %w", err)
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save actor: %w", result.Error)
	}
	return nil
}

// FindByID retrieves an actor by id
func (r *GormActorRepository) FindByID(ctx context.Context, id string) (*actor.Actor, error) {
	var model ActorModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("actor not found: %s", id)
		}
		return nil, fmt.Errorf("failed to find actor: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

func (r *GormActorRepository) entityToModel(a *actor.Actor) (*ActorModel, error) {
	skills := make(map[string]skillRecord)
	for id, sp := range a.Skills() {
		skills[id] = skillRecord{Level: sp.Level, Progress: sp.Progress}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, err
	}
	statsJSON, err := json.Marshal(a.Stats())
	if err != nil {
		return nil, err
	}
	bindingsJSON, err := json.Marshal(a.SkillStats())
	if err != nil {
		return nil, err
	}

	return &ActorModel{
		ID:         a.ID(),
		Name:       a.Name(),
		Skills:     string(skillsJSON),
		Stats:      string(statsJSON),
		SkillStats: string(bindingsJSON),
		UpdatedAt:  r.clock.Now(),
	}, nil
}

func (r *GormActorRepository) modelToEntity(model *ActorModel) (*actor.Actor, error) {
	a, err := actor.NewActor(model.ID, model.Name)
	if err != nil {
		return nil, err
	}

	var skills map[string]skillRecord
	if model.Skills != "" {
		if err := json.Unmarshal([]byte(model.Skills), &skills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
		}
	}
	for id, s := range skills {
		if err := a.SetSkill(id, s.Level, s.Progress); err != nil {
			return nil, err
		}
	}

	var stats map[string]int
	if model.Stats != "" {
		if err := json.Unmarshal([]byte(model.Stats), &stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
		}
	}
	for id, v := range stats {
		a.SetStat(id, v)
	}

	var bindings map[string]string
	if model.SkillStats != "" {
		if err := json.Unmarshal([]byte(model.SkillStats), &bindings); err != nil {
			return nil, fmt.Errorf("failed to unmarshal skill stats: %w", err)
		}
	}
	for skill, stat := range bindings {
		a.BindSkillStat(skill, stat)
	}

	return a, nil
}
