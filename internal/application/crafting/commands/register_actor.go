package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/craftreq/internal/application/logging"
	"github.com/andrescamacho/craftreq/internal/application/mediator"
	"github.com/andrescamacho/craftreq/internal/domain/actor"
)

// RegisterActorCommand creates or replaces an actor
type RegisterActorCommand struct {
	ID     string
	Name   string
	Skills map[string]actor.SkillProgress
	Stats  map[string]int
	// SkillStats rebinds skills to a stat other than intelligence
	SkillStats map[string]string
}

// RegisterActorResponse represents the result of registering an actor
type RegisterActorResponse struct {
	Actor *actor.Actor
}

// RegisterActorHandler handles the RegisterActor command
type RegisterActorHandler struct {
	repo actor.Repository
}

// NewRegisterActorHandler creates a new RegisterActorHandler
func NewRegisterActorHandler(repo actor.Repository) *RegisterActorHandler {
	return &RegisterActorHandler{repo: repo}
}

// Handle executes the RegisterActor command
func (h *RegisterActorHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RegisterActorCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RegisterActorCommand")
	}

	a, err := actor.NewActor(cmd.ID, cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid actor: %w", err)
	}

	// Sorted so the first invalid skill reported is deterministic
	skills := make([]string, 0, len(cmd.Skills))
	for skill := range cmd.Skills {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	for _, skill := range skills {
		p := cmd.Skills[skill]
		if err := a.SetSkill(skill, p.Level, p.Progress); err != nil {
			return nil, fmt.Errorf("invalid actor: %w", err)
		}
	}
	for stat, value := range cmd.Stats {
		a.SetStat(stat, value)
	}
	for skill, stat := range cmd.SkillStats {
		a.BindSkillStat(skill, stat)
	}

	if err := h.repo.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to save actor: %w", err)
	}

	logging.LoggerFromContext(ctx).Log("INFO", "actor registered", map[string]interface{}{
		"actor":  a.ID(),
		"skills": len(skills),
	})

	return &RegisterActorResponse{Actor: a}, nil
}
