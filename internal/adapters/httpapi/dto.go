package httpapi

import (
	"time"

	craftingQueries "github.com/andrescamacho/craftreq/internal/application/crafting/queries"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

type checkRequest struct {
	DeclarationID string `json:"declaration_id"`
	InventoryID   string `json:"inventory_id"`
	Batch         int    `json:"batch,omitempty"`
}

type chanceRequest struct {
	DeclarationID      string   `json:"declaration_id"`
	ActorID            string   `json:"actor_id"`
	DifficultyModifier *float64 `json:"difficulty_modifier,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type downgradeDTO struct {
	Category    crafting.Category        `json:"category"`
	Group       int                      `json:"group"`
	Alternative int                      `json:"alternative"`
	Item        string                   `json:"item"`
	Reason      crafting.DowngradeReason `json:"reason"`
	Against     string                   `json:"against"`
	Demand      int                      `json:"demand"`
}

type checkResponse struct {
	DeclarationID string                  `json:"declaration_id"`
	InventoryID   string                  `json:"inventory_id"`
	Batch         int                     `json:"batch"`
	CanCraft      bool                    `json:"can_craft"`
	Missing       []crafting.MissingGroup `json:"missing"`
	Downgrades    []downgradeDTO          `json:"downgrades"`
}

func newCheckResponse(r *craftingQueries.CheckCraftabilityResponse) checkResponse {
	out := checkResponse{
		DeclarationID: r.DeclarationID,
		InventoryID:   r.InventoryID,
		Batch:         r.Batch,
		CanCraft:      r.CanCraft,
		Missing:       r.Missing,
		Downgrades:    make([]downgradeDTO, 0, len(r.Downgrades)),
	}
	if out.Missing == nil {
		out.Missing = []crafting.MissingGroup{}
	}
	for _, d := range r.Downgrades {
		out.Downgrades = append(out.Downgrades, downgradeDTO{
			Category:    crafting.CategoryComponents,
			Group:       d.Group,
			Alternative: d.Alternative,
			Item:        d.ItemType,
			Reason:      d.Reason,
			Against:     d.Against,
			Demand:      d.Demand,
		})
	}
	return out
}

type skillDTO struct {
	Skill       string               `json:"skill"`
	Description string               `json:"description"`
	Level       int                  `json:"level"`
	Minimum     int                  `json:"minimum"`
	Difficulty  int                  `json:"difficulty"`
	Rate        float64              `json:"rate"`
	Tier        crafting.DisplayTier `json:"tier"`
}

type chanceResponse struct {
	DeclarationID string     `json:"declaration_id"`
	ActorID       string     `json:"actor_id"`
	GateMet       bool       `json:"gate_met"`
	Probability   float64    `json:"probability"`
	Skills        []skillDTO `json:"skills"`
}

func newChanceResponse(r *craftingQueries.EstimateSuccessResponse) chanceResponse {
	out := chanceResponse{
		DeclarationID: r.DeclarationID,
		ActorID:       r.ActorID,
		GateMet:       r.GateMet,
		Probability:   r.Probability,
		Skills:        make([]skillDTO, 0, len(r.Skills)),
	}
	for _, s := range r.Skills {
		out.Skills = append(out.Skills, skillDTO{
			Skill:       s.Requirement.Skill,
			Description: s.Requirement.Describe(),
			Level:       s.Level,
			Minimum:     s.Requirement.Minimum,
			Difficulty:  s.Requirement.Difficulty,
			Rate:        s.Rate,
			Tier:        s.Tier,
		})
	}
	return out
}

type evaluationDTO struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	SubjectID   string    `json:"subject_id"`
	Batch       int       `json:"batch,omitempty"`
	Verdict     bool      `json:"verdict"`
	Probability float64   `json:"probability,omitempty"`
	Downgrades  int       `json:"downgrades"`
	CreatedAt   time.Time `json:"created_at"`
}

type evaluationsResponse struct {
	Evaluations []evaluationDTO `json:"evaluations"`
}

func newEvaluationsResponse(r *craftingQueries.ListEvaluationsResponse) evaluationsResponse {
	out := evaluationsResponse{Evaluations: make([]evaluationDTO, 0, len(r.Records))}
	for _, rec := range r.Records {
		out.Evaluations = append(out.Evaluations, evaluationDTO{
			ID:          rec.ID,
			Kind:        string(rec.Kind),
			SubjectID:   rec.SubjectID,
			Batch:       rec.Batch,
			Verdict:     rec.Verdict,
			Probability: rec.Probability,
			Downgrades:  rec.Downgrades,
			CreatedAt:   rec.CreatedAt,
		})
	}
	return out
}
