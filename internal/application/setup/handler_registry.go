package setup

import (
	craftingCommands "github.com/andrescamacho/craftreq/internal/application/crafting/commands"
	craftingQueries "github.com/andrescamacho/craftreq/internal/application/crafting/queries"
	"github.com/andrescamacho/craftreq/internal/application/mediator"
	"github.com/andrescamacho/craftreq/internal/domain/actor"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
	"github.com/andrescamacho/craftreq/internal/domain/evaluation"
	"github.com/andrescamacho/craftreq/internal/domain/inventory"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	declarationRepo crafting.DeclarationRepository
	inventoryRepo   inventory.Repository
	actorRepo       actor.Repository
	evaluationRepo  evaluation.Repository
	engine          *crafting.Engine

	defaultBatch       int
	difficultyModifier float64
	loader             craftingCommands.DeclarationLoader
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	declarationRepo crafting.DeclarationRepository,
	inventoryRepo inventory.Repository,
	actorRepo actor.Repository,
	evaluationRepo evaluation.Repository,
	engine *crafting.Engine,
) *HandlerRegistry {
	return &HandlerRegistry{
		declarationRepo: declarationRepo,
		inventoryRepo:   inventoryRepo,
		actorRepo:       actorRepo,
		evaluationRepo:  evaluationRepo,
		engine:          engine,
		defaultBatch:    1,
	}
}

// WithDefaults sets the batch and difficulty modifier used when a query leaves them unset
func (r *HandlerRegistry) WithDefaults(batch int, difficultyModifier float64) *HandlerRegistry {
	r.defaultBatch = batch
	r.difficultyModifier = difficultyModifier
	return r
}

// WithLoader replaces the declaration file loader
func (r *HandlerRegistry) WithLoader(loader craftingCommands.DeclarationLoader) *HandlerRegistry {
	r.loader = loader
	return r
}

// RegisterCraftingHandlers registers all crafting command and query handlers with the mediator
//
// This method registers:
//   - CheckCraftabilityQuery, EstimateSuccessQuery, ValidateDeclarationsQuery, ListEvaluationsQuery
//   - ImportDeclarationsCommand, ImportInventoryCommand, RegisterActorCommand
func (r *HandlerRegistry) RegisterCraftingHandlers(m mediator.Mediator) error {
	registrations := []func() error{
		func() error {
			return mediator.RegisterHandler[*craftingQueries.CheckCraftabilityQuery](m,
				craftingQueries.NewCheckCraftabilityHandler(r.declarationRepo, r.inventoryRepo, r.evaluationRepo, r.engine, r.defaultBatch))
		},
		func() error {
			return mediator.RegisterHandler[*craftingQueries.EstimateSuccessQuery](m,
				craftingQueries.NewEstimateSuccessHandler(r.declarationRepo, r.actorRepo, r.evaluationRepo, r.engine, r.difficultyModifier))
		},
		func() error {
			return mediator.RegisterHandler[*craftingQueries.ValidateDeclarationsQuery](m,
				craftingQueries.NewValidateDeclarationsHandler(r.declarationRepo, r.engine))
		},
		func() error {
			return mediator.RegisterHandler[*craftingQueries.ListEvaluationsQuery](m,
				craftingQueries.NewListEvaluationsHandler(r.evaluationRepo))
		},
		func() error {
			return mediator.RegisterHandler[*craftingCommands.ImportDeclarationsCommand](m,
				craftingCommands.NewImportDeclarationsHandler(r.declarationRepo, r.loader, r.engine))
		},
		func() error {
			return mediator.RegisterHandler[*craftingCommands.ImportInventoryCommand](m,
				craftingCommands.NewImportInventoryHandler(r.inventoryRepo))
		},
		func() error {
			return mediator.RegisterHandler[*craftingCommands.RegisterActorCommand](m,
				craftingCommands.NewRegisterActorHandler(r.actorRepo))
		},
	}

	for _, register := range registrations {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}
