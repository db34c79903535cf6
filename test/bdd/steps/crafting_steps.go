package steps

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	"github.com/andrescamacho/craftreq/internal/adapters/declarations"
	craftingCommands "github.com/andrescamacho/craftreq/internal/application/crafting/commands"
	craftingQueries "github.com/andrescamacho/craftreq/internal/application/crafting/queries"
	"github.com/andrescamacho/craftreq/internal/application/mediator"
	"github.com/andrescamacho/craftreq/internal/application/setup"
	"github.com/andrescamacho/craftreq/internal/domain/actor"
	"github.com/andrescamacho/craftreq/internal/domain/catalog"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
	"github.com/andrescamacho/craftreq/internal/domain/inventory"
	"github.com/andrescamacho/craftreq/internal/domain/shared"
	"github.com/andrescamacho/craftreq/test/helpers"
)

type craftingContext struct {
	builder  *catalog.Builder
	policy   crafting.MatchPolicy
	repos    *helpers.TestRepositories
	mediator mediator.Mediator
	tempDir  string

	importResp *craftingCommands.ImportDeclarationsResponse
	checkResp  *craftingQueries.CheckCraftabilityResponse
	chanceResp *craftingQueries.EstimateSuccessResponse
	err        error
}

func (c *craftingContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	dir, err := os.MkdirTemp("", "craftreq-bdd-")
	if err != nil {
		return err
	}

	c.builder = catalog.NewBuilder()
	c.policy = crafting.MatchFirst
	c.repos = helpers.NewTestRepositories(shared.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	c.mediator = nil
	c.tempDir = dir
	c.importResp = nil
	c.checkResp = nil
	c.chanceResp = nil
	c.err = nil
	return nil
}

func InitializeCraftingScenario(ctx *godog.ScenarioContext) {
	c := &craftingContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, c.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		return ctx, os.RemoveAll(c.tempDir)
	})

	// Given steps
	ctx.Step(`^the item catalog:$`, c.theItemCatalog)
	ctx.Step(`^the match policy "([^"]*)"$`, c.theMatchPolicy)
	ctx.Step(`^the declarations:$`, c.theDeclarations)
	ctx.Step(`^inventory "([^"]*)" holds:$`, c.inventoryHolds)
	ctx.Step(`^inventory "([^"]*)" is empty$`, c.inventoryIsEmpty)
	ctx.Step(`^actor "([^"]*)" has skills:$`, c.actorHasSkills)

	// When steps
	ctx.Step(`^I check "([^"]*)" against "([^"]*)"$`, c.iCheckAgainst)
	ctx.Step(`^I check "([^"]*)" against "([^"]*)" with batch (\d+)$`, c.iCheckAgainstWithBatch)
	ctx.Step(`^I estimate "([^"]*)" for actor "([^"]*)"$`, c.iEstimateForActor)
	ctx.Step(`^I estimate "([^"]*)" for actor "([^"]*)" with difficulty modifier (-?[\d.]+)$`, c.iEstimateForActorWithModifier)

	// Then steps
	ctx.Step(`^the declaration can be crafted$`, c.theDeclarationCanBeCrafted)
	ctx.Step(`^the declaration cannot be crafted$`, c.theDeclarationCannotBeCrafted)
	ctx.Step(`^(component|tool|quality) alternative (\d+) of group (\d+) is (available|insufficient|unavailable)$`, c.alternativeIs)
	ctx.Step(`^a "([^"]*)" downgrade of "([^"]*)" against "([^"]*)" is reported$`, c.aDowngradeIsReported)
	ctx.Step(`^no downgrade is reported$`, c.noDowngradeIsReported)
	ctx.Step(`^the missing report lists group (\d+) of (components|tools|qualities)$`, c.theMissingReportListsGroup)
	ctx.Step(`^the skill gate is met$`, c.theSkillGateIsMet)
	ctx.Step(`^the skill gate is not met$`, c.theSkillGateIsNotMet)
	ctx.Step(`^the success probability is ([\d.]+)$`, c.theSuccessProbabilityIs)
	ctx.Step(`^the import reports (\d+) imported and (\d+) failed$`, c.theImportReports)
	ctx.Step(`^declarations "([^"]*)" and "([^"]*)" have identical requirements$`, c.declarationsHaveIdenticalRequirements)
	ctx.Step(`^the request fails with "([^"]*)"$`, c.theRequestFailsWith)
}

// Given steps

func (c *craftingContext) theItemCatalog(table *godog.Table) error {
	seen := make(map[string]bool)
	for _, row := range table.Rows[1:] { // Skip header
		item := getCell(table, row, "item")
		var levels []catalog.QualityLevel
		for _, entry := range strings.Fields(getCell(table, row, "qualities")) {
			parts := strings.SplitN(entry, ":", 2)
			if len(parts) != 2 {
				return fmt.Errorf("quality %q must be written as ID:LEVEL", entry)
			}
			level, err := strconv.Atoi(parts[1])
			if err != nil {
				return fmt.Errorf("quality %q: %w", entry, err)
			}
			if !seen[parts[0]] {
				if err := c.builder.AddQuality(catalog.Quality{ID: parts[0]}); err != nil {
					return err
				}
				seen[parts[0]] = true
			}
			levels = append(levels, catalog.QualityLevel{Quality: parts[0], Level: level})
		}
		if err := c.builder.AddItemType(catalog.ItemType{ID: item, Qualities: levels}); err != nil {
			return err
		}
	}
	return nil
}

func (c *craftingContext) theMatchPolicy(name string) error {
	policy, err := crafting.ParseMatchPolicy(name)
	if err != nil {
		return err
	}
	c.policy = policy
	return nil
}

// ensureMediator wires the handler stack on first use, once the catalog is known
func (c *craftingContext) ensureMediator() (mediator.Mediator, error) {
	if c.mediator != nil {
		return c.mediator, nil
	}
	engine := crafting.NewEngineWithPolicy(c.builder.Build(), c.policy)
	m := mediator.NewMediator()
	registry := setup.NewHandlerRegistry(
		c.repos.DeclarationRepo,
		c.repos.InventoryRepo,
		c.repos.ActorRepo,
		c.repos.EvaluationRepo,
		engine,
	)
	if err := registry.RegisterCraftingHandlers(m); err != nil {
		return nil, err
	}
	c.mediator = m
	return m, nil
}

func (c *craftingContext) theDeclarations(doc *godog.DocString) error {
	m, err := c.ensureMediator()
	if err != nil {
		return err
	}

	path := filepath.Join(c.tempDir, "declarations.yaml")
	if err := os.WriteFile(path, []byte(doc.Content), 0644); err != nil {
		return err
	}

	resp, err := m.Send(context.Background(), &craftingCommands.ImportDeclarationsCommand{Path: path})
	if err != nil {
		return err
	}
	c.importResp = resp.(*craftingCommands.ImportDeclarationsResponse)
	return nil
}

func (c *craftingContext) inventoryHolds(id string, table *godog.Table) error {
	m, err := c.ensureMediator()
	if err != nil {
		return err
	}

	var stacks []inventory.Stack
	for _, row := range table.Rows[1:] {
		stacks = append(stacks, inventory.Stack{
			Type:    getCell(table, row, "item"),
			Units:   parseIntCell(getCell(table, row, "units")),
			Charges: parseIntCell(getCell(table, row, "charges")),
		})
	}

	_, err = m.Send(context.Background(), &craftingCommands.ImportInventoryCommand{InventoryID: id, Stacks: stacks})
	return err
}

func (c *craftingContext) inventoryIsEmpty(id string) error {
	m, err := c.ensureMediator()
	if err != nil {
		return err
	}
	_, err = m.Send(context.Background(), &craftingCommands.ImportInventoryCommand{InventoryID: id})
	return err
}

func (c *craftingContext) actorHasSkills(id string, table *godog.Table) error {
	m, err := c.ensureMediator()
	if err != nil {
		return err
	}

	cmd := &craftingCommands.RegisterActorCommand{
		ID:     id,
		Name:   id,
		Skills: make(map[string]actor.SkillProgress),
	}
	for _, row := range table.Rows[1:] {
		progress, _ := strconv.ParseFloat(getCell(table, row, "progress"), 64)
		cmd.Skills[getCell(table, row, "skill")] = actor.SkillProgress{
			Level:    parseIntCell(getCell(table, row, "level")),
			Progress: progress,
		}
	}

	_, err = m.Send(context.Background(), cmd)
	return err
}

// When steps

func (c *craftingContext) iCheckAgainst(declID, inventoryID string) error {
	return c.check(declID, inventoryID, 0)
}

func (c *craftingContext) iCheckAgainstWithBatch(declID, inventoryID string, batch int) error {
	return c.check(declID, inventoryID, batch)
}

func (c *craftingContext) check(declID, inventoryID string, batch int) error {
	m, err := c.ensureMediator()
	if err != nil {
		return err
	}
	resp, err := m.Send(context.Background(), &craftingQueries.CheckCraftabilityQuery{
		DeclarationID: declID,
		InventoryID:   inventoryID,
		Batch:         batch,
	})
	c.err = err
	if err == nil {
		c.checkResp = resp.(*craftingQueries.CheckCraftabilityResponse)
	}
	return nil
}

func (c *craftingContext) iEstimateForActor(declID, actorID string) error {
	return c.estimate(declID, actorID, nil)
}

func (c *craftingContext) iEstimateForActorWithModifier(declID, actorID string, modifier float64) error {
	return c.estimate(declID, actorID, &modifier)
}

func (c *craftingContext) estimate(declID, actorID string, modifier *float64) error {
	m, err := c.ensureMediator()
	if err != nil {
		return err
	}
	resp, err := m.Send(context.Background(), &craftingQueries.EstimateSuccessQuery{
		DeclarationID:      declID,
		ActorID:            actorID,
		DifficultyModifier: modifier,
	})
	c.err = err
	if err == nil {
		c.chanceResp = resp.(*craftingQueries.EstimateSuccessResponse)
	}
	return nil
}

// Then steps

func (c *craftingContext) requireCheck() error {
	if c.err != nil {
		return fmt.Errorf("check failed: %w", c.err)
	}
	if c.checkResp == nil {
		return fmt.Errorf("no craftability check was run")
	}
	return nil
}

func (c *craftingContext) theDeclarationCanBeCrafted() error {
	if err := c.requireCheck(); err != nil {
		return err
	}
	if !c.checkResp.CanCraft {
		return fmt.Errorf("expected declaration to be craftable, missing: %v", c.checkResp.Missing)
	}
	return nil
}

func (c *craftingContext) theDeclarationCannotBeCrafted() error {
	if err := c.requireCheck(); err != nil {
		return err
	}
	if c.checkResp.CanCraft {
		return fmt.Errorf("expected declaration not to be craftable")
	}
	return nil
}

func (c *craftingContext) alternativeIs(kind string, alternative, group int, expected string) error {
	if err := c.requireCheck(); err != nil {
		return err
	}
	category := map[string]crafting.Category{
		"component": crafting.CategoryComponents,
		"tool":      crafting.CategoryTools,
		"quality":   crafting.CategoryQualities,
	}[kind]

	actual := c.checkResp.Evaluation.Availability(category, group-1, alternative-1)
	if actual.String() != expected {
		return fmt.Errorf("expected %s alternative %d of group %d to be %s, got %s", kind, alternative, group, expected, actual)
	}
	return nil
}

func (c *craftingContext) aDowngradeIsReported(reason, itemType, against string) error {
	if err := c.requireCheck(); err != nil {
		return err
	}
	for _, d := range c.checkResp.Downgrades {
		if string(d.Reason) == reason && d.ItemType == itemType && d.Against == against {
			return nil
		}
	}
	return fmt.Errorf("no %s downgrade of %s against %s in %+v", reason, itemType, against, c.checkResp.Downgrades)
}

func (c *craftingContext) noDowngradeIsReported() error {
	if err := c.requireCheck(); err != nil {
		return err
	}
	if len(c.checkResp.Downgrades) > 0 {
		return fmt.Errorf("expected no downgrades, got %+v", c.checkResp.Downgrades)
	}
	return nil
}

func (c *craftingContext) theMissingReportListsGroup(group int, category string) error {
	if err := c.requireCheck(); err != nil {
		return err
	}
	for _, missing := range c.checkResp.Missing {
		if string(missing.Category) == category && missing.Group == group-1 {
			return nil
		}
	}
	return fmt.Errorf("group %d of %s not in missing report %+v", group, category, c.checkResp.Missing)
}

func (c *craftingContext) requireChance() error {
	if c.err != nil {
		return fmt.Errorf("estimate failed: %w", c.err)
	}
	if c.chanceResp == nil {
		return fmt.Errorf("no success estimate was run")
	}
	return nil
}

func (c *craftingContext) theSkillGateIsMet() error {
	if err := c.requireChance(); err != nil {
		return err
	}
	if !c.chanceResp.GateMet {
		return fmt.Errorf("expected skill gate to be met, unmet: %v", c.chanceResp.Unmet)
	}
	return nil
}

func (c *craftingContext) theSkillGateIsNotMet() error {
	if err := c.requireChance(); err != nil {
		return err
	}
	if c.chanceResp.GateMet {
		return fmt.Errorf("expected skill gate not to be met")
	}
	return nil
}

func (c *craftingContext) theSuccessProbabilityIs(expected float64) error {
	if err := c.requireChance(); err != nil {
		return err
	}
	if math.Abs(c.chanceResp.Probability-expected) > 1e-6 {
		return fmt.Errorf("expected probability %v, got %v", expected, c.chanceResp.Probability)
	}
	return nil
}

func (c *craftingContext) theImportReports(imported, failed int) error {
	if c.importResp == nil {
		return fmt.Errorf("no declarations were imported")
	}
	if len(c.importResp.Imported) != imported || len(c.importResp.Errors) != failed {
		return fmt.Errorf("expected %d imported and %d failed, got %v and %v",
			imported, failed, c.importResp.Imported, c.importResp.Errors)
	}
	return nil
}

func (c *craftingContext) declarationsHaveIdenticalRequirements(a, b string) error {
	ctx := context.Background()
	first, err := c.repos.DeclarationRepo.FindByID(ctx, a)
	if err != nil {
		return err
	}
	second, err := c.repos.DeclarationRepo.FindByID(ctx, b)
	if err != nil {
		return err
	}

	left := declarations.Encode("", "", first.Set)
	right := declarations.Encode("", "", second.Set)
	if !reflect.DeepEqual(left, right) {
		return fmt.Errorf("requirements differ:\n%v\n%v", left, right)
	}
	return nil
}

func (c *craftingContext) theRequestFailsWith(fragment string) error {
	if c.err == nil {
		return fmt.Errorf("expected request to fail with %q", fragment)
	}
	if !strings.Contains(c.err.Error(), fragment) {
		return fmt.Errorf("expected error containing %q, got %v", fragment, c.err)
	}
	return nil
}

// getCell reads a cell by header name; an absent column reads as empty
func getCell(table *godog.Table, row *messages.PickleTableRow, column string) string {
	for i, cell := range table.Rows[0].Cells {
		if cell.Value == column && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

func parseIntCell(value string) int {
	n, _ := strconv.Atoi(value)
	return n
}
