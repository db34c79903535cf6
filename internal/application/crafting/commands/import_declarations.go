package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/craftreq/internal/adapters/declarations"
	"github.com/andrescamacho/craftreq/internal/adapters/metrics"
	"github.com/andrescamacho/craftreq/internal/application/logging"
	"github.com/andrescamacho/craftreq/internal/application/mediator"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

// DeclarationLoader reads and normalises a declaration file
type DeclarationLoader func(path string) (*declarations.Result, error)

// ImportDeclarationsCommand loads a declaration file into the repository.
// Tool and component alternatives naming a blacklisted item type are removed;
// a declaration left with an empty group is discarded.
type ImportDeclarationsCommand struct {
	Path      string
	Blacklist []string
}

// ImportDeclarationsResponse summarises one import
type ImportDeclarationsResponse struct {
	Imported    []string
	Discarded   []string
	Errors      []*declarations.LoadError
	Diagnostics map[string][]crafting.Diagnostic
	Digest      string
}

// ImportDeclarationsHandler handles the ImportDeclarations command
type ImportDeclarationsHandler struct {
	repo   crafting.DeclarationRepository
	load   DeclarationLoader
	engine *crafting.Engine
}

// NewImportDeclarationsHandler creates a new ImportDeclarationsHandler.
// A nil loader reads files with declarations.LoadFile.
func NewImportDeclarationsHandler(repo crafting.DeclarationRepository, load DeclarationLoader, engine *crafting.Engine) *ImportDeclarationsHandler {
	if load == nil {
		load = declarations.LoadFile
	}
	return &ImportDeclarationsHandler{repo: repo, load: load, engine: engine}
}

// Handle executes the ImportDeclarations command
func (h *ImportDeclarationsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportDeclarationsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportDeclarationsCommand")
	}
	if cmd.Path == "" {
		return nil, fmt.Errorf("path must be provided")
	}

	logger := logging.LoggerFromContext(ctx)

	result, err := h.load(cmd.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load declarations: %w", err)
	}

	response := &ImportDeclarationsResponse{
		Errors:      result.Errors,
		Diagnostics: make(map[string][]crafting.Diagnostic),
		Digest:      result.Digest,
	}

	for _, loadErr := range result.Errors {
		logger.Log("ERROR", "declaration rejected", map[string]interface{}{
			"declaration": loadErr.DeclarationID,
			"field":       loadErr.Field,
			"reason":      loadErr.Reason,
		})
	}

	for _, decl := range result.Declarations {
		set, discarded := applyBlacklist(decl.Set, cmd.Blacklist)
		if discarded {
			logger.Log("WARN", "declaration discarded by blacklist", map[string]interface{}{
				"declaration": decl.ID,
			})
			response.Discarded = append(response.Discarded, decl.ID)
			continue
		}

		stored := decl.Declaration
		stored.Set = set
		if err := h.repo.Save(ctx, stored); err != nil {
			return nil, fmt.Errorf("failed to save declaration %s: %w", decl.ID, err)
		}
		response.Imported = append(response.Imported, decl.ID)

		if h.engine != nil {
			if diags := h.engine.Validate(set); len(diags) > 0 {
				response.Diagnostics[decl.ID] = diags
				metrics.RecordDiagnostics(diags)
				for _, d := range diags {
					logger.Log("WARN", d.String(), map[string]interface{}{"declaration": decl.ID})
				}
			}
		}
	}

	metrics.RecordDeclarationImport(len(response.Imported), len(response.Errors), len(response.Discarded))
	logger.Log("INFO", "declarations imported", map[string]interface{}{
		"path":      cmd.Path,
		"imported":  len(response.Imported),
		"rejected":  len(response.Errors),
		"discarded": len(response.Discarded),
		"digest":    result.Digest,
	})

	return response, nil
}

func applyBlacklist(set *crafting.RequirementSet, blacklist []string) (*crafting.RequirementSet, bool) {
	for _, itemType := range blacklist {
		next, discarded := set.RemoveItem(itemType)
		if discarded {
			return nil, true
		}
		set = next
	}
	return set, false
}
