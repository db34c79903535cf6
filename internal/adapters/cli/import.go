package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	craftingCommands "github.com/andrescamacho/craftreq/internal/application/crafting/commands"
)

// NewImportCommand creates the import command with subcommands
func NewImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import declarations, inventories and actors",
	}

	cmd.AddCommand(newImportDeclarationsCommand())
	cmd.AddCommand(newImportInventoryCommand())
	cmd.AddCommand(newImportActorCommand())

	return cmd
}

func newImportDeclarationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "declarations [file]",
		Short: "Load a declaration file (JSON or YAML)",
		Long: `Load crafting declarations in either the current or the legacy format.

Declarations with structural errors are reported and skipped; the rest are stored.
Item types listed under data.blacklist are removed from every declaration first.

Examples:
  craftreq import declarations
  craftreq import declarations data/furniture.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap()
			if err != nil {
				return err
			}
			defer app.Close()

			path := app.cfg.Data.DeclarationsPath
			if len(args) == 1 {
				path = args[0]
			}

			resp, err := app.mediator.Send(app.Context(), &craftingCommands.ImportDeclarationsCommand{
				Path:      path,
				Blacklist: app.cfg.Data.Blacklist,
			})
			if err != nil {
				return err
			}
			result := resp.(*craftingCommands.ImportDeclarationsResponse)

			if jsonOutput() {
				return printJSON(result)
			}

			fmt.Printf("Imported %d declaration(s) from %s\n", len(result.Imported), path)
			for _, id := range result.Discarded {
				fmt.Printf("  discarded %s: a requirement group only named blacklisted items\n", id)
			}
			for _, loadErr := range result.Errors {
				fmt.Printf("  error: %s\n", loadErr)
			}
			for id, diags := range result.Diagnostics {
				for _, d := range diags {
					fmt.Printf("  %s: %s\n", id, d)
				}
			}
			return nil
		},
	}
	return cmd
}

func newImportInventoryCommand() *cobra.Command {
	var inventoryID string

	cmd := &cobra.Command{
		Use:   "inventory <file>",
		Short: "Replace an inventory from a YAML or JSON file",
		Long: `Replace the stacks of an inventory.

File format:
  id: workshop
  stacks:
    - item: plank
      units: 4
    - item: welder
      charges: 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := readInventoryCommand(args[0], inventoryID)
			if err != nil {
				return err
			}

			app, err := bootstrap()
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(app.Context(), command)
			if err != nil {
				return err
			}
			result := resp.(*craftingCommands.ImportInventoryResponse)

			if jsonOutput() {
				return printJSON(result)
			}
			fmt.Printf("Inventory %s now holds %d item type(s)\n", result.InventoryID, len(result.Stacks))
			return nil
		},
	}

	cmd.Flags().StringVar(&inventoryID, "id", "", "Inventory id (overrides the file)")
	return cmd
}

func newImportActorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actor <file>",
		Short: "Register an actor from a YAML or JSON file",
		Long: `Create or replace an actor.

File format:
  id: smith
  name: Smith
  skills:
    fabrication: {level: 3, progress: 0.25}
  stats:
    intelligence: 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := readActorCommand(args[0])
			if err != nil {
				return err
			}

			app, err := bootstrap()
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(app.Context(), command)
			if err != nil {
				return err
			}
			a := resp.(*craftingCommands.RegisterActorResponse).Actor

			if jsonOutput() {
				return printJSON(map[string]interface{}{"id": a.ID(), "name": a.Name(), "skills": a.Skills()})
			}
			fmt.Printf("Registered actor %s\n", a)
			return nil
		},
	}
	return cmd
}
