package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	craftingQueries "github.com/andrescamacho/craftreq/internal/application/crafting/queries"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	var inventoryID string
	var batch int

	cmd := &cobra.Command{
		Use:   "check <declaration>",
		Short: "Check whether an inventory satisfies a declaration",
		Long: `Evaluate every component, tool and quality group of a declaration against
an inventory and print the tier of each alternative.

Examples:
  craftreq check bookshelf --inventory workshop
  craftreq check bookshelf --inventory workshop --batch 3 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, app, err := runCheck(args[0], inventoryID, batch)
			if err != nil {
				return err
			}
			defer app.Close()

			if jsonOutput() {
				return printJSON(map[string]interface{}{
					"declaration_id": result.DeclarationID,
					"inventory_id":   result.InventoryID,
					"batch":          result.Batch,
					"can_craft":      result.CanCraft,
					"missing":        result.Missing,
					"downgrades":     result.Downgrades,
				})
			}

			formatter := NewTreeFormatter(app.engine.Catalog(), useColors())
			fmt.Print(formatter.FormatEvaluation(result.DeclarationID, result.Set, result.Evaluation))
			for _, d := range result.Downgrades {
				fmt.Printf("\n%s is also needed for %s: %d required together\n", d.ItemType, d.Against, d.Demand)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inventoryID, "inventory", "", "Inventory id (default: user config)")
	cmd.Flags().IntVar(&batch, "batch", 0, "Batch size (default: crafting.default_batch)")
	return cmd
}

// NewMissingCommand creates the missing command
func NewMissingCommand() *cobra.Command {
	var inventoryID string
	var batch int

	cmd := &cobra.Command{
		Use:   "missing <declaration>",
		Short: "List the requirement groups an inventory leaves unsatisfied",
		Long: `List every unsatisfied group in the order tools, qualities, components.
Within a group any one alternative would do.

Example:
  craftreq missing bookshelf --inventory workshop`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, app, err := runCheck(args[0], inventoryID, batch)
			if err != nil {
				return err
			}
			defer app.Close()

			if jsonOutput() {
				return printJSON(result.Missing)
			}
			if len(result.Missing) == 0 {
				fmt.Println("Nothing is missing.")
				return nil
			}
			for _, group := range result.Missing {
				fmt.Printf("%s group %d, one of:\n", group.Category, group.Group+1)
				for _, alt := range group.Alternatives {
					fmt.Printf("  - %s (%s)\n", alt.Description, alt.Availability)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inventoryID, "inventory", "", "Inventory id (default: user config)")
	cmd.Flags().IntVar(&batch, "batch", 0, "Batch size (default: crafting.default_batch)")
	return cmd
}

// runCheck bootstraps the application and runs the craftability query.
// The caller closes the returned application.
func runCheck(declarationID, inventoryFlag string, batch int) (*craftingQueries.CheckCraftabilityResponse, *application, error) {
	inventoryID, err := resolveInventoryID(inventoryFlag)
	if err != nil {
		return nil, nil, err
	}
	if batch != 0 {
		if err := crafting.CheckBatch(batch); err != nil {
			return nil, nil, err
		}
	}

	app, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}

	resp, err := app.mediator.Send(app.Context(), &craftingQueries.CheckCraftabilityQuery{
		DeclarationID: declarationID,
		InventoryID:   inventoryID,
		Batch:         batch,
	})
	if err != nil {
		app.Close()
		return nil, nil, err
	}
	return resp.(*craftingQueries.CheckCraftabilityResponse), app, nil
}
