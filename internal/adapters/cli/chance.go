package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	craftingQueries "github.com/andrescamacho/craftreq/internal/application/crafting/queries"
)

// NewChanceCommand creates the chance command
func NewChanceCommand() *cobra.Command {
	var actorID string
	var modifier float64

	cmd := &cobra.Command{
		Use:   "chance <declaration>",
		Short: "Estimate an actor's success probability",
		Long: `Check the skill gate and compute the compound success probability.
The gate and the probability are independent: a blocked actor still gets a probability.

Examples:
  craftreq chance bookshelf --actor smith
  craftreq chance bookshelf --actor smith --modifier 1.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveActorID(actorID)
			if err != nil {
				return err
			}

			app, err := bootstrap()
			if err != nil {
				return err
			}
			defer app.Close()

			query := &craftingQueries.EstimateSuccessQuery{DeclarationID: args[0], ActorID: id}
			if cmd.Flags().Changed("modifier") {
				query.DifficultyModifier = &modifier
			}

			resp, err := app.mediator.Send(app.Context(), query)
			if err != nil {
				return err
			}
			result := resp.(*craftingQueries.EstimateSuccessResponse)

			if jsonOutput() {
				return printJSON(result)
			}

			gate := "met"
			if !result.GateMet {
				gate = "blocked"
			}
			title := fmt.Sprintf("%s by %s: %.1f%% success, skill gate %s",
				result.DeclarationID, result.ActorID, result.Probability*100, gate)
			fmt.Print(NewTreeFormatter(app.engine.Catalog(), useColors()).FormatSkills(title, result.Skills))
			return nil
		},
	}

	cmd.Flags().StringVar(&actorID, "actor", "", "Actor id (default: user config)")
	cmd.Flags().Float64Var(&modifier, "modifier", 0, "Difficulty modifier (default: crafting.difficulty_modifier)")
	return cmd
}
