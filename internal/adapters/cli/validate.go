package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	craftingQueries "github.com/andrescamacho/craftreq/internal/application/crafting/queries"
)

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [declaration...]",
		Short: "Report unknown item types and qualities in stored declarations",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap()
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(app.Context(), &craftingQueries.ValidateDeclarationsQuery{DeclarationIDs: args})
			if err != nil {
				return err
			}
			result := resp.(*craftingQueries.ValidateDeclarationsResponse)

			if jsonOutput() {
				return printJSON(result)
			}

			for _, report := range result.Reports {
				for _, d := range report.Diagnostics {
					fmt.Printf("%s: %s\n", report.DeclarationID, d)
				}
			}
			fmt.Printf("%d declaration(s) checked, %d with warnings\n", result.Checked, len(result.Reports))
			return nil
		},
	}
	return cmd
}
