package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	craftingQueries "github.com/andrescamacho/craftreq/internal/application/crafting/queries"
	"github.com/andrescamacho/craftreq/internal/domain/evaluation"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <declaration>",
		Short: "Show recent evaluations of a declaration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap()
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.mediator.Send(app.Context(), &craftingQueries.ListEvaluationsQuery{
				DeclarationID: args[0],
				Limit:         limit,
			})
			if err != nil {
				return err
			}
			records := resp.(*craftingQueries.ListEvaluationsResponse).Records

			if jsonOutput() {
				return printJSON(records)
			}
			if len(records) == 0 {
				fmt.Println("No evaluations recorded.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tKIND\tSUBJECT\tRESULT")
			fmt.Fprintln(w, "----\t----\t-------\t------")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.CreatedAt.Format("2006-01-02 15:04:05"), r.Kind, r.SubjectID, describeRecord(r))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum records to show (0 for all)")
	return cmd
}

func describeRecord(r evaluation.Record) string {
	if r.Kind == evaluation.KindSuccess {
		gate := "gate met"
		if !r.Verdict {
			gate = "blocked"
		}
		return fmt.Sprintf("%.1f%% (%s)", r.Probability*100, gate)
	}
	verdict := "craftable"
	if !r.Verdict {
		verdict = "not craftable"
	}
	return fmt.Sprintf("%s, batch %d, %d contended", verdict, r.Batch, r.Downgrades)
}
