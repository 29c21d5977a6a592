package cli

import (
	"fmt"
	"text/tabwriter"

	"exsolver/internal/models"

	"github.com/spf13/cobra"
)

func newExamplesCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Inspect the solved example corpus",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the examples that load successfully",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := root.validateOutput(); err != nil {
				return err
			}
			repo, err := root.loadCorpus(cmd)
			if err != nil {
				return err
			}
			all := repo.All()
			summaries := make([]models.ExampleSummary, 0, len(all))
			for _, ex := range all {
				summaries = append(summaries, ex.Summary())
			}
			if root.output == OutputJSON {
				return printJSON(cmd.OutOrStdout(), summaries)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFORMAT\tPAGES\tCATEGORY\tMARKERS")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%t\n", s.ID, s.Format, s.Pages, s.Category, s.SplitByMarkers)
			}
			return tw.Flush()
		},
	})
	return cmd
}
