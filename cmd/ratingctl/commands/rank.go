package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// RankCmd creates the rank command
func RankCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rank <item-number>",
		Short: "Rank the long-listed candidates of a vacancy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.ScoringService()
			if err != nil {
				return err
			}

			ranking, err := svc.RankCandidates(app.Ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to rank candidates: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, color.YellowString("\n%s - %s (SG %d, %s)",
				ranking.ItemNumber, ranking.PositionTitle, ranking.SalaryGrade, ranking.Mode))

			if len(ranking.Candidates) == 0 {
				color.New(color.FgYellow).Fprintln(out, "No long-listed candidates")
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"Rank", "Candidate", "Psycho-Social", "Potential", "Total"})
			for _, c := range ranking.Candidates {
				table.Append([]string{
					fmt.Sprintf("%d", c.Rank),
					c.CandidateName,
					formatScore(c.PsychoSocial),
					formatScore(c.Potential),
					formatScore(c.Total),
				})
			}
			table.Render()
			return nil
		},
	}
}
