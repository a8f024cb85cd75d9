package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
)

// AuditStatsCmd creates the audit-stats command
func AuditStatsCmd(app *AppContext) *cobra.Command {
	var (
		candidateID uint
		raterID     uint
		itemNumber  string
		action      string
	)

	cmd := &cobra.Command{
		Use:   "audit-stats",
		Short: "Summarize the rating log by action and by rater",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.AuditService()
			if err != nil {
				return err
			}

			filter := models.RatingLogFilter{
				ItemNumber: itemNumber,
				Action:     models.RatingAction(action),
			}
			if candidateID > 0 {
				filter.CandidateID = &candidateID
			}
			if raterID > 0 {
				filter.RaterID = &raterID
			}

			stats, err := svc.Stats(app.Ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to load rating log stats: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, color.YellowString("\nRating log entries: %d", stats.Total))

			byAction := tablewriter.NewWriter(out)
			byAction.SetHeader([]string{"Action", "Count"})
			for _, a := range stats.ByAction {
				byAction.Append([]string{string(a.Action), fmt.Sprintf("%d", a.Count)})
			}
			byAction.Render()

			fmt.Fprintln(out, color.YellowString("\nActivity by rater"))
			byRater := tablewriter.NewWriter(out)
			byRater.SetHeader([]string{"Rater", "Created", "Updated", "Deleted", "Total", "Last Activity"})
			for _, r := range stats.ByRater {
				name := r.RaterName
				if name == "" {
					name = fmt.Sprintf("#%d", r.RaterID)
				}
				byRater.Append([]string{
					name,
					fmt.Sprintf("%d", r.Created),
					fmt.Sprintf("%d", r.Updated),
					fmt.Sprintf("%d", r.Deleted),
					fmt.Sprintf("%d", r.Total),
					r.LastActivity.Format("2006-01-02 15:04"),
				})
			}
			byRater.Render()
			return nil
		},
	}

	cmd.Flags().UintVar(&candidateID, "candidate", 0, "Filter by candidate ID")
	cmd.Flags().UintVar(&raterID, "rater", 0, "Filter by rater ID")
	cmd.Flags().StringVar(&itemNumber, "item", "", "Filter by item number")
	cmd.Flags().StringVar(&action, "action", "", "Filter by action (created, updated, deleted)")

	return cmd
}
