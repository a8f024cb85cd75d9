package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ScoresCmd creates the scores command
func ScoresCmd(app *AppContext) *cobra.Command {
	var (
		candidateID uint
		itemNumber  string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show a candidate's indices and per-rater breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.ScoringService()
			if err != nil {
				return err
			}

			app.Logger.Debug("Computing scores",
				zap.Uint("candidate_id", candidateID),
				zap.String("item_number", itemNumber),
			)
			scores, err := svc.ComputeCandidateScores(app.Ctx, candidateID, itemNumber)
			if err != nil {
				return fmt.Errorf("failed to compute scores: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(scores)
			}

			fmt.Fprintln(out, color.YellowString("%s - %s (%s)", scores.CandidateName, scores.PositionTitle, scores.ItemNumber))
			renderBreakdown(out, scores.Result)
			return nil
		},
	}

	cmd.Flags().UintVar(&candidateID, "candidate", 0, "Candidate ID (required)")
	cmd.Flags().StringVar(&itemNumber, "item", "", "Item number (defaults to the candidate's current one)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of tables")
	_ = cmd.MarkFlagRequired("candidate")

	return cmd
}
