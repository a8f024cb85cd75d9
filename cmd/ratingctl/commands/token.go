package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/auth"
)

// TokenCmd creates the token command, which mints a bearer token for local
// testing against the API
func TokenCmd(app *AppContext) *cobra.Command {
	var (
		userID   uint
		email    string
		userType string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Cfg.JWT.Secret == "" {
				return fmt.Errorf("JWT_SECRET is required")
			}
			if app.Cfg.App.Env == "production" {
				app.Logger.Warn("Minting a token against a production secret")
			}

			token, err := auth.NewService(&app.Cfg.JWT).GenerateToken(userID, email, userType)
			if err != nil {
				return err
			}
			app.Logger.Debug("Token minted",
				zap.Uint("user_id", userID),
				zap.Duration("expires_in", app.Cfg.JWT.Expiration),
			)
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().UintVar(&userID, "user-id", 0, "User ID (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().StringVar(&userType, "user-type", "", "User type claim")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}
