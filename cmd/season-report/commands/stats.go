package commands

import (
	"github.com/spf13/cobra"

	service "github.com/okian/eplhistory/internal/app"
	"github.com/okian/eplhistory/internal/report"
)

func newStatsCmd() *cobra.Command {
	var team string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Prints wins, draws and losses per season for one team.",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc *service.Service) error {
			ctx := cmd.Context()
			if team == "" {
				team = svc.DefaultTeam(ctx)
			}
			stats, err := svc.StatsBySeason(ctx, team)
			if err != nil {
				return err
			}
			totals, err := svc.Totals(ctx, team)
			if err != nil {
				return err
			}
			report.Stats(cmd.OutOrStdout(), team, stats, totals)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&team, "team", "t", "", "team name (defaults to the configured default team)")
	return cmd
}
