package commands

import (
	"github.com/spf13/cobra"

	service "github.com/okian/eplhistory/internal/app"
	"github.com/okian/eplhistory/internal/report"
)

func newTeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "Lists the teams in the configured universe.",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc *service.Service) error {
			teams, err := svc.Teams(cmd.Context())
			if err != nil {
				return err
			}
			report.Teams(cmd.OutOrStdout(), teams, svc.DefaultTeam(cmd.Context()))
			return nil
		}),
	}
}
