package commands

import (
	"github.com/spf13/cobra"

	service "github.com/okian/eplhistory/internal/app"
	"github.com/okian/eplhistory/internal/report"
)

func newMatrixCmd() *cobra.Command {
	var teams []string
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Prints wins per season for every team, or for the teams given with --team.",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc *service.Service) error {
			m, err := svc.WinsMatrix(cmd.Context())
			if err != nil {
				return err
			}
			return report.Matrix(cmd.OutOrStdout(), m, teams)
		}),
	}
	cmd.Flags().StringSliceVarP(&teams, "team", "t", nil, "restrict the columns to these teams")
	return cmd
}
