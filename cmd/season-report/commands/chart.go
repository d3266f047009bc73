package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/eplhistory/internal/adapters/chart"
	service "github.com/okian/eplhistory/internal/app"
	"github.com/okian/eplhistory/pkg/logger"
)

func newChartCmd() *cobra.Command {
	var team, kind, format, out string
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Renders one team chart to a file.",
		Args:  cobra.NoArgs,
		RunE: withService(func(cmd *cobra.Command, svc *service.Service) error {
			ctx := cmd.Context()
			k, err := chart.ParseKind(kind)
			if err != nil {
				return err
			}
			f, err := chart.ParseFormat(format)
			if err != nil {
				return err
			}
			if team == "" {
				team = svc.DefaultTeam(ctx)
			}
			if out == "" {
				out = fmt.Sprintf("%s-%s.%s", team, k, f)
			}

			file, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := svc.RenderChart(ctx, file, team, k, f); err != nil {
				_ = file.Close()
				_ = os.Remove(out)
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			logger.Named("season-report").Info(ctx, "chart written",
				logger.String("team", team), logger.String("file", out))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&team, "team", "t", "", "team name (defaults to the configured default team)")
	cmd.Flags().StringVarP(&kind, "kind", "k", "wins", "chart kind: wins, seasons or summary")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "image format: svg or png")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (defaults to <team>-<kind>.<format>)")
	return cmd
}
